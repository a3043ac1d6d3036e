// Package browser hands URLs off to the desktop's default browser, used by
// the dashboard to open place pages and news mentions.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the system browser at the URL. Only web URLs are accepted;
// anything else (file:, javascript:) is rejected before any exec happens.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q scheme (http/https only)", u.Scheme)
	}
	return openCmd(rawURL).Start()
}

// openCmd picks the platform launcher. rundll32 on Windows avoids the shell
// interpreting the URL.
func openCmd(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}
