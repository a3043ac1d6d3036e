package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
)

// Model generates a completion for a prompt.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New creates a Model from the given LLM config. Token validation happens
// here, before any network I/O.
func New(cfg *config.LLMConfig, apiKey string) (Model, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm not configured")
	}

	// Hosted inference can cold-start, so the timeout is generous.
	client := &http.Client{Timeout: 60 * time.Second}

	switch cfg.Provider {
	case "huggingface":
		if apiKey == "" {
			return nil, fmt.Errorf("missing Hugging Face token (set llm.api_key or %s)", config.EnvToken)
		}
		if !strings.HasPrefix(apiKey, "hf_") {
			return nil, fmt.Errorf("invalid Hugging Face token: must start with hf_")
		}
		model := cfg.Model
		if model == "" {
			model = "mistralai/Mistral-7B-Instruct-v0.3"
		}
		base := cfg.BaseURL
		if base == "" {
			base = "https://router.huggingface.co"
		}
		return &huggingfaceProvider{apiKey: apiKey, model: model, baseURL: strings.TrimRight(base, "/"), client: client}, nil
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "llama3"
		}
		base := cfg.BaseURL
		if base == "" {
			base = "http://localhost:11434"
		}
		return &ollamaProvider{model: model, baseURL: strings.TrimRight(base, "/"), client: client}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q (valid: huggingface, ollama)", cfg.Provider)
	}
}

// --- Hugging Face provider (OpenAI-compatible chat completions) ---

type huggingfaceProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (h *huggingfaceProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model:    h.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", h.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hugging face API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("hugging face API %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty hugging face response")
	}
	return cr.Choices[0].Message.Content, nil
}

// --- Ollama provider (local inference) ---

type ollamaProvider struct {
	model   string
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *ollamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama API %d: %s", resp.StatusCode, string(b))
	}

	var or ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	return or.Response, nil
}
