package scrape

// Google ships Maps DOM changes often, so every selector this package relies
// on lives here as an ordered list. Lists are tried first to last and the
// first match wins, which keeps selector churn a one-line edit.

// resultLinkSelectors locate the top result card link on a search list page.
var resultLinkSelectors = []string{
	`a.hfpxzc`,
	`div.Nv2PK a`,
	`a[href*="/maps/place/"]`,
	`div[role="article"] a`,
}

// reviewCardSelectors locate individual review cards on a place page, in
// preference order.
var reviewCardSelectors = []string{
	`div[data-review-id]`,
	`div.jftiEf`,
}

type tabStrategy struct {
	name  string
	xpath string
}

// reviewTabStrategies open the Reviews tab on a place page.
var reviewTabStrategies = []tabStrategy{
	{"aria label", `//button[contains(@aria-label, 'Reviews')]`},
	{"tablist position", `//div[@role='tablist']//button[2]`},
	{"button text", `//button[.//div[text()='Reviews']]`},
}

const consentScript = `(function () {
  const selectors = [
    'button[aria-label="Accept all"]',
    'button[aria-label="I agree"]',
    'button[aria-label="Alles akzeptieren"]',
    'button.VfPpkd-LgbsSe-OWXEXe-k8QpJ'
  ];
  for (const sel of selectors) {
    const btn = document.querySelector(sel);
    if (btn) {
      btn.click();
      return true;
    }
  }
  return false;
})();`

// clickFirstScript clicks the first node matching the selector substituted
// for %q.
const clickFirstScript = `(function () {
  const el = document.querySelector(%q);
  if (el) {
    el.click();
    return true;
  }
  return false;
})();`

// scanButtonsScript is the last-resort tab hunt: walk every button on the
// page looking for a Reviews label.
const scanButtonsScript = `(function () {
  const buttons = document.querySelectorAll('button');
  for (const btn of buttons) {
    const txt = btn.textContent || '';
    const aria = btn.getAttribute('aria-label') || '';
    if (txt.includes('Reviews') || aria.includes('Reviews')) {
      btn.click();
      return true;
    }
  }
  return false;
})();`

// scrollScript nudges the reviews panel by scrolling the last known card into
// view, or pages the body down while no cards exist yet. Returns the card
// count seen before scrolling.
const scrollScript = `(function () {
  let cards = document.querySelectorAll('div[data-review-id]');
  if (!cards.length) {
    cards = document.querySelectorAll('div.jftiEf');
  }
  if (cards.length) {
    cards[cards.length - 1].scrollIntoView(true);
  } else {
    window.scrollBy(0, window.innerHeight);
  }
  return cards.length;
})();`
