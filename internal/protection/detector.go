// Package protection detects pages that are not usable as redesign input:
// bot-protection challenges, captchas, and JavaScript-only shells whose
// static HTML carries no real content.
package protection

import (
	"regexp"
	"strings"
)

// Signal identifies why a page was rejected.
type Signal string

const (
	SignalNone               Signal = ""
	SignalChallenge          Signal = "challenge"
	SignalCaptcha            Signal = "captcha"
	SignalAccessDenied       Signal = "access_denied"
	SignalEmptyContent       Signal = "empty_content"
	SignalJavaScriptRequired Signal = "javascript_required"
)

// Result describes what was detected on a page.
type Result struct {
	Detected    bool
	Signal      Signal
	Description string
}

// Detector inspects fetched HTML for signs that the page cannot be redesigned.
type Detector struct {
	// MinContentLength is the smallest body size a real page is expected to have.
	MinContentLength int
}

// NewDetector returns a detector with default thresholds.
func NewDetector() *Detector {
	return &Detector{MinContentLength: 500}
}

var (
	challengeMarkers = []string{
		"cf-browser-verification",
		"challenge-platform",
		"cf_chl_opt",
		"checking your browser",
		"just a moment...",
		"attention required! | cloudflare",
	}

	captchaMarkers = []string{
		"g-recaptcha",
		"grecaptcha",
		"h-captcha",
		"hcaptcha",
		"data-sitekey",
		"cf-turnstile",
	}

	accessDeniedMarkers = []string{
		"access denied",
		"access to this page has been denied",
		"request blocked",
		"bot detected",
		"please verify you are human",
		"are you a robot",
	}

	// Empty SPA mount points mean the real markup only exists after JS runs.
	spaRootPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<div\s+id=["'](?:root|app|__next|__nuxt)["'][^>]*>\s*</div>`),
		regexp.MustCompile(`<app-root[^>]*>\s*</app-root>`),
	}

	contentIndicatorRegex = regexp.MustCompile(`<(article|main|section|div[^>]*class[^>]*content)[^>]*>`)

	scriptRegex     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRegex      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Detect inspects page HTML and reports whether it is unusable as input.
func (d *Detector) Detect(html string) Result {
	if strings.TrimSpace(html) == "" {
		return Result{Detected: true, Signal: SignalEmptyContent, Description: "empty response body"}
	}

	lower := strings.ToLower(html)

	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return Result{Detected: true, Signal: SignalChallenge, Description: "bot-protection challenge page"}
		}
	}
	// A captcha widget embedded in a real page (a contact form, say) is
	// harmless. Captcha markers only condemn pages with no content of
	// their own.
	if !contentIndicatorRegex.MatchString(html) {
		for _, marker := range captchaMarkers {
			if strings.Contains(lower, marker) {
				return Result{Detected: true, Signal: SignalCaptcha, Description: "captcha challenge page"}
			}
		}
	}
	for _, marker := range accessDeniedMarkers {
		if strings.Contains(lower, marker) {
			return Result{Detected: true, Signal: SignalAccessDenied, Description: "access denied by the site"}
		}
	}

	for _, pattern := range spaRootPatterns {
		if pattern.MatchString(html) {
			return Result{
				Detected:    true,
				Signal:      SignalJavaScriptRequired,
				Description: "page renders its content with JavaScript",
			}
		}
	}

	if r := d.checkTextRatio(html); r.Detected {
		return r
	}

	if len(html) < d.MinContentLength && !contentIndicatorRegex.MatchString(html) {
		return Result{
			Detected:    true,
			Signal:      SignalEmptyContent,
			Description: "page has too little content to redesign",
		}
	}

	return Result{}
}

// checkTextRatio flags pages whose visible text is a tiny fraction of the
// markup. Those pages render their real content client-side and the static
// HTML would produce an empty redesign.
func (d *Detector) checkTextRatio(html string) Result {
	cleaned := scriptRegex.ReplaceAllString(html, "")
	cleaned = styleRegex.ReplaceAllString(cleaned, "")
	text := htmlTagRegex.ReplaceAllString(cleaned, " ")
	text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))

	if len(html) > 1000 && float64(len(text))/float64(len(html)) < 0.02 {
		return Result{
			Detected:    true,
			Signal:      SignalJavaScriptRequired,
			Description: "page renders its content with JavaScript",
		}
	}
	return Result{}
}
