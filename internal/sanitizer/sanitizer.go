// Package sanitizer reduces raw model output to a plausible HTML document
// and applies the demo branding transform. The cleanup is deliberately
// heuristic: model output has no contractual format, so this is best-effort
// string surgery rather than a validating parser.
package sanitizer

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedArtifact is returned when no plausible HTML document can be
// isolated from the model output.
var ErrMalformedArtifact = errors.New("no plausible HTML document found in model output")

// Known lead-in phrases models emit before the actual document.
var preamblePrefixes = []string{
	"here is",
	"here's",
	"sure",
	"certainly",
	"of course",
	"below is",
	"i've created",
	"i have created",
}

var (
	fenceRegex   = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
	doctypeRegex = regexp.MustCompile(`(?is)<!doctype\s+html.*`)
	headRegex    = regexp.MustCompile(`(?i)<head[^>]*>`)
	bodyRegex    = regexp.MustCompile(`(?i)<body[^>]*>`)
)

// Sanitize strips markdown fencing and explanatory prose from raw model
// output and returns the isolated HTML document. Sanitize is idempotent:
// applying it to its own output returns the same string.
func Sanitize(raw string) (string, error) {
	s := fenceRegex.ReplaceAllString(raw, "")
	s = stripPreamble(s)
	s = strings.TrimSpace(s)

	if isDocumentStart(s) {
		return s, nil
	}

	// Slice from the first tag that is not a doctype/comment marker to the
	// last closing bracket.
	start := firstTagIndex(s)
	end := strings.LastIndex(s, ">")
	if start >= 0 && end > start {
		sliced := strings.TrimSpace(s[start : end+1])
		if isDocumentStart(sliced) {
			return sliced, nil
		}
		// One more rescue attempt: take everything from the first doctype
		// occurrence onward.
		if m := doctypeRegex.FindString(s); m != "" {
			return strings.TrimSpace(m), nil
		}
		if strings.HasPrefix(sliced, "<") {
			return sliced, nil
		}
	}

	if m := doctypeRegex.FindString(s); m != "" {
		return strings.TrimSpace(m), nil
	}

	return "", ErrMalformedArtifact
}

func stripPreamble(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 {
		trimmed := strings.TrimSpace(lines[0])
		if trimmed == "" {
			lines = lines[1:]
			continue
		}
		lower := strings.ToLower(trimmed)
		matched := false
		for _, prefix := range preamblePrefixes {
			if strings.HasPrefix(lower, prefix) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		// A preamble sharing its line with the document must not take the
		// document with it; keep everything from the first tag onward.
		if i := strings.Index(trimmed, "<"); i >= 0 {
			lines[0] = trimmed[i:]
			break
		}
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func isDocumentStart(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

// firstTagIndex returns the index of the first '<' not immediately followed
// by '!', skipping doctype and comment markers.
func firstTagIndex(s string) int {
	for i := 0; i < len(s)-1; i++ {
		if s[i] == '<' && s[i+1] != '!' {
			return i
		}
	}
	return -1
}

// brandMarker is unique to the injected header block and guards against
// double-branding on retried sanitization.
const brandMarker = `class="demo-header"`

const brandHeadTemplate = `<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="description" content="AI-redesigned version of {{URL}}">
<title>Redesigned: {{TITLE}}</title>
<style>
  .demo-header {
    background: #f8f9fa;
    border-bottom: 2px solid #007bff;
    padding: 1rem;
    text-align: center;
    font-family: Arial, sans-serif;
  }
  .demo-header h1 {
    margin: 0;
    color: #007bff;
    font-size: 1.5rem;
  }
  .demo-header p {
    margin: 0.5rem 0 0 0;
    color: #666;
    font-size: 0.9rem;
  }
  .demo-header a {
    color: #007bff;
    text-decoration: none;
  }
  .demo-header a:hover {
    text-decoration: underline;
  }
</style>`

const brandBodyTemplate = `<div class="demo-header">
  <h1>🎨 AI-Redesigned Website</h1>
  <p>This is an AI-generated redesign of <a href="{{URL}}" target="_blank">{{URL}}</a></p>
  <p>All original content has been preserved and enhanced with modern design</p>
</div>`

// Brand injects demo meta tags after the opening head tag and the demo
// header block after the opening body tag. Branding an already-branded
// document is a no-op.
func Brand(html, sourceTitle, sourceURL string) string {
	if strings.Contains(html, brandMarker) {
		return html
	}

	title := sourceTitle
	if title == "" {
		title = sourceURL
	}

	headBlock := strings.ReplaceAll(brandHeadTemplate, "{{URL}}", sourceURL)
	headBlock = strings.ReplaceAll(headBlock, "{{TITLE}}", title)
	bodyBlock := strings.ReplaceAll(brandBodyTemplate, "{{URL}}", sourceURL)

	if loc := headRegex.FindStringIndex(html); loc != nil {
		html = html[:loc[1]] + "\n" + headBlock + html[loc[1]:]
	}
	if loc := bodyRegex.FindStringIndex(html); loc != nil {
		html = html[:loc[1]] + "\n" + bodyBlock + html[loc[1]:]
	}

	return html
}
