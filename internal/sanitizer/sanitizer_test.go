package sanitizer

import (
	"strings"
	"testing"
)

const cleanDoc = `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><h1>Hello</h1></body>
</html>`

func TestSanitize_CleanDocumentPassesThrough(t *testing.T) {
	got, err := Sanitize(cleanDoc)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if got != cleanDoc {
		t.Errorf("Sanitize() altered a clean document:\n%s", got)
	}
}

func TestSanitize_StripsMarkdownFences(t *testing.T) {
	raw := "```html\n" + cleanDoc + "\n```"
	got, err := Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if strings.Contains(got, "```") {
		t.Error("Sanitize() left fence markers in output")
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("Sanitize() output does not start with doctype: %.40s", got)
	}
}

func TestSanitize_StripsExplanatoryPreamble(t *testing.T) {
	raw := "Sure! Here's your redesigned website:\n\n" + cleanDoc
	got, err := Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("Sanitize() output does not start with doctype: %.40s", got)
	}
}

func TestSanitize_PreambleSharesLineWithDocument(t *testing.T) {
	raw := "Sure! <!DOCTYPE html><html><head><title>T</title></head><body><h1>Hi</h1></body></html>"
	got, err := Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("Sanitize() output does not start with doctype: %.40s", got)
	}
	if !strings.Contains(got, "<h1>Hi</h1>") {
		t.Error("Sanitize() lost document content")
	}
}

func TestSanitize_RescuesDoctypeAfterProse(t *testing.T) {
	raw := "The design uses a card layout.\n" + cleanDoc + "\nLet me know if you'd like changes."
	got, err := Sanitize(raw)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.Contains(got, "<h1>Hello</h1>") {
		t.Error("Sanitize() lost document content")
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		cleanDoc,
		"```html\n" + cleanDoc + "\n```",
		"Here is the page:\n" + cleanDoc,
		"<html><body><p>bare</p></body></html>",
	}
	for _, in := range inputs {
		once, err := Sanitize(in)
		if err != nil {
			t.Fatalf("Sanitize() error = %v", err)
		}
		twice, err := Sanitize(once)
		if err != nil {
			t.Fatalf("Sanitize(Sanitize()) error = %v", err)
		}
		if once != twice {
			t.Errorf("Sanitize() not idempotent:\nfirst:  %.60s\nsecond: %.60s", once, twice)
		}
	}
}

func TestSanitize_NoHTMLFails(t *testing.T) {
	_, err := Sanitize("I could not generate a design for this site.")
	if err != ErrMalformedArtifact {
		t.Errorf("Sanitize() error = %v, want ErrMalformedArtifact", err)
	}
}

func TestSanitize_EmptyInputFails(t *testing.T) {
	_, err := Sanitize("   \n\n  ")
	if err != ErrMalformedArtifact {
		t.Errorf("Sanitize() error = %v, want ErrMalformedArtifact", err)
	}
}

func TestBrand_InjectsHeaderAndMeta(t *testing.T) {
	got := Brand(cleanDoc, "Test", "https://example.com")

	if !strings.Contains(got, `class="demo-header"`) {
		t.Error("Brand() missing demo header block")
	}
	if !strings.Contains(got, `<meta charset="UTF-8">`) {
		t.Error("Brand() missing charset meta")
	}
	if !strings.Contains(got, "Redesigned: Test") {
		t.Error("Brand() missing title referencing source")
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Error("Brand() missing link to original site")
	}

	// Header goes right after the opening body tag
	bodyIdx := strings.Index(got, "<body>")
	headerIdx := strings.Index(got, `class="demo-header"`)
	if headerIdx < bodyIdx {
		t.Error("Brand() placed demo header before body tag")
	}
}

func TestBrand_Idempotent(t *testing.T) {
	once := Brand(cleanDoc, "Test", "https://example.com")
	twice := Brand(once, "Test", "https://example.com")
	if once != twice {
		t.Error("Brand() not idempotent, header inserted twice")
	}
	if strings.Count(twice, `class="demo-header"`) != 1 {
		t.Errorf("demo header count = %d, want 1", strings.Count(twice, `class="demo-header"`))
	}
}

func TestBrand_FallsBackToURLForTitle(t *testing.T) {
	got := Brand(cleanDoc, "", "https://example.com")
	if !strings.Contains(got, "Redesigned: https://example.com") {
		t.Error("Brand() missing URL fallback title")
	}
}

func TestBrand_HeadWithAttributes(t *testing.T) {
	doc := `<html><head lang="en"><title>T</title></head><body><p>x</p></body></html>`
	got := Brand(doc, "T", "https://example.com")
	if !strings.Contains(got, `<meta charset="UTF-8">`) {
		t.Error("Brand() did not inject into head with attributes")
	}
}
