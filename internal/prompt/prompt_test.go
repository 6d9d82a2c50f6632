package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lab007/redesigner-api/internal/extractor"
)

func sampleContent() *extractor.PageContent {
	return &extractor.PageContent{
		Title:       "Rosie's Flowers",
		Description: "Fresh bouquets delivered daily",
		Navigation:  []string{"Home", "About", "Shop"},
		Headings: []Heading{
			{Level: "h1", Text: "Welcome"},
			{Level: "h2", Text: "Our Bouquets"},
		},
		Paragraphs:  []string{"We hand-pick every stem from local growers."},
		ContactInfo: []string{"rosie@example.com", "555-123-4567"},
		SocialLinks: []string{"Facebook: https://facebook.com/rosies"},
	}
}

type Heading = extractor.Heading

func TestRedesign_ContainsRequiredSlots(t *testing.T) {
	p := Redesign(sampleContent(), "flower-shop", "clean-white")

	for _, want := range []string{
		"Rosie's Flowers",
		"Fresh bouquets delivered daily",
		"flower-shop",
		"clean-white",
		"h1: Welcome",
		"h2: Our Bouquets",
		"Home, About, Shop",
		"rosie@example.com",
		"Facebook: https://facebook.com/rosies",
		"mobile-first responsive",
		"semantic HTML5",
		"no commentary",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("Redesign() missing %q", want)
		}
	}
}

func TestRedesign_Deterministic(t *testing.T) {
	content := sampleContent()
	if Redesign(content, "tech", "dark-black") != Redesign(content, "tech", "dark-black") {
		t.Error("Redesign() is not deterministic for identical inputs")
	}
}

func TestRedesign_CapsHeadingsAndParagraphs(t *testing.T) {
	content := sampleContent()
	content.Headings = nil
	content.Paragraphs = nil
	for i := 0; i < 10; i++ {
		content.Headings = append(content.Headings, Heading{Level: "h2", Text: fmt.Sprintf("Heading %d", i)})
		content.Paragraphs = append(content.Paragraphs, fmt.Sprintf("Paragraph number %d with enough text.", i))
	}

	p := Redesign(content, "tech", "dark-black")
	if strings.Contains(p, "Heading 5") {
		t.Error("Redesign() includes heading beyond cap")
	}
	if strings.Contains(p, "Paragraph number 5") {
		t.Error("Redesign() includes paragraph beyond cap")
	}
	if !strings.Contains(p, "Heading 4") {
		t.Error("Redesign() missing heading within cap")
	}
}

func TestMockup_ContainsRequiredSlots(t *testing.T) {
	p := Mockup(sampleContent(), "flower-shop", "colorful")

	for _, want := range []string{
		"website mockup for a flower-shop business",
		"colorful theme",
		"Rosie's Flowers",
		"Welcome, Our Bouquets",
		"Home, About, Shop",
		"realistic content placement",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("Mockup() missing %q", want)
		}
	}

	// The image prompt must not carry HTML generation instructions
	for _, absent := range []string{"HTML", "semantic", "CSS variables"} {
		if strings.Contains(p, absent) {
			t.Errorf("Mockup() unexpectedly contains %q", absent)
		}
	}
}
