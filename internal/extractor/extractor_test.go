package extractor

import (
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Rosie's Flowers</title>
  <meta name="description" content="Fresh bouquets delivered daily">
</head>
<body>
  <header>
    <div class="logo"><img src="/img/logo.png" alt="Rosie's Flowers"></div>
    <nav>
      <a href="/">Home</a>
      <a href="/about">About</a>
      <a href="/shop">Shop</a>
      <a href="/contact">Contact</a>
    </nav>
  </header>
  <h1>Welcome to Rosie's Flowers</h1>
  <h2 class="section-title">Our Bouquets</h2>
  <p>Short.</p>
  <p>We hand-pick every stem from local growers so your bouquet arrives fresh.</p>
  <img src="/img/roses.jpg" alt="Roses">
  <a href="/shop/roses">Rose bouquets</a>
  <button>Order Now</button>
  <input type="submit" value="Subscribe">
  <p>Email us at rosie@example.com or call 555-123-4567. Visit 12 Garden Street anytime.</p>
  <a href="https://facebook.com/rosies">Facebook</a>
</body>
</html>`

func TestExtract(t *testing.T) {
	content := Extract(sampleHTML, "https://rosies.example")

	if content.Title != "Rosie's Flowers" {
		t.Errorf("Title = %q, want %q", content.Title, "Rosie's Flowers")
	}
	if content.Description != "Fresh bouquets delivered daily" {
		t.Errorf("Description = %q, want %q", content.Description, "Fresh bouquets delivered daily")
	}
	if content.Logo == nil {
		t.Fatal("Logo = nil, want logo image")
	}
	if content.Logo.Src != "https://rosies.example/img/logo.png" {
		t.Errorf("Logo.Src = %q, want resolved against base URL", content.Logo.Src)
	}
	if len(content.Navigation) != 4 {
		t.Errorf("Navigation count = %d, want 4: %v", len(content.Navigation), content.Navigation)
	}
	if len(content.Headings) != 2 {
		t.Fatalf("Headings count = %d, want 2", len(content.Headings))
	}
	if content.Headings[0].Level != "h1" {
		t.Errorf("Headings[0].Level = %q, want %q", content.Headings[0].Level, "h1")
	}
	if content.Headings[1].Classes != "section-title" {
		t.Errorf("Headings[1].Classes = %q, want %q", content.Headings[1].Classes, "section-title")
	}
	// "Short." is under the 20 char threshold
	if len(content.Paragraphs) != 2 {
		t.Errorf("Paragraphs count = %d, want 2: %v", len(content.Paragraphs), content.Paragraphs)
	}
	if len(content.Buttons) != 2 {
		t.Errorf("Buttons count = %d, want 2: %v", len(content.Buttons), content.Buttons)
	}
	if content.Buttons[1] != "Subscribe" {
		t.Errorf("Buttons[1] = %q, want %q (input value)", content.Buttons[1], "Subscribe")
	}
	if len(content.SocialLinks) != 1 {
		t.Fatalf("SocialLinks count = %d, want 1: %v", len(content.SocialLinks), content.SocialLinks)
	}
	if content.SocialLinks[0] != "Facebook: https://facebook.com/rosies" {
		t.Errorf("SocialLinks[0] = %q", content.SocialLinks[0])
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	content := Extract("", "")

	if content.Title != "" {
		t.Errorf("Title = %q, want empty", content.Title)
	}
	if content.Logo != nil {
		t.Errorf("Logo = %+v, want nil", content.Logo)
	}
	if len(content.Navigation) != 0 {
		t.Errorf("Navigation = %v, want empty", content.Navigation)
	}
}

func TestExtract_ResolvesRelativeURLs(t *testing.T) {
	html := `<div class="logo"><img src="logo.svg" alt="L"></div>
<img src="../photos/team.jpg" alt="Team">
<a href="/pricing">See our pricing plans</a>
<a href="https://cdn.example.net/a.css">Styles</a>`

	content := Extract(html, "https://shop.example/store/index.html")

	if content.Logo == nil || content.Logo.Src != "https://shop.example/store/logo.svg" {
		t.Errorf("Logo = %+v, want src resolved relative to document", content.Logo)
	}
	if len(content.Images) != 2 || content.Images[1].Src != "https://shop.example/photos/team.jpg" {
		t.Errorf("Images = %v, want parent-relative src resolved", content.Images)
	}
	var hrefs []string
	for _, l := range content.Links {
		hrefs = append(hrefs, l.Href)
	}
	if len(hrefs) != 2 || hrefs[0] != "https://shop.example/pricing" {
		t.Errorf("Links = %v, want root-relative href resolved", hrefs)
	}
	if hrefs[1] != "https://cdn.example.net/a.css" {
		t.Errorf("absolute href = %q, want left untouched", hrefs[1])
	}
}

func TestExtract_MalformedHTML(t *testing.T) {
	// Unclosed tags and stray brackets must not panic or error
	content := Extract("<html><body><h1>Broken <p>page <div><<>>", "")
	if len(content.Headings) == 0 {
		t.Error("expected headings from malformed document")
	}
}

func TestExtract_NavigationCappedAtEight(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<nav>")
	for i := 0; i < 12; i++ {
		sb.WriteString(`<a href="/p">Item</a>`)
	}
	sb.WriteString("</nav>")

	content := Extract(sb.String(), "")
	if len(content.Navigation) != 8 {
		t.Errorf("Navigation count = %d, want 8", len(content.Navigation))
	}
}

func TestExtract_NavigationSkipsLongText(t *testing.T) {
	long := strings.Repeat("x", 60)
	content := Extract(`<nav><a href="/a">`+long+`</a><a href="/b">Fine</a></nav>`, "")
	if len(content.Navigation) != 1 || content.Navigation[0] != "Fine" {
		t.Errorf("Navigation = %v, want [Fine]", content.Navigation)
	}
}

func TestExtract_SocialLinksDocumentOrder(t *testing.T) {
	html := `<body>
<a href="https://twitter.com/rosies">Twitter</a>
<a href="https://facebook.com/rosies"></a>
<a href="https://facebook.com/rosiesflowers">Facebook</a>
</body>`

	content := Extract(html, "")

	want := []string{
		"Twitter: https://twitter.com/rosies",
		"Facebook: https://facebook.com/rosiesflowers",
	}
	if len(content.SocialLinks) != len(want) {
		t.Fatalf("SocialLinks = %v, want %v", content.SocialLinks, want)
	}
	for i := range want {
		if content.SocialLinks[i] != want[i] {
			t.Errorf("SocialLinks[%d] = %q, want %q", i, content.SocialLinks[i], want[i])
		}
	}
}

func TestExtractContactInfo_Caps(t *testing.T) {
	text := `Reach us: a@example.com, b@example.com, c@example.com.
Call 555-111-2222 or 555-333-4444 or 555-555-6666.
Offices at 10 Main Street and 20 Oak Avenue.`

	contact := ExtractContactInfo(text)

	var emails, phones, addresses int
	for _, c := range contact {
		switch {
		case strings.Contains(c, "@"):
			emails++
		case strings.Contains(c, "Street") || strings.Contains(c, "Avenue"):
			addresses++
		default:
			phones++
		}
	}
	if emails != 2 {
		t.Errorf("emails = %d, want 2", emails)
	}
	if phones != 2 {
		t.Errorf("phones = %d, want 2", phones)
	}
	if addresses != 1 {
		t.Errorf("addresses = %d, want 1", addresses)
	}
	// First-encountered order within each category
	if contact[0] != "a@example.com" || contact[1] != "b@example.com" {
		t.Errorf("email order = %v", contact[:2])
	}
}

func TestExtractContactInfo_LowercaseAddress(t *testing.T) {
	contact := ExtractContactInfo("drop by 12 garden street whenever you like")
	if len(contact) != 1 {
		t.Fatalf("contact = %v, want one address", contact)
	}
	if !strings.Contains(strings.ToLower(contact[0]), "garden street") {
		t.Errorf("address = %q, want lowercase street matched", contact[0])
	}
}

func TestExtractContactInfo_InternationalPhone(t *testing.T) {
	contact := ExtractContactInfo("Call +1 555-123-4567 today")
	if len(contact) != 1 {
		t.Fatalf("contact = %v, want one phone", contact)
	}
	if !strings.HasPrefix(contact[0], "+1") {
		t.Errorf("phone = %q, want international prefix retained", contact[0])
	}
}

func TestEstimateBusinessType(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		want  string
	}{
		{"flower shop", "<title>Bouquet delivery</title>", "flower-shop"},
		{"healthcare", "<h1>Your local doctor</h1>", "healthcare"},
		{"tech", "<p>We build software that lasts a very long time.</p>", "tech"},
		{"pet care", "<h2>Dog grooming</h2>", "pet-care"},
		{"default", "<title>Hello world</title>", "local-business"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateBusinessType(Extract(tt.html, ""))
			if got != tt.want {
				t.Errorf("EstimateBusinessType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestThemes(t *testing.T) {
	themes := SuggestThemes(Extract("<title>Modern tech innovation</title>", ""))
	if len(themes) != 3 {
		t.Fatalf("SuggestThemes() returned %d themes, want 3: %v", len(themes), themes)
	}
	if themes[0] != "clean-white" || themes[1] != "dark-black" {
		t.Errorf("themes = %v, want matched themes first", themes)
	}

	seen := map[string]bool{}
	for _, th := range themes {
		if seen[th] {
			t.Errorf("duplicate theme %q in %v", th, themes)
		}
		seen[th] = true
	}
}

func TestSuggestThemes_DefaultsWhenNoMatch(t *testing.T) {
	themes := SuggestThemes(Extract("<title>Untitled</title>", ""))
	if len(themes) != 3 {
		t.Fatalf("SuggestThemes() returned %d themes, want 3: %v", len(themes), themes)
	}
	want := []string{"clean-white", "dark-black", "colorful"}
	for i, th := range want {
		if themes[i] != th {
			t.Errorf("themes[%d] = %q, want %q", i, themes[i], th)
		}
	}
}
