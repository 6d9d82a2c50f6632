package extractor

import "strings"

// businessKeywords maps keyword groups to a business category. Groups are
// checked in order; the first group with a match wins.
var businessKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"flower", "floral", "bouquet"}, "flower-shop"},
	{[]string{"health", "medical", "doctor"}, "healthcare"},
	{[]string{"tech", "software", "app"}, "tech"},
	{[]string{"pet", "dog", "cat"}, "pet-care"},
	{[]string{"blog", "article", "post"}, "blog"},
	{[]string{"retail", "shop", "store"}, "retail-store"},
}

var themeKeywords = []struct {
	keywords []string
	themes   []string
}{
	{[]string{"modern", "tech", "innovation"}, []string{"clean-white", "dark-black"}},
	{[]string{"creative", "art", "design"}, []string{"colorful", "clean-white"}},
	{[]string{"professional", "business", "corporate"}, []string{"clean-white", "dark-black"}},
	{[]string{"warm", "friendly", "welcoming"}, []string{"colorful", "clean-white"}},
}

var defaultThemes = []string{"clean-white", "dark-black", "colorful"}

// EstimateBusinessType guesses a business category from page text via keyword
// matching, defaulting to "local-business".
func EstimateBusinessType(content *PageContent) string {
	text := strings.ToLower(textForMatching(content))
	for _, group := range businessKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}
	return "local-business"
}

// SuggestThemes recommends up to three themes based on page text. The three
// canonical themes are always candidates even when no keyword matches.
func SuggestThemes(content *PageContent) []string {
	text := strings.ToLower(textForMatching(content))

	var themes []string
	for _, group := range themeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				themes = appendUnique(themes, group.themes...)
				break
			}
		}
	}

	themes = appendUnique(themes, defaultThemes...)
	if len(themes) > 3 {
		themes = themes[:3]
	}
	return themes
}

func textForMatching(content *PageContent) string {
	var sb strings.Builder
	sb.WriteString(content.Title)
	sb.WriteString(" ")
	sb.WriteString(content.Description)
	for _, h := range content.Headings {
		sb.WriteString(" ")
		sb.WriteString(h.Text)
	}
	for _, p := range content.Paragraphs {
		sb.WriteString(" ")
		sb.WriteString(p)
	}
	return sb.String()
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, existing := range dst {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
