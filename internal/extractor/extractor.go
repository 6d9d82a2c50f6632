// Package extractor turns raw HTML into a structured summary of a page's
// content. Extraction is a pure function of the input document: it performs
// no I/O, never fails on malformed markup, and treats absent elements as
// empty values.
package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is a single h1-h4 element.
type Heading struct {
	Level   string `json:"level"`
	Text    string `json:"text"`
	Classes string `json:"classes,omitempty"`
}

// Image is an img element with a resolvable source.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Classes string `json:"classes,omitempty"`
}

// Link is an anchor with both text and a destination.
type Link struct {
	Text    string `json:"text"`
	Href    string `json:"href"`
	Classes string `json:"classes,omitempty"`
}

// Logo is the site's logo image, when one can be located.
type Logo struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// PageContent is the structured summary of one HTML document. All slice
// fields are bounded so downstream prompts stay within token budgets.
type PageContent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Logo        *Logo     `json:"logo,omitempty"`
	Navigation  []string  `json:"navigation"`
	Headings    []Heading `json:"headings"`
	Paragraphs  []string  `json:"paragraphs"`
	Images      []Image   `json:"images"`
	Links       []Link    `json:"links"`
	Buttons     []string  `json:"buttons"`
	ContactInfo []string  `json:"contactInfo"`
	SocialLinks []string  `json:"socialLinks"`
}

const (
	maxNavigation = 8
	maxHeadings   = 20
	maxParagraphs = 15
	maxImages     = 20
	maxLinks      = 30
	maxButtons    = 10
	maxEmails     = 2
	maxPhones     = 2
	maxAddresses  = 1
	maxSocial     = 10
)

var (
	emailRegex   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex   = regexp.MustCompile(`(\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)
	addressRegex = regexp.MustCompile(`(?i)\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b`)
)

// Logo selectors are probed in order; the first hit wins.
var logoSelectors = []string{
	".logo img",
	".brand img",
	".header-logo img",
	"header img",
	".navbar-brand img",
	".site-logo img",
}

var socialPlatforms = []string{"facebook", "twitter", "instagram", "linkedin", "youtube"}

// Extract parses html and returns a PageContent, resolving relative image
// and link URLs against baseURL. It never returns an error: goquery
// tolerates arbitrary markup, and missing elements simply yield empty
// fields.
func Extract(html, baseURL string) *PageContent {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// NewDocumentFromReader only fails on reader errors, which a
		// strings.Reader cannot produce. Return an empty record anyway.
		return &PageContent{}
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	content := &PageContent{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: metaDescription(doc),
		Logo:        extractLogo(doc, base),
		Navigation:  ExtractNavigation(doc),
		Headings:    extractHeadings(doc),
		Paragraphs:  extractParagraphs(doc),
		Images:      extractImages(doc, base),
		Links:       extractLinks(doc, base),
		Buttons:     extractButtons(doc),
	}

	bodyText := doc.Find("body").Text()
	content.ContactInfo = ExtractContactInfo(bodyText)
	content.SocialLinks = extractSocialLinks(doc)

	return content
}

func metaDescription(doc *goquery.Document) string {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(desc)
}

func extractLogo(doc *goquery.Document, base *url.URL) *Logo {
	for _, selector := range logoSelectors {
		sel := doc.Find(selector).First()
		if src, ok := sel.Attr("src"); ok && src != "" {
			alt, _ := sel.Attr("alt")
			return &Logo{Src: resolveRef(base, src), Alt: alt}
		}
	}
	// Fall back to any image inside a header-ish container.
	sel := doc.Find("header img, .header img, .navbar img").First()
	if src, ok := sel.Attr("src"); ok && src != "" {
		alt, _ := sel.Attr("alt")
		return &Logo{Src: resolveRef(base, src), Alt: alt}
	}
	return nil
}

// resolveRef resolves ref against base, returning ref unchanged when no
// usable base exists or ref does not parse as a URL.
func resolveRef(base *url.URL, ref string) string {
	if base == nil || base.Host == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// ExtractNavigation collects anchor text from nav-like containers. Results
// keep document order and are capped at 8 entries.
func ExtractNavigation(doc *goquery.Document) []string {
	var nav []string
	doc.Find("nav a, .navbar a, .navigation a, .menu a").Each(func(_ int, s *goquery.Selection) {
		if len(nav) >= maxNavigation {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) < 50 {
			nav = append(nav, text)
		}
	})
	return nav
}

func extractHeadings(doc *goquery.Document) []Heading {
	var headings []Heading
	doc.Find("h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if len(headings) >= maxHeadings {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		classes, _ := s.Attr("class")
		headings = append(headings, Heading{
			Level:   goquery.NodeName(s),
			Text:    text,
			Classes: classes,
		})
	})
	return headings
}

func extractParagraphs(doc *goquery.Document) []string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if len(paragraphs) >= maxParagraphs {
			return
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

func extractImages(doc *goquery.Document, base *url.URL) []Image {
	var images []Image
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if len(images) >= maxImages {
			return
		}
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		alt, _ := s.Attr("alt")
		classes, _ := s.Attr("class")
		images = append(images, Image{Src: resolveRef(base, src), Alt: alt, Classes: classes})
	})
	return images
}

func extractLinks(doc *goquery.Document, base *url.URL) []Link {
	var links []Link
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if len(links) >= maxLinks {
			return
		}
		text := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if text == "" || !ok || href == "" {
			return
		}
		classes, _ := s.Attr("class")
		links = append(links, Link{Text: text, Href: resolveRef(base, href), Classes: classes})
	})
	return links
}

func extractButtons(doc *goquery.Document) []string {
	var buttons []string
	doc.Find(`button, .btn, input[type="submit"]`).Each(func(_ int, s *goquery.Selection) {
		if len(buttons) >= maxButtons {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			text, _ = s.Attr("value")
			text = strings.TrimSpace(text)
		}
		if text != "" {
			buttons = append(buttons, text)
		}
	})
	return buttons
}

// ExtractContactInfo pulls email addresses, phone numbers and street
// addresses out of free text. Each category is capped to keep the result
// small: 2 emails, 2 phones, 1 address.
func ExtractContactInfo(text string) []string {
	var contact []string

	emails := emailRegex.FindAllString(text, -1)
	if len(emails) > maxEmails {
		emails = emails[:maxEmails]
	}
	contact = append(contact, emails...)

	phones := phoneRegex.FindAllString(text, -1)
	if len(phones) > maxPhones {
		phones = phones[:maxPhones]
	}
	contact = append(contact, phones...)

	addresses := addressRegex.FindAllString(text, -1)
	if len(addresses) > maxAddresses {
		addresses = addresses[:maxAddresses]
	}
	contact = append(contact, addresses...)

	return contact
}

// extractSocialLinks walks anchors in document order, keeping those whose
// href mentions a known platform. Anchors missing either text or href are
// dropped.
func extractSocialLinks(doc *goquery.Document) []string {
	var social []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if len(social) >= maxSocial {
			return
		}
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if text == "" || href == "" {
			return
		}
		for _, platform := range socialPlatforms {
			if strings.Contains(href, platform) {
				social = append(social, text+": "+href)
				return
			}
		}
	})
	return social
}
