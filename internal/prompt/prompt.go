// Package prompt builds generation prompts from extracted page content.
// Both builders are pure string templating: same inputs, same output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lab007/redesigner-api/internal/extractor"
)

const (
	maxPromptHeadings   = 5
	maxPromptParagraphs = 5
)

// SystemMessage primes the text-generation model before the redesign prompt.
const SystemMessage = "You are an expert web designer. Generate complete, modern HTML/CSS code that preserves original content while dramatically improving the design and user experience. Use semantic HTML, modern CSS, and ensure the code is production-ready."

// Redesign builds the text-generation prompt for a full-page redesign.
func Redesign(content *extractor.PageContent, businessType, theme string) string {
	var headings []string
	for i, h := range content.Headings {
		if i >= maxPromptHeadings {
			break
		}
		headings = append(headings, h.Level+": "+h.Text)
	}

	paragraphs := content.Paragraphs
	if len(paragraphs) > maxPromptParagraphs {
		paragraphs = paragraphs[:maxPromptParagraphs]
	}

	return fmt.Sprintf(`You are a professional web designer tasked with redesigning a website.

ORIGINAL WEBSITE CONTENT:
- Title: %s
- Description: %s
- Business Type: %s
- Theme: %s

CONTENT TO PRESERVE AND IMPROVE:
- Main headings: %s
- Key paragraphs: %s
- Navigation items: %s
- Contact information: %s
- Social links: %s

REQUIREMENTS:
1. Create a modern, mobile-first responsive design
2. Use a %s color scheme and aesthetic
3. Preserve ALL original content and meaning, rephrased where it improves clarity
4. Improve typography, spacing, and visual hierarchy
5. Add modern UI elements (cards, gradients, shadows)
6. Ensure the design fits a %s business
7. Include proper meta tags and SEO optimization
8. Use semantic HTML5 elements and accessible markup (landmarks, alt text, contrast)
9. Use modern CSS (Grid, Flexbox, CSS variables)
10. Add subtle animations and hover effects

Generate complete, production-ready HTML/CSS code that can be immediately used.
Respond with the HTML document only - no commentary, no markdown fences.`,
		content.Title,
		content.Description,
		businessType,
		theme,
		strings.Join(headings, ", "),
		strings.Join(paragraphs, " | "),
		strings.Join(content.Navigation, ", "),
		strings.Join(content.ContactInfo, ", "),
		strings.Join(content.SocialLinks, ", "),
		theme,
		businessType,
	)
}

// Mockup builds the image-generation prompt for a single illustrative
// website mockup. It carries no HTML instructions.
func Mockup(content *extractor.PageContent, businessType, theme string) string {
	var headings []string
	for i, h := range content.Headings {
		if i >= maxPromptHeadings {
			break
		}
		headings = append(headings, h.Text)
	}

	paragraphs := content.Paragraphs
	if len(paragraphs) > maxPromptParagraphs {
		paragraphs = paragraphs[:maxPromptParagraphs]
	}

	return fmt.Sprintf(`Create a professional, modern website mockup for a %s business with a %s theme.

BUSINESS CONTEXT:
- Business Type: %s
- Theme: %s
- Website Title: %s
- Description: %s

CONTENT TO INCLUDE:
- Main headings: %s
- Key content: %s
- Navigation menu: %s
- Contact info: %s
- Social links: %s

DESIGN REQUIREMENTS:
- Modern, professional %s aesthetic
- Clean, responsive layout
- Professional typography and spacing
- %s color scheme throughout
- Mobile-friendly design elements
- Professional business appearance
- Include realistic content placement
- Show navigation, hero section, content areas
- Make it look like a real, professional website screenshot

Style: Professional website mockup, clean design, modern UI, business-appropriate, realistic content placement`,
		businessType,
		theme,
		businessType,
		theme,
		content.Title,
		content.Description,
		strings.Join(headings, ", "),
		strings.Join(paragraphs, " | "),
		strings.Join(content.Navigation, ", "),
		strings.Join(content.ContactInfo, ", "),
		strings.Join(content.SocialLinks, ", "),
		theme,
		theme,
	)
}
