package service

import (
	"context"
	"log/slog"

	"github.com/lab007/redesigner-api/internal/crawler"
	"github.com/lab007/redesigner-api/internal/extractor"
)

// AnalyzerService performs synchronous single-page analysis, used to
// pre-fill a submission form before starting a job.
type AnalyzerService struct {
	crawler *crawler.Crawler
	logger  *slog.Logger
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(c *crawler.Crawler, logger *slog.Logger) *AnalyzerService {
	return &AnalyzerService{crawler: c, logger: logger}
}

// Analysis is the result of analyzing a single page.
type Analysis struct {
	Website               string                 `json:"website"`
	Content               *extractor.PageContent `json:"content"`
	EstimatedBusinessType string                 `json:"estimatedBusinessType"`
	SuggestedThemes       []string               `json:"suggestedThemes"`
}

// Analyze fetches the root page of website and returns its extracted
// content along with derived business-type and theme suggestions.
func (s *AnalyzerService) Analyze(ctx context.Context, website string) (*Analysis, error) {
	website = NormalizeURL(website)

	result, err := s.crawler.Crawl(ctx, website, 1)
	if err != nil {
		return nil, err
	}

	content := result.Pages[0].Content
	analysis := &Analysis{
		Website:               website,
		Content:               content,
		EstimatedBusinessType: extractor.EstimateBusinessType(content),
		SuggestedThemes:       extractor.SuggestThemes(content),
	}

	s.logger.Debug("website analyzed",
		"website", website,
		"business_type", analysis.EstimatedBusinessType,
		"headings", len(content.Headings),
	)

	return analysis, nil
}
