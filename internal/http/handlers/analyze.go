package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lab007/redesigner-api/internal/service"
)

// AnalyzeHandler handles synchronous website analysis.
type AnalyzeHandler struct {
	analyzerSvc *service.AnalyzerService
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzerSvc *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzerSvc: analyzerSvc}
}

// AnalyzeInput represents an analysis request.
type AnalyzeInput struct {
	URL string `query:"url" minLength:"1" example:"https://example.com" doc:"Website URL to analyze"`
}

// AnalyzeOutput represents an analysis response.
type AnalyzeOutput struct {
	Body service.Analysis
}

// Analyze fetches a single page and returns its extracted content with
// derived business-type and theme suggestions. Unlike job submission this
// runs synchronously within the request.
func (h *AnalyzeHandler) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	if input.URL == "" {
		return nil, huma.Error400BadRequest("url query parameter is required")
	}

	analysis, err := h.analyzerSvc.Analyze(ctx, input.URL)
	if err != nil {
		return nil, huma.Error502BadGateway("failed to analyze website: " + err.Error())
	}

	return &AnalyzeOutput{Body: *analysis}, nil
}
