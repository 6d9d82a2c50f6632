package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/lab007/redesigner-api/internal/config"
	"github.com/lab007/redesigner-api/internal/crawler"
	"github.com/lab007/redesigner-api/internal/database/migrations"
	"github.com/lab007/redesigner-api/internal/extractor"
	"github.com/lab007/redesigner-api/internal/models"
	"github.com/lab007/redesigner-api/internal/repository"
	_ "github.com/tursodatabase/go-libsql"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:       "http://localhost:3000",
		CrawlMaxPages: 5,
	}
}

// setupTestRepos creates repositories backed by an in-memory database.
func setupTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return repository.NewRepositories(db)
}

// stubCrawler returns a fixed crawl result or error.
type stubCrawler struct {
	result *crawler.Result
	err    error
}

func (s *stubCrawler) Crawl(_ context.Context, baseURL string, maxPages int) (*crawler.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := &crawler.Result{}
	for i, p := range s.result.Pages {
		if i >= maxPages && maxPages > 0 {
			break
		}
		result.Pages = append(result.Pages, p)
	}
	result.Stats = s.result.Stats
	return result, nil
}

func crawlResult(urls ...string) *crawler.Result {
	result := &crawler.Result{}
	for i, u := range urls {
		result.Pages = append(result.Pages, crawler.Page{
			URL: u,
			Nav: true,
			Content: &extractor.PageContent{
				Title:      fmt.Sprintf("Page %d", i+1),
				Headings:   []extractor.Heading{{Level: "h1", Text: "Welcome"}},
				Paragraphs: []string{"Some body text long enough to keep."},
			},
		})
	}
	return result
}

// stubGenerator returns canned model output, optionally failing specific
// HTML calls by 1-based call index.
type stubGenerator struct {
	htmlCalls  int
	imageCalls int
	failHTML   map[int]bool
	failAllImg bool
	html       string
	imageURL   string
}

func (s *stubGenerator) GenerateHTML(_ context.Context, _, _ string) (string, error) {
	s.htmlCalls++
	if s.failHTML[s.htmlCalls] {
		return "", fmt.Errorf("model unavailable")
	}
	if s.html != "" {
		return s.html, nil
	}
	return "<!DOCTYPE html>\n<html><head><title>New</title></head><body><h1>Redesigned</h1></body></html>", nil
}

func (s *stubGenerator) GenerateImage(_ context.Context, _ string) (string, error) {
	s.imageCalls++
	if s.failAllImg {
		return "", fmt.Errorf("image generation returned no URL")
	}
	if s.imageURL != "" {
		return s.imageURL, nil
	}
	return "https://images.example.com/mockup.png", nil
}

// stubNotifier records outcome notifications.
type stubNotifier struct {
	enabled bool
	sent    []*models.Job
	err     error
}

func (s *stubNotifier) Enabled() bool { return s.enabled }

func (s *stubNotifier) SendResult(_ context.Context, job *models.Job) error {
	s.sent = append(s.sent, job)
	return s.err
}
