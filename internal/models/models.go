// Package models defines the domain models for the application.
package models

import (
	"strings"
	"time"
)

// JobType represents the type of redesign job.
type JobType string

const (
	// JobTypeClone produces a full HTML redesign of the scraped site.
	JobTypeClone JobType = "clone"
	// JobTypeMockup produces an AI-generated mockup image of the site.
	JobTypeMockup JobType = "mockup"
)

// JobStatus represents the processing status of a job.
// Error states carry the failure message inline ("error: <message>") so
// clients polling the status endpoint see the reason without an extra field.
type JobStatus string

const (
	JobStatusScraping       JobStatus = "scraping"
	JobStatusAnalyzing      JobStatus = "analyzing"
	JobStatusProcessingPage JobStatus = "processing_page"
	JobStatusGenerating     JobStatus = "generating"
	JobStatusCompleted      JobStatus = "completed"
)

// errorStatusPrefix marks failed jobs; the remainder of the status string
// is the user-visible error message.
const errorStatusPrefix = "error: "

// JobStatusError builds an error status from a failure message.
func JobStatusError(msg string) JobStatus {
	return JobStatus(errorStatusPrefix + msg)
}

// IsError reports whether the status is an error state.
func (s JobStatus) IsError() bool {
	return strings.HasPrefix(string(s), "error")
}

// ErrorMessage returns the failure message for error states, or "".
func (s JobStatus) ErrorMessage() string {
	if !s.IsError() {
		return ""
	}
	return strings.TrimPrefix(string(s), errorStatusPrefix)
}

// IsTerminal reports whether the job has finished (successfully or not).
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s.IsError()
}

// Rank orders statuses along the pipeline. Transitions must never move
// to a lower rank; error states are terminal and rank highest.
func (s JobStatus) Rank() int {
	switch s {
	case JobStatusScraping:
		return 1
	case JobStatusAnalyzing:
		return 2
	case JobStatusProcessingPage:
		return 3
	case JobStatusGenerating:
		return 4
	case JobStatusCompleted:
		return 5
	}
	if s.IsError() {
		return 6
	}
	return 0
}

// Job represents a website redesign job.
type Job struct {
	ID            string     `json:"id"`
	Type          JobType    `json:"type"`
	WebsiteURL    string     `json:"website_url"`
	Email         string     `json:"email,omitempty"`
	Theme         string     `json:"theme"`
	BusinessType  string     `json:"business_type,omitempty"`
	Status        JobStatus  `json:"status"`
	CurrentPage   int        `json:"current_page,omitempty"`
	TotalPages    int        `json:"total_pages,omitempty"`
	DemoURLs      []string   `json:"demo_urls,omitempty"`
	MockupURL     string     `json:"mockup_url,omitempty"`
	GeneratedHTML string     `json:"-"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PageDesign represents one generated page artifact for a clone job.
type PageDesign struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	PageNumber    int       `json:"page_number"`
	Title         string    `json:"title"`
	SourceURL     string    `json:"source_url"`
	GeneratedHTML string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
