package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lab007/redesigner-api/internal/models"
	"github.com/lab007/redesigner-api/internal/service"
)

// JobHandler handles job endpoints.
type JobHandler struct {
	jobSvc *service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobSvc *service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// CreateCloneJobInput represents a clone job submission.
type CreateCloneJobInput struct {
	Body struct {
		Website      string `json:"website" minLength:"1" example:"https://example.com" doc:"URL of the website to redesign"`
		Email        string `json:"email,omitempty" format:"email" example:"owner@example.com" doc:"Address notified when the redesign is ready"`
		Theme        string `json:"theme,omitempty" example:"clean-white" doc:"Visual theme for the redesign (default: modern)"`
		BusinessType string `json:"businessType,omitempty" example:"flower-shop" doc:"Business category; estimated from content when omitted"`
		PageCount    int    `json:"pageCount,omitempty" minimum:"0" maximum:"15" example:"3" doc:"Maximum pages to redesign (0 = server default)"`
	}
}

// CreateJobResponseBody is the response body for job creation.
type CreateJobResponseBody struct {
	JobID     string `json:"jobId" example:"01HXYZ123ABC456DEF789" doc:"Unique job identifier (ULID)"`
	Status    string `json:"status" example:"scraping" doc:"Initial job status"`
	StatusURL string `json:"statusUrl,omitempty" doc:"URL to poll for job status"`
}

// CreateJobOutput represents a job creation response.
type CreateJobOutput struct {
	Status int
	Body   CreateJobResponseBody
}

// CreateCloneJob creates a redesign job and starts background processing.
func (h *JobHandler) CreateCloneJob(ctx context.Context, input *CreateCloneJobInput) (*CreateJobOutput, error) {
	if input.Body.Website == "" {
		return nil, huma.Error400BadRequest("website is required")
	}

	job, err := h.jobSvc.CreateJob(ctx, service.CreateJobInput{
		Type:         models.JobTypeClone,
		WebsiteURL:   input.Body.Website,
		Email:        input.Body.Email,
		Theme:        input.Body.Theme,
		BusinessType: input.Body.BusinessType,
		PageCount:    input.Body.PageCount,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create job: " + err.Error())
	}

	return &CreateJobOutput{
		Status: 201,
		Body: CreateJobResponseBody{
			JobID:     job.ID,
			Status:    string(job.Status),
			StatusURL: h.jobSvc.StatusURL(job.ID),
		},
	}, nil
}

// CreateMockupJobInput represents a mockup job submission.
type CreateMockupJobInput struct {
	Body struct {
		Website      string `json:"website" minLength:"1" example:"https://example.com" doc:"URL of the website to mock up"`
		Email        string `json:"email,omitempty" format:"email" doc:"Address notified when the mockup is ready"`
		Theme        string `json:"theme,omitempty" example:"colorful" doc:"Visual theme for the mockup (default: modern)"`
		BusinessType string `json:"businessType,omitempty" example:"retail-store" doc:"Business category; estimated from content when omitted"`
	}
}

// CreateMockupJob creates an image-mockup job and starts background processing.
func (h *JobHandler) CreateMockupJob(ctx context.Context, input *CreateMockupJobInput) (*CreateJobOutput, error) {
	if input.Body.Website == "" {
		return nil, huma.Error400BadRequest("website is required")
	}

	job, err := h.jobSvc.CreateJob(ctx, service.CreateJobInput{
		Type:         models.JobTypeMockup,
		WebsiteURL:   input.Body.Website,
		Email:        input.Body.Email,
		Theme:        input.Body.Theme,
		BusinessType: input.Body.BusinessType,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create job: " + err.Error())
	}

	return &CreateJobOutput{
		Status: 201,
		Body: CreateJobResponseBody{
			JobID:     job.ID,
			Status:    string(job.Status),
			StatusURL: h.jobSvc.StatusURL(job.ID),
		},
	}, nil
}

// GetJobInput represents a job status request.
type GetJobInput struct {
	ID string `path:"id" doc:"Job ID"`
}

// JobStatusBody is the polled status view of a job.
type JobStatusBody struct {
	JobID             string   `json:"jobId"`
	JobType           string   `json:"jobType" example:"clone"`
	Status            string   `json:"status" example:"generating"`
	StatusDescription string   `json:"statusDescription" example:"Generating your redesigned website..."`
	Website           string   `json:"website" example:"https://example.com"`
	Theme             string   `json:"theme,omitempty"`
	BusinessType      string   `json:"businessType,omitempty"`
	CurrentPage       int      `json:"currentPage,omitempty" doc:"Page being processed (multi-page jobs)"`
	TotalPages        int      `json:"totalPages,omitempty"`
	DemoURLs          []string `json:"demoUrls,omitempty" doc:"Artifact URLs, populated on completion for clone jobs"`
	MockupURL         string   `json:"mockupUrl,omitempty" doc:"Image URL, populated on completion for mockup jobs"`
	ErrorMessage      string   `json:"errorMessage,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// GetJobOutput represents a job status response.
type GetJobOutput struct {
	Body JobStatusBody
}

// GetJob returns the current status of a job.
func (h *JobHandler) GetJob(ctx context.Context, input *GetJobInput) (*GetJobOutput, error) {
	job, err := h.jobSvc.GetJob(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to get job: " + err.Error())
	}
	if job == nil {
		return nil, huma.Error404NotFound("job not found")
	}

	return &GetJobOutput{Body: jobStatusBody(job)}, nil
}

// ListJobsInput represents a job listing request.
type ListJobsInput struct {
	Limit  int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum jobs to return"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Number of jobs to skip"`
}

// ListJobsOutput represents a job listing response.
type ListJobsOutput struct {
	Body struct {
		Jobs []JobStatusBody `json:"jobs"`
	}
}

// ListJobs returns recent jobs, newest first.
func (h *JobHandler) ListJobs(ctx context.Context, input *ListJobsInput) (*ListJobsOutput, error) {
	jobs, err := h.jobSvc.ListJobs(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list jobs: " + err.Error())
	}

	out := &ListJobsOutput{}
	out.Body.Jobs = make([]JobStatusBody, 0, len(jobs))
	for _, job := range jobs {
		out.Body.Jobs = append(out.Body.Jobs, jobStatusBody(job))
	}
	return out, nil
}

func jobStatusBody(job *models.Job) JobStatusBody {
	return JobStatusBody{
		JobID:             job.ID,
		JobType:           string(job.Type),
		Status:            string(job.Status),
		StatusDescription: service.StatusDescription(job),
		Website:           job.WebsiteURL,
		Theme:             job.Theme,
		BusinessType:      job.BusinessType,
		CurrentPage:       job.CurrentPage,
		TotalPages:        job.TotalPages,
		DemoURLs:          job.DemoURLs,
		MockupURL:         job.MockupURL,
		ErrorMessage:      job.Status.ErrorMessage(),
		CreatedAt:         job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         job.UpdatedAt.Format(time.RFC3339),
	}
}
