package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lab007/redesigner-api/internal/service"
)

// DemoHandler serves generated HTML artifacts. It bypasses the JSON API
// layer because the response is a raw HTML document.
type DemoHandler struct {
	jobSvc *service.JobService
}

// NewDemoHandler creates a new demo handler.
func NewDemoHandler(jobSvc *service.JobService) *DemoHandler {
	return &DemoHandler{jobSvc: jobSvc}
}

// ServeDemo writes the branded HTML artifact for a job or page design id.
func (h *DemoHandler) ServeDemo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	html, err := h.jobSvc.GetDemo(r.Context(), id)
	if err != nil {
		http.Error(w, "Error loading demo: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if html == "" {
		http.Error(w, "Demo not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
