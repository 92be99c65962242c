package handler

import (
	"net/http"
	"testing"
	"time"

	"placement-portal/backend/internal/dto"
	"placement-portal/backend/internal/service"
)

func TestJobHandler_ListJobs(t *testing.T) {
	h := NewJobHandler(&mockJobService{
		list:  []dto.JobResponse{{ID: testID, Title: "Backend Intern"}},
		total: 41,
	}, &mockApplicationService{})

	w := serve("GET", "/jobs", "/jobs?page=2&page_size=20", nil, h.ListJobs)

	expectStatus(t, w, http.StatusOK, 0)
	resp := parseResponse(w)
	page, _ := resp["pagination"].(map[string]interface{})
	if page["total_pages"] != float64(3) || page["page"] != float64(2) {
		t.Errorf("unexpected pagination: %v", page)
	}
	if jobs, _ := resp["jobs"].([]interface{}); len(jobs) != 1 {
		t.Errorf("expected 1 job, got %v", resp["jobs"])
	}
}

func TestJobHandler_ListJobs_BadFilter(t *testing.T) {
	h := NewJobHandler(&mockJobService{}, &mockApplicationService{})

	w := serve("GET", "/jobs", "/jobs?location_type=moon", nil, h.ListJobs)

	expectStatus(t, w, http.StatusBadRequest, 10001)
}

func TestJobHandler_GetJob_InvalidID(t *testing.T) {
	h := NewJobHandler(&mockJobService{}, &mockApplicationService{})

	w := serve("GET", "/jobs/:id", "/jobs/not-a-uuid", nil, h.GetJob)

	expectStatus(t, w, http.StatusBadRequest, 10001)
}

func TestJobHandler_GetJob_NotFound(t *testing.T) {
	h := NewJobHandler(&mockJobService{err: service.ErrJobNotFound}, &mockApplicationService{})

	w := serve("GET", "/jobs/:id", "/jobs/"+testID, nil, h.GetJob)

	expectStatus(t, w, http.StatusNotFound, 14001)
}

func TestJobHandler_CreateJob(t *testing.T) {
	h := NewJobHandler(&mockJobService{job: &dto.JobResponse{ID: testID}}, &mockApplicationService{})

	w := serve("POST", "/jobs", "/jobs", jsonBody(map[string]interface{}{
		"title":                "Backend Intern",
		"description":          "Build APIs",
		"company_name":         "Acme",
		"location":             "Pune",
		"type":                 "Full-Time",
		"application_deadline": time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}), withAuth("recruiter", h.CreateJob))

	expectStatus(t, w, http.StatusCreated, 0)
}

func TestJobHandler_CreateJob_MissingDeadline(t *testing.T) {
	h := NewJobHandler(&mockJobService{}, &mockApplicationService{})

	w := serve("POST", "/jobs", "/jobs", jsonBody(map[string]interface{}{
		"title":        "Backend Intern",
		"description":  "Build APIs",
		"company_name": "Acme",
		"location":     "Pune",
	}), withAuth("recruiter", h.CreateJob))

	expectStatus(t, w, http.StatusBadRequest, 10001)
}

func TestJobHandler_UpdateJob_PassesRole(t *testing.T) {
	mock := &mockJobService{err: service.ErrNotJobOwner}
	h := NewJobHandler(mock, &mockApplicationService{})

	w := serve("PUT", "/jobs/:id", "/jobs/"+testID, jsonBody(map[string]interface{}{
		"title": "New title",
	}), withAuth("recruiter", h.UpdateJob))

	expectStatus(t, w, http.StatusForbidden, 14002)
	if mock.role != "recruiter" {
		t.Errorf("expected caller role recruiter, got %q", mock.role)
	}
}

func TestJobHandler_UpdateJobStatus_Invalid(t *testing.T) {
	h := NewJobHandler(&mockJobService{}, &mockApplicationService{})

	w := serve("PATCH", "/jobs/:id/status", "/jobs/"+testID+"/status", jsonBody(map[string]string{
		"status": "archived",
	}), withAuth("recruiter", h.UpdateJobStatus))

	expectStatus(t, w, http.StatusBadRequest, 10001)
}

func TestJobHandler_DeleteJob_HasApplications(t *testing.T) {
	h := NewJobHandler(&mockJobService{err: service.ErrJobHasApplications}, &mockApplicationService{})

	w := serve("DELETE", "/jobs/:id", "/jobs/"+testID, nil, withAuth("recruiter", h.DeleteJob))

	expectStatus(t, w, http.StatusBadRequest, 14003)
}

func TestJobHandler_DeleteJob_Admin(t *testing.T) {
	mock := &mockJobService{}
	h := NewJobHandler(mock, &mockApplicationService{})

	w := serve("DELETE", "/jobs/:id", "/jobs/"+testID, nil, withAuth("admin", h.DeleteJob))

	expectStatus(t, w, http.StatusOK, 0)
	if mock.role != "admin" {
		t.Errorf("expected caller role admin, got %q", mock.role)
	}
}

func TestJobHandler_Apply_UsesPathJobID(t *testing.T) {
	apps := &mockApplicationService{app: &dto.ApplicationResponse{ID: testID}}
	h := NewJobHandler(&mockJobService{}, apps)

	w := serve("POST", "/jobs/:id/apply", "/jobs/"+testID+"/apply", nil, withAuth("student", h.Apply))

	expectStatus(t, w, http.StatusCreated, 0)
	if apps.applyReq == nil || apps.applyReq.JobID != testID {
		t.Errorf("expected job id from path, got %+v", apps.applyReq)
	}
}

func TestJobHandler_ListJobApplications_NotOwner(t *testing.T) {
	h := NewJobHandler(&mockJobService{}, &mockApplicationService{err: service.ErrNotJobOwner})

	w := serve("GET", "/jobs/:id/applications", "/jobs/"+testID+"/applications", nil,
		withAuth("recruiter", h.ListJobApplications))

	expectStatus(t, w, http.StatusForbidden, 15007)
}
