package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/models"
)

func TestJobCreate(t *testing.T) {
	app, gdb := newTestApp(t)

	co := seedCompany(t, gdb, "Acme KK", "acme@example.com")
	other := seedCompany(t, gdb, "Rival KK", "rival@example.com")

	body := map[string]interface{}{
		"title":            "Frontend Engineer",
		"description":      "React development",
		"location":         "Tokyo",
		"requiredLanguage": "N2",
		"requiredSkills":   "JavaScript, React",
		"visaSupport":      true,
	}

	resp := doJSON(t, app, http.MethodPost, "/api/jobs", body,
		sessionCookie(t, "company", co.ID))
	wantStatus(t, resp, http.StatusCreated)

	var created JobResponse
	decodeData(t, resp, &created)
	if created.CompanyID != co.ID {
		t.Fatalf("companyId = %d, want session company %d", created.CompanyID, co.ID)
	}

	// required fields
	resp = doJSON(t, app, http.MethodPost, "/api/jobs",
		map[string]interface{}{"title": "No description"},
		sessionCookie(t, "company", co.ID))
	wantStatus(t, resp, http.StatusBadRequest)

	// a body companyId that contradicts the session is rejected
	bad := map[string]interface{}{}
	for k, v := range body {
		bad[k] = v
	}
	bad["companyId"] = co.ID
	resp = doJSON(t, app, http.MethodPost, "/api/jobs", bad,
		sessionCookie(t, "company", other.ID))
	wantStatus(t, resp, http.StatusForbidden)

	// candidates cannot post jobs
	cand := seedCandidate(t, gdb, "Maria", "maria@example.com")
	resp = doJSON(t, app, http.MethodPost, "/api/jobs", body,
		sessionCookie(t, "candidate", cand.ID))
	wantStatus(t, resp, http.StatusForbidden)
}

func TestJobUpdateAndDelete(t *testing.T) {
	app, gdb := newTestApp(t)

	co := seedCompany(t, gdb, "Acme KK", "acme@example.com")
	other := seedCompany(t, gdb, "Rival KK", "rival@example.com")
	job := seedJob(t, gdb, co.ID, "Backend Engineer")

	target := "/api/jobs/" + strconv.Itoa(int(job.ID))

	// non-owner cannot touch it
	resp := doJSON(t, app, http.MethodPatch, target,
		map[string]string{"title": "Hijacked"},
		sessionCookie(t, "company", other.ID))
	wantStatus(t, resp, http.StatusForbidden)

	// partial update: only the title changes
	resp = doJSON(t, app, http.MethodPatch, target,
		map[string]string{"title": "Senior Backend Engineer"},
		sessionCookie(t, "company", co.ID))
	wantStatus(t, resp, http.StatusOK)

	var stored models.Job
	if err := gdb.First(&stored, "id = ?", job.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Title != "Senior Backend Engineer" {
		t.Fatalf("title = %q", stored.Title)
	}
	if stored.Description != job.Description {
		t.Fatalf("description should be untouched, got %q", stored.Description)
	}

	// delete by non-owner
	resp = doJSON(t, app, http.MethodDelete, target, nil,
		sessionCookie(t, "company", other.ID))
	wantStatus(t, resp, http.StatusForbidden)

	// delete by owner
	resp = doJSON(t, app, http.MethodDelete, target, nil,
		sessionCookie(t, "company", co.ID))
	wantStatus(t, resp, http.StatusOK)

	err := gdb.First(&stored, "id = ?", job.ID).Error
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("job should be gone, err = %v", err)
	}

	// and now it 404s
	resp = doJSON(t, app, http.MethodGet, target, nil, nil)
	wantStatus(t, resp, http.StatusNotFound)
}

func TestJobListPublic(t *testing.T) {
	app, gdb := newTestApp(t)

	co := seedCompany(t, gdb, "Acme KK", "acme@example.com")
	other := seedCompany(t, gdb, "Rival KK", "rival@example.com")
	seedJob(t, gdb, co.ID, "Backend Engineer")
	seedJob(t, gdb, other.ID, "Designer")

	// unauthenticated listing works
	resp := doJSON(t, app, http.MethodGet, "/api/jobs", nil, nil)
	wantStatus(t, resp, http.StatusOK)

	var list []JobResponse
	decodeData(t, resp, &list)
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Company == nil || list[0].Company.Name == "" {
		t.Fatalf("company name should be joined in")
	}

	// filter by company
	resp = doJSON(t, app, http.MethodGet,
		"/api/jobs?companyId="+strconv.Itoa(int(co.ID)), nil, nil)
	wantStatus(t, resp, http.StatusOK)

	decodeData(t, resp, &list)
	if len(list) != 1 || list[0].Title != "Backend Engineer" {
		t.Fatalf("unexpected filtered list: %+v", list)
	}
}
