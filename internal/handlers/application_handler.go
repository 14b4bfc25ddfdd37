package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/realtime"
)

type ApplicationHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewApplicationHandler(db *gorm.DB, hub *realtime.Hub) *ApplicationHandler {
	return &ApplicationHandler{DB: db, Hub: hub}
}

type ApplicationJobMini struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	CompanyID   uint   `json:"companyId"`
	CompanyName string `json:"companyName,omitempty"`
}

type ApplicationResponse struct {
	ID          uint      `json:"id"`
	JobID       uint      `json:"jobId"`
	CandidateID uint      `json:"candidateId"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	Job       *ApplicationJobMini `json:"job,omitempty"`
	Candidate *CandidateSummary   `json:"candidate,omitempty"`
}

func toApplicationResponse(app *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		Message:     app.Message,
		Status:      string(app.Status),
		CreatedAt:   app.CreatedAt,
	}

	if app.Job != nil {
		resp.Job = &ApplicationJobMini{
			ID:        app.Job.ID,
			Title:     app.Job.Title,
			CompanyID: app.Job.CompanyID,
		}
		if app.Job.Company != nil {
			resp.Job.CompanyName = app.Job.Company.Name
		}
	}
	resp.Candidate = toCandidateSummary(app.Candidate)

	return resp
}

type CreateApplicationReq struct {
	JobID   uint   `json:"jobId"`
	Message string `json:"message"`
	// Legacy clients send candidateId in the body. Must match the
	// session candidate when present.
	CandidateID uint `json:"candidateId"`
}

// Create records one application per (job, candidate). The composite
// unique index is what actually holds the invariant under concurrent
// requests; the pre-check below only buys the friendly message.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var req CreateApplicationReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.CandidateID == 0 {
		req.CandidateID = actor.ID
	}
	if err := actor.CanActAsCandidate(req.CandidateID); err != nil {
		return denied(c, err)
	}

	if req.JobID == 0 {
		return fail(c, fiber.StatusBadRequest, "jobId is required")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", req.JobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "The specified job was not found")
		}
		log.Println("application create job lookup error:", err)
		return internalError(c)
	}

	var candidate models.Candidate
	if err := h.DB.First(&candidate, "id = ?", req.CandidateID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "The specified candidate was not found")
		}
		log.Println("application create candidate lookup error:", err)
		return internalError(c)
	}

	var existing models.Application
	err := h.DB.Where("job_id = ? AND candidate_id = ?", req.JobID, req.CandidateID).
		First(&existing).Error
	if err == nil {
		return fail(c, fiber.StatusConflict, "You have already applied to this job")
	}
	if err != gorm.ErrRecordNotFound {
		log.Println("application duplicate check error:", err)
		return internalError(c)
	}

	app := models.Application{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		Message:     strings.TrimSpace(req.Message),
		Status:      models.StatusUnconfirmed,
	}
	if err := h.DB.Create(&app).Error; err != nil {
		// two racing creates: the unique index caught the second one
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, fiber.StatusConflict, "You have already applied to this job")
		}
		log.Println("application create error:", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toApplicationResponse(&app),
	})
}

// List returns one side's applications, newest first. Exactly as the
// list pages expect: a company sees applicants across its jobs, a
// candidate sees their own applications.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	companyID, ok := parseIDQuery(c, "companyId")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid companyId")
	}
	candidateID, ok := parseIDQuery(c, "candidateId")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid candidateId")
	}

	if companyID == 0 && candidateID == 0 {
		return fail(c, fiber.StatusBadRequest, "Identify a company or candidate")
	}
	if err := actor.CanUseFilter(companyID, candidateID); err != nil {
		return denied(c, err)
	}

	q := h.DB.Model(&models.Application{}).
		Preload("Job").Preload("Job.Company").Preload("Candidate").
		Order("applications.created_at DESC")

	if companyID != 0 {
		q = q.Select("applications.*").
			Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.company_id = ?", companyID)
	}
	if candidateID != 0 {
		q = q.Where("applications.candidate_id = ?", candidateID)
	}

	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		log.Println("application list error:", err)
		return internalError(c)
	}

	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationResponse(&apps[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Get returns one application with the full applicant profile, for the
// owning candidate or the company owning the job.
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var app models.Application
	if err := h.DB.Preload("Job").Preload("Job.Company").Preload("Candidate").
		First(&app, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Application not found")
		}
		log.Println("application get error:", err)
		return internalError(c)
	}

	if err := actor.CanViewApplication(&app, app.Job); err != nil {
		return denied(c, err)
	}

	resp := toApplicationResponse(&app)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"application": resp,
			"candidate":   toCandidateProfile(app.Candidate),
		},
	})
}

type UpdateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application through the selection pipeline.
// Only the company owning the referenced job may call this; any valid
// status may replace any other.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req UpdateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		return fail(c, fiber.StatusBadRequest, "status is required")
	}
	if !models.IsValidStatus(status) {
		return fail(c, fiber.StatusBadRequest, "Invalid status")
	}

	var app models.Application
	if err := h.DB.Preload("Job").Preload("Candidate").
		First(&app, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Application not found")
		}
		log.Println("application status load error:", err)
		return internalError(c)
	}

	if app.Job == nil {
		log.Println("application status: dangling job reference, application", app.ID)
		return internalError(c)
	}
	if err := actor.CanManageJob(app.Job); err != nil {
		return denied(c, err)
	}

	if err := h.DB.Model(&app).Update("status", status).Error; err != nil {
		log.Println("application status update error:", err)
		return internalError(c)
	}
	app.Status = models.ApplicationStatus(status)

	if h.Hub != nil {
		h.Hub.SendToUser(realtime.UserRef{Role: "candidate", ID: app.CandidateID}, fiber.Map{
			"type":          "application_status",
			"applicationId": app.ID,
			"jobTitle":      app.Job.Title,
			"status":        status,
		})
	}

	resp := toApplicationResponse(&app)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"application": resp,
			"candidate":   toCandidateProfile(app.Candidate),
		},
	})
}
