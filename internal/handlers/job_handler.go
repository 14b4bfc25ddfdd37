package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
)

type JobHandler struct {
	DB *gorm.DB
}

func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{DB: db}
}

type JobResponse struct {
	ID               uint            `json:"id"`
	CompanyID        uint            `json:"companyId"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	RequiredLanguage string          `json:"requiredLanguage"`
	RequiredSkills   string          `json:"requiredSkills"`
	VisaSupport      bool            `json:"visaSupport"`
	CreatedAt        time.Time       `json:"createdAt"`
	Company          *CompanySummary `json:"company,omitempty"`
}

func toJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		CompanyID:        j.CompanyID,
		Title:            j.Title,
		Description:      j.Description,
		Location:         j.Location,
		RequiredLanguage: j.RequiredLanguage,
		RequiredSkills:   j.RequiredSkills,
		VisaSupport:      j.VisaSupport,
		CreatedAt:        j.CreatedAt,
		Company:          toCompanySummary(j.Company),
	}
}

// List is public: all jobs, or one company's jobs, newest first.
func (h *JobHandler) List(c *fiber.Ctx) error {
	companyID, ok := parseIDQuery(c, "companyId")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid companyId")
	}

	q := h.DB.Preload("Company").Order("created_at DESC")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}

	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		log.Println("job list error:", err)
		return internalError(c)
	}

	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid job id")
	}

	var job models.Job
	if err := h.DB.Preload("Company").First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Job not found")
		}
		log.Println("job get error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toJobResponse(&job),
	})
}

type CreateJobReq struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	RequiredLanguage string `json:"requiredLanguage"`
	RequiredSkills   string `json:"requiredSkills"`
	VisaSupport      bool   `json:"visaSupport"`
	// Legacy clients send companyId in the body. It is only checked
	// against the session, never trusted on its own.
	CompanyID uint `json:"companyId"`
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var req CreateJobReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.CompanyID == 0 {
		req.CompanyID = actor.ID
	}
	if err := actor.CanActAsCompany(req.CompanyID); err != nil {
		return denied(c, err)
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		errs.Add("description", "Description is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		errs.Add("location", "Location is required")
	}
	if strings.TrimSpace(req.RequiredLanguage) == "" {
		errs.Add("requiredLanguage", "Required language is required")
	}
	if strings.TrimSpace(req.RequiredSkills) == "" {
		errs.Add("requiredSkills", "Required skills are required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	job := models.Job{
		CompanyID:        actor.ID,
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Location:         strings.TrimSpace(req.Location),
		RequiredLanguage: strings.TrimSpace(req.RequiredLanguage),
		RequiredSkills:   strings.TrimSpace(req.RequiredSkills),
		VisaSupport:      req.VisaSupport,
	}
	if err := h.DB.Create(&job).Error; err != nil {
		log.Println("job create error:", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toJobResponse(&job),
	})
}

type UpdateJobReq struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Location         *string `json:"location"`
	RequiredLanguage *string `json:"requiredLanguage"`
	RequiredSkills   *string `json:"requiredSkills"`
	VisaSupport      *bool   `json:"visaSupport"`
}

// Update changes only the fields present in the body.
func (h *JobHandler) Update(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid job id")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Job not found")
		}
		log.Println("job update load error:", err)
		return internalError(c)
	}

	if err := actor.CanManageJob(&job); err != nil {
		return denied(c, err)
	}

	var req UpdateJobReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.RequiredLanguage != nil {
		updates["required_language"] = strings.TrimSpace(*req.RequiredLanguage)
	}
	if req.RequiredSkills != nil {
		updates["required_skills"] = strings.TrimSpace(*req.RequiredSkills)
	}
	if req.VisaSupport != nil {
		updates["visa_support"] = *req.VisaSupport
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&job).Updates(updates).Error; err != nil {
			log.Println("job update error:", err)
			return internalError(c)
		}
		if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
			log.Println("job reload error:", err)
			return internalError(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toJobResponse(&job),
	})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid job id")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Job not found")
		}
		log.Println("job delete load error:", err)
		return internalError(c)
	}

	if err := actor.CanManageJob(&job); err != nil {
		return denied(c, err)
	}

	if err := h.DB.Delete(&job).Error; err != nil {
		log.Println("job delete error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job deleted",
	})
}
