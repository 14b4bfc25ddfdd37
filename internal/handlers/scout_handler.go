package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/realtime"
)

type ScoutHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewScoutHandler(db *gorm.DB, hub *realtime.Hub) *ScoutHandler {
	return &ScoutHandler{DB: db, Hub: hub}
}

type ScoutResponse struct {
	ID          uint      `json:"id"`
	CompanyID   uint      `json:"companyId"`
	CandidateID uint      `json:"candidateId"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`

	Company   *CompanySummary   `json:"company,omitempty"`
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

func toScoutResponse(s *models.Scout) ScoutResponse {
	return ScoutResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		CandidateID: s.CandidateID,
		Message:     s.Message,
		CreatedAt:   s.CreatedAt,
		Company:     toCompanySummary(s.Company),
		Candidate:   toCandidateSummary(s.Candidate),
	}
}

type CreateScoutReq struct {
	CandidateID uint   `json:"candidateId"`
	Message     string `json:"message"`
	// Legacy body field, checked against the session company.
	CompanyID uint `json:"companyId"`
}

// Create sends a scout message to a candidate. Duplicates are fine: a
// company may scout the same candidate as often as it likes.
func (h *ScoutHandler) Create(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var req CreateScoutReq
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
	if req.CandidateID == 0 {
		errs.Add("candidateId", "Candidate is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		errs.Add("message", "Message is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	// the recipient must exist; a scout to a deleted candidate would
	// otherwise sit unread forever
	var candidate models.Candidate
	if err := h.DB.First(&candidate, "id = ?", req.CandidateID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "The specified candidate was not found")
		}
		log.Println("scout candidate lookup error:", err)
		return internalError(c)
	}

	scout := models.Scout{
		CompanyID:   actor.ID,
		CandidateID: req.CandidateID,
		Message:     strings.TrimSpace(req.Message),
	}
	if err := h.DB.Create(&scout).Error; err != nil {
		log.Println("scout create error:", err)
		return internalError(c)
	}

	if h.Hub != nil {
		h.Hub.SendToUser(realtime.UserRef{Role: "candidate", ID: scout.CandidateID}, fiber.Map{
			"type":      "new_scout",
			"scoutId":   scout.ID,
			"companyId": scout.CompanyID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toScoutResponse(&scout),
	})
}

// List returns scouts newest first: a company sees the candidates it
// scouted, a candidate sees the companies that scouted them.
func (h *ScoutHandler) List(c *fiber.Ctx) error {
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

	q := h.DB.Order("created_at DESC")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID).Preload("Candidate")
	}
	if candidateID != 0 {
		q = q.Where("candidate_id = ?", candidateID).Preload("Company")
	}

	var scouts []models.Scout
	if err := q.Find(&scouts).Error; err != nil {
		log.Println("scout list error:", err)
		return internalError(c)
	}

	out := make([]ScoutResponse, 0, len(scouts))
	for i := range scouts {
		out = append(out, toScoutResponse(&scouts[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
