package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

type CandidateHandler struct {
	DB         *gorm.DB
	UploadDir  string
	AppBaseURL string
}

func NewCandidateHandler(db *gorm.DB, uploadDir, appBaseURL string) *CandidateHandler {
	return &CandidateHandler{DB: db, UploadDir: uploadDir, AppBaseURL: appBaseURL}
}

// CandidateProfile is the full profile view (no credentials).
type CandidateProfile struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Nationality    string          `json:"nationality"`
	JapaneseLevel  string          `json:"japaneseLevel"`
	Skills         string          `json:"skills"`
	VisaStatus     string          `json:"visaStatus"`
	CurrentJobType string          `json:"currentJobType"`
	SkillTest      string          `json:"skillTest"`
	UnionName      string          `json:"unionName"`
	RegisteredOrg  string          `json:"registeredOrg"`
	SelfPR         string          `json:"selfPr"`
	IntroVideoURL  string          `json:"introVideoUrl"`
	WorkHistory    json.RawMessage `json:"workHistory,omitempty"`
}

func toCandidateProfile(cd *models.Candidate) *CandidateProfile {
	if cd == nil {
		return nil
	}
	return &CandidateProfile{
		ID:             cd.ID,
		Name:           cd.Name,
		Email:          cd.Email,
		Nationality:    cd.Nationality,
		JapaneseLevel:  cd.JapaneseLevel,
		Skills:         cd.Skills,
		VisaStatus:     cd.VisaStatus,
		CurrentJobType: cd.CurrentJobType,
		SkillTest:      cd.SkillTest,
		UnionName:      cd.UnionName,
		RegisteredOrg:  cd.RegisteredOrg,
		SelfPR:         cd.SelfPR,
		IntroVideoURL:  cd.IntroVideoURL,
		WorkHistory:    json.RawMessage(cd.WorkHistory),
	}
}

// Search is the company-facing candidate search with free-text and
// per-field contains filters, newest first.
func (h *CandidateHandler) Search(c *fiber.Ctx) error {
	q := h.DB.Model(&models.Candidate{}).Order("created_at DESC")

	like := func(col, val string) {
		q = q.Where(col+" LIKE ?", "%"+val+"%")
	}

	if v := strings.TrimSpace(c.Query("nationality")); v != "" {
		like("nationality", v)
	}
	if v := strings.TrimSpace(c.Query("japaneseLevel")); v != "" {
		like("japanese_level", v)
	}
	if v := strings.TrimSpace(c.Query("skills")); v != "" {
		like("skills", v)
	}
	if v := strings.TrimSpace(c.Query("visaStatus")); v != "" {
		like("visa_status", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		pat := "%" + v + "%"
		q = q.Where(
			h.DB.Where("name LIKE ?", pat).
				Or("email LIKE ?", pat).
				Or("nationality LIKE ?", pat).
				Or("japanese_level LIKE ?", pat).
				Or("skills LIKE ?", pat).
				Or("visa_status LIKE ?", pat),
		)
	}

	var candidates []models.Candidate
	if err := q.Find(&candidates).Error; err != nil {
		log.Println("candidate search error:", err)
		return internalError(c)
	}

	out := make([]*CandidateSummary, 0, len(candidates))
	for i := range candidates {
		s := toCandidateSummary(&candidates[i])
		s.Email = "" // search results stay anonymous until scouted
		out = append(out, s)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Get returns one candidate's full profile to a company (scout flow).
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid candidate id")
	}

	var cd models.Candidate
	if err := h.DB.First(&cd, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Candidate not found")
		}
		log.Println("candidate get error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toCandidateProfile(&cd),
	})
}

// ProfileGet returns the session candidate's own profile.
func (h *CandidateHandler) ProfileGet(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var cd models.Candidate
	if err := h.DB.First(&cd, "id = ?", actor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Candidate not found")
		}
		log.Println("candidate profile get error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toCandidateProfile(&cd),
	})
}

// ProfileUpdate overwrites the profile from a multipart form. An
// optional introVideo file replaces the stored video URL.
func (h *CandidateHandler) ProfileUpdate(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var cd models.Candidate
	if err := h.DB.First(&cd, "id = ?", actor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Candidate not found")
		}
		log.Println("candidate profile load error:", err)
		return internalError(c)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	updates := map[string]interface{}{
		"name":             name,
		"email":            email,
		"nationality":      strings.TrimSpace(c.FormValue("nationality")),
		"japanese_level":   strings.TrimSpace(c.FormValue("japaneseLevel")),
		"skills":           strings.TrimSpace(c.FormValue("skills")),
		"visa_status":      strings.TrimSpace(c.FormValue("visaStatus")),
		"current_job_type": strings.TrimSpace(c.FormValue("currentJobType")),
		"skill_test":       strings.TrimSpace(c.FormValue("skillTest")),
		"union_name":       strings.TrimSpace(c.FormValue("unionName")),
		"registered_org":   strings.TrimSpace(c.FormValue("registeredOrg")),
		"self_pr":          strings.TrimSpace(c.FormValue("selfPr")),
	}

	if raw := strings.TrimSpace(c.FormValue("workHistory")); raw != "" {
		if !json.Valid([]byte(raw)) {
			errs := FieldErrors{}
			errs.Add("workHistory", "Work history must be valid JSON")
			return validationFail(c, errs)
		}
		updates["work_history"] = datatypes.JSON(raw)
	}

	if file, err := c.FormFile("introVideo"); err == nil && file != nil {
		url, err := utils.SaveUpload(c, file, h.UploadDir, "videos", "intro", h.AppBaseURL,
			[]string{".mp4", ".webm", ".mov"})
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Could not store intro video: "+err.Error())
		}
		updates["intro_video_url"] = url
	}

	if err := h.DB.Model(&cd).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			errs := FieldErrors{}
			errs.Add("email", "Email is already registered")
			return validationFail(c, errs)
		}
		log.Println("candidate profile update error:", err)
		return internalError(c)
	}

	if err := h.DB.First(&cd, "id = ?", actor.ID).Error; err != nil {
		log.Println("candidate profile reload error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    toCandidateProfile(&cd),
	})
}
