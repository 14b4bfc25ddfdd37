package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

type CompanyHandler struct {
	DB         *gorm.DB
	UploadDir  string
	AppBaseURL string
}

func NewCompanyHandler(db *gorm.DB, uploadDir, appBaseURL string) *CompanyHandler {
	return &CompanyHandler{DB: db, UploadDir: uploadDir, AppBaseURL: appBaseURL}
}

// ProfileGet returns the session company's own profile.
func (h *CompanyHandler) ProfileGet(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var co models.Company
	if err := h.DB.First(&co, "id = ?", actor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Company not found")
		}
		log.Println("company profile get error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    co,
	})
}

// ProfileGetPublic returns the profile candidates see on a job page.
func (h *CompanyHandler) ProfileGetPublic(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid company id")
	}

	var co models.Company
	if err := h.DB.First(&co, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Company not found")
		}
		log.Println("company public profile error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    co,
	})
}

// profileFields maps multipart form keys onto company columns. All of
// them are plain overwrites.
var profileFields = map[string]string{
	"name":                    "name",
	"country":                 "country",
	"city":                    "city",
	"website":                 "website",
	"overview":                "overview",
	"foundedYear":             "founded_year",
	"capital":                 "capital",
	"employees":               "employees",
	"representative":          "representative",
	"headquarters":            "headquarters",
	"recruitmentTypes":        "recruitment_types",
	"recruitmentTarget":       "recruitment_target",
	"employmentType":          "employment_type",
	"workLocation":            "work_location",
	"workingHours":            "working_hours",
	"initialSalary":           "initial_salary",
	"annualSalary":            "annual_salary",
	"bonusInfo":               "bonus_info",
	"benefits":                "benefits",
	"socialInsurance":         "social_insurance",
	"housingAllowance":        "housing_allowance",
	"transportationAllowance": "transportation_allowance",
	"training":                "training",
	"certificateSupport":      "certificate_support",
	"avgAge":                  "avg_age",
	"genderRatio":             "gender_ratio",
	"overtimeHours":           "overtime_hours",
	"vacationRate":            "vacation_rate",
	"remoteFlexible":          "remote_flexible",
	"foreignerHiringRecord":   "foreigner_hiring_record",
	"visaSupport":             "visa_support",
	"internalLanguage":        "internal_language",
	"japaneseLevel":           "japanese_level",
	"acceptedNationality":     "accepted_nationality",
	"livingSupport":           "living_support",
}

// ProfileUpdate overwrites the company profile from a multipart form.
// An optional logo file replaces the stored logo URL.
func (h *CompanyHandler) ProfileUpdate(c *fiber.Ctx) error {
	actor := access.FromLocals(c)

	var co models.Company
	if err := h.DB.First(&co, "id = ?", actor.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, fiber.StatusNotFound, "Company not found")
		}
		log.Println("company profile load error:", err)
		return internalError(c)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		errs := FieldErrors{}
		errs.Add("name", "Company name is required")
		return validationFail(c, errs)
	}

	updates := map[string]interface{}{}
	for formKey, column := range profileFields {
		updates[column] = strings.TrimSpace(c.FormValue(formKey))
	}
	updates["name"] = name

	if email := strings.ToLower(strings.TrimSpace(c.FormValue("email"))); email != "" {
		updates["email"] = email
	}

	if file, err := c.FormFile("logo"); err == nil && file != nil {
		url, err := utils.SaveUpload(c, file, h.UploadDir, "logos", "logo", h.AppBaseURL,
			[]string{".jpg", ".jpeg", ".png", ".webp"})
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Could not store logo: "+err.Error())
		}
		updates["company_logo"] = url
	}

	if err := h.DB.Model(&co).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			errs := FieldErrors{}
			errs.Add("email", "Email is already registered")
			return validationFail(c, errs)
		}
		log.Println("company profile update error:", err)
		return internalError(c)
	}

	if err := h.DB.First(&co, "id = ?", actor.ID).Error; err != nil {
		log.Println("company profile reload error:", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    co,
	})
}
