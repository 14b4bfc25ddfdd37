package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/workbridge-jp/workbridge_be/internal/access"
	"github.com/workbridge-jp/workbridge_be/internal/models"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func internalError(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Unexpected server error")
}

// denied maps guard errors onto 401/403 responses.
func denied(c *fiber.Ctx, err error) error {
	if errors.Is(err, access.ErrUnauthorized) {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}
	return fail(c, fiber.StatusForbidden, "You are not allowed to do that")
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func parseIDQuery(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// CandidateSummary is the slim candidate view embedded in lists.
type CandidateSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Nationality   string `json:"nationality"`
	JapaneseLevel string `json:"japaneseLevel"`
	Skills        string `json:"skills"`
	VisaStatus    string `json:"visaStatus"`
}

func toCandidateSummary(cd *models.Candidate) *CandidateSummary {
	if cd == nil {
		return nil
	}
	return &CandidateSummary{
		ID:            cd.ID,
		Name:          cd.Name,
		Email:         cd.Email,
		Nationality:   cd.Nationality,
		JapaneseLevel: cd.JapaneseLevel,
		Skills:        cd.Skills,
		VisaStatus:    cd.VisaStatus,
	}
}

// CompanySummary is the slim company view embedded in lists.
type CompanySummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Website     string `json:"website"`
	CompanyLogo string `json:"companyLogo,omitempty"`
}

func toCompanySummary(co *models.Company) *CompanySummary {
	if co == nil {
		return nil
	}
	return &CompanySummary{
		ID:          co.ID,
		Name:        co.Name,
		Country:     co.Country,
		City:        co.City,
		Website:     co.Website,
		CompanyLogo: co.CompanyLogo,
	}
}
