package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/middleware"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int // minutes
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

type CandidateRegisterReq struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Nationality   string `json:"nationality"`
	JapaneseLevel string `json:"japaneseLevel"`
	Skills        string `json:"skills"`
	VisaStatus    string `json:"visaStatus"`
}

func (h *AuthHandler) RegisterCandidate(c *fiber.Ctx) error {
	var req CandidateRegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email is not valid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.Candidate
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return internalError(c)
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return internalError(c)
	}

	cd := models.Candidate{
		Name:          name,
		Email:         email,
		Password:      pw,
		Nationality:   strings.TrimSpace(req.Nationality),
		JapaneseLevel: strings.TrimSpace(req.JapaneseLevel),
		Skills:        strings.TrimSpace(req.Skills),
		VisaStatus:    strings.TrimSpace(req.VisaStatus),
	}
	if err := h.DB.Create(&cd).Error; err != nil {
		return internalError(c)
	}

	token, err := utils.SignJWT(h.JWTSecret, cd.ID, "candidate", h.Expires)
	if err != nil {
		return internalError(c)
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    cd.ID,
				"name":  cd.Name,
				"email": cd.Email,
				"role":  "candidate",
			},
		},
	})
}

type CompanyRegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Website  string `json:"website"`
}

func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var req CompanyRegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Company name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Email is not valid")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.Company
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Email is already registered")
		return validationFail(c, errs)
	} else if err != gorm.ErrRecordNotFound {
		return internalError(c)
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return internalError(c)
	}

	co := models.Company{
		Name:     name,
		Email:    email,
		Password: pw,
		Country:  strings.TrimSpace(req.Country),
		City:     strings.TrimSpace(req.City),
		Website:  strings.TrimSpace(req.Website),
	}
	if err := h.DB.Create(&co).Error; err != nil {
		return internalError(c)
	}

	token, err := utils.SignJWT(h.JWTSecret, co.ID, "company", h.Expires)
	if err != nil {
		return internalError(c)
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    co.ID,
				"name":  co.Name,
				"email": co.Email,
				"role":  "company",
			},
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) LoginCandidate(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var cd models.Candidate
	if err := h.DB.Where("email = ?", email).First(&cd).Error; err != nil {
		// same message for unknown email and wrong password
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if !utils.CheckPassword(cd.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	token, err := utils.SignJWT(h.JWTSecret, cd.ID, "candidate", h.Expires)
	if err != nil {
		return internalError(c)
	}
	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    cd.ID,
				"name":  cd.Name,
				"email": cd.Email,
				"role":  "candidate",
			},
		},
	})
}

func (h *AuthHandler) LoginCompany(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var co models.Company
	if err := h.DB.Where("email = ?", email).First(&co).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if !utils.CheckPassword(co.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	token, err := utils.SignJWT(h.JWTSecret, co.ID, "company", h.Expires)
	if err != nil {
		return internalError(c)
	}
	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in",
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    co.ID,
				"name":  co.Name,
				"email": co.Email,
				"role":  "company",
			},
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
