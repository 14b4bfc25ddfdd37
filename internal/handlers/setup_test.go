package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/workbridge-jp/workbridge_be/internal/middleware"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/realtime"
	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection, or every pooled conn gets its own :memory: db
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.Candidate{},
		&models.Company{},
		&models.Job{},
		&models.Application{},
		&models.Scout{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// newTestApp wires the same routes as cmd/api/main.go against an
// in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	gdb := newTestDB(t)

	hub := realtime.NewHub()
	go hub.Run()

	authH := &AuthHandler{DB: gdb, JWTSecret: testSecret, Expires: 60}
	jobH := NewJobHandler(gdb)
	appH := NewApplicationHandler(gdb, hub)
	scoutH := NewScoutHandler(gdb, hub)
	candH := NewCandidateHandler(gdb, t.TempDir(), "")
	compH := NewCompanyHandler(gdb, t.TempDir(), "")

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/candidate/register", authH.RegisterCandidate)
	api.Post("/auth/candidate/login", authH.LoginCandidate)
	api.Post("/auth/company/register", authH.RegisterCompany)
	api.Post("/auth/company/login", authH.LoginCompany)
	api.Post("/auth/logout", authH.Logout)

	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)
	api.Get("/companies/:id", compH.ProfileGetPublic)

	protected := api.Group("/",
		middleware.JWTFromCookie(testSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Post("/jobs", middleware.RequireRoles("company"), jobH.Create)
	protected.Patch("/jobs/:id", middleware.RequireRoles("company"), jobH.Update)
	protected.Delete("/jobs/:id", middleware.RequireRoles("company"), jobH.Delete)

	protected.Get("/candidates", middleware.RequireRoles("company"), candH.Search)
	protected.Get("/candidates/:id", middleware.RequireRoles("company"), candH.Get)

	protected.Post("/scouts", middleware.RequireRoles("company"), scoutH.Create)
	protected.Get("/scouts", scoutH.List)

	protected.Get("/company/profile", middleware.RequireRoles("company"), compH.ProfileGet)
	protected.Put("/company/profile", middleware.RequireRoles("company"), compH.ProfileUpdate)

	protected.Post("/applications", middleware.RequireRoles("candidate"), appH.Create)
	protected.Get("/applications", appH.List)
	protected.Get("/applications/:id", appH.Get)
	protected.Patch("/applications/:id/status", middleware.RequireRoles("company"), appH.UpdateStatus)

	protected.Get("/candidate/profile", middleware.RequireRoles("candidate"), candH.ProfileGet)
	protected.Put("/candidate/profile", middleware.RequireRoles("candidate"), candH.ProfileUpdate)

	return app, gdb
}

func sessionCookie(t *testing.T, role string, id uint) *http.Cookie {
	t.Helper()
	tok, err := utils.SignJWT(testSecret, id, role, 60)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return &http.Cookie{Name: middleware.TokenCookie, Value: tok}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	env := decodeEnvelope(t, resp)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// seed helpers

func seedCandidate(t *testing.T, gdb *gorm.DB, name, email string) models.Candidate {
	t.Helper()
	pw, _ := utils.HashPassword("password123")
	cd := models.Candidate{
		Name:          name,
		Email:         email,
		Password:      pw,
		Nationality:   "Vietnam",
		JapaneseLevel: "N2",
		Skills:        "JavaScript, React",
		VisaStatus:    "Engineer",
	}
	if err := gdb.Create(&cd).Error; err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return cd
}

func seedCompany(t *testing.T, gdb *gorm.DB, name, email string) models.Company {
	t.Helper()
	pw, _ := utils.HashPassword("company123")
	co := models.Company{
		Name:     name,
		Email:    email,
		Password: pw,
		Country:  "Japan",
		City:     "Tokyo",
	}
	if err := gdb.Create(&co).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return co
}

func seedJob(t *testing.T, gdb *gorm.DB, companyID uint, title string) models.Job {
	t.Helper()
	job := models.Job{
		CompanyID:        companyID,
		Title:            title,
		Description:      "Building web applications",
		Location:         "Tokyo",
		RequiredLanguage: "N2",
		RequiredSkills:   "JavaScript",
		VisaSupport:      true,
	}
	if err := gdb.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func seedApplication(t *testing.T, gdb *gorm.DB, jobID, candidateID uint, createdAt time.Time) models.Application {
	t.Helper()
	app := models.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      models.StatusUnconfirmed,
		CreatedAt:   createdAt,
	}
	if err := gdb.Create(&app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func seedScout(t *testing.T, gdb *gorm.DB, companyID, candidateID uint, message string, createdAt time.Time) models.Scout {
	t.Helper()
	s := models.Scout{
		CompanyID:   companyID,
		CandidateID: candidateID,
		Message:     message,
		CreatedAt:   createdAt,
	}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("seed scout: %v", err)
	}
	return s
}
