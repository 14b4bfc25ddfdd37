package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/workbridge-jp/workbridge_be/internal/config"
	"github.com/workbridge-jp/workbridge_be/internal/db"
	"github.com/workbridge-jp/workbridge_be/internal/handlers"
	"github.com/workbridge-jp/workbridge_be/internal/middleware"
	"github.com/workbridge-jp/workbridge_be/internal/models"
	"github.com/workbridge-jp/workbridge_be/internal/realtime"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis not reachable, rate limiting disabled:", err)
		rdb = nil
	}
	limiter := middleware.NewRedisLimiter(rdb)

	hub := realtime.NewHub()
	go hub.Run()

	if err := gdb.AutoMigrate(
		&models.Candidate{},
		&models.Company{},
		&models.Job{},
		&models.Application{},
		&models.Scout{},
	); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Static("/uploads", cfg.UploadDir)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	jobH := handlers.NewJobHandler(gdb)
	appH := handlers.NewApplicationHandler(gdb, hub)
	scoutH := handlers.NewScoutHandler(gdb, hub)
	candH := handlers.NewCandidateHandler(gdb, cfg.UploadDir, cfg.AppBaseURL)
	compH := handlers.NewCompanyHandler(gdb, cfg.UploadDir, cfg.AppBaseURL)
	notifH := handlers.NewNotificationHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	// public, throttled
	auth := api.Group("/auth", middleware.RateLimit(limiter, "auth", 20, time.Minute))
	auth.Post("/candidate/register", authH.RegisterCandidate)
	auth.Post("/candidate/login", authH.LoginCandidate)
	auth.Post("/company/register", authH.RegisterCompany)
	auth.Post("/company/login", authH.LoginCompany)
	auth.Post("/logout", authH.Logout)
	auth.Get("/google/start", googleH.GoogleStart)
	auth.Get("/google/callback", googleH.GoogleCallback)

	// public job board
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)
	api.Get("/companies/:id", compH.ProfileGetPublic)

	// protected (JWT from cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	// company side
	protected.Post("/jobs", middleware.RequireRoles("company"), jobH.Create)
	protected.Patch("/jobs/:id", middleware.RequireRoles("company"), jobH.Update)
	protected.Delete("/jobs/:id", middleware.RequireRoles("company"), jobH.Delete)

	protected.Get("/candidates", middleware.RequireRoles("company"), candH.Search)
	protected.Get("/candidates/:id", middleware.RequireRoles("company"), candH.Get)

	protected.Post("/scouts", middleware.RequireRoles("company"), scoutH.Create)
	protected.Get("/scouts", scoutH.List)

	protected.Get("/company/profile", middleware.RequireRoles("company"), compH.ProfileGet)
	protected.Put("/company/profile", middleware.RequireRoles("company"), compH.ProfileUpdate)

	// candidate side
	protected.Post("/applications", middleware.RequireRoles("candidate"), appH.Create)
	protected.Get("/applications", appH.List)
	protected.Get("/applications/:id", appH.Get)
	protected.Patch("/applications/:id/status", middleware.RequireRoles("company"), appH.UpdateStatus)

	protected.Get("/candidate/profile", middleware.RequireRoles("candidate"), candH.ProfileGet)
	protected.Put("/candidate/profile", middleware.RequireRoles("candidate"), candH.ProfileUpdate)

	// notifications (token via query param)
	app.Get("/ws/notifications", websocket.New(notifH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
