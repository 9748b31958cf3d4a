// @title           SudInd Connect API
// @version         1.0
// @description     Role-based portal backend for cross-border medical and academic case processing: cases, documents, invoices, messaging, and contracts over a seeded in-memory store.
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Format: Bearer <token>
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Harishrk21/sudind-connect-sub000/internal/auth"
	"github.com/Harishrk21/sudind-connect-sub000/internal/cases"
	"github.com/Harishrk21/sudind-connect-sub000/internal/contracts"
	"github.com/Harishrk21/sudind-connect-sub000/internal/documents"
	"github.com/Harishrk21/sudind-connect-sub000/internal/invoices"
	"github.com/Harishrk21/sudind-connect-sub000/internal/mailer"
	"github.com/Harishrk21/sudind-connect-sub000/internal/messages"
	"github.com/Harishrk21/sudind-connect-sub000/internal/notifications"
	"github.com/Harishrk21/sudind-connect-sub000/internal/notify"
	"github.com/Harishrk21/sudind-connect-sub000/internal/users"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/config"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("logger init failed:", err)
	}
	defer logger.Sync()

	// One store per process: everything lives in memory for the lifetime of
	// the server and is rebuilt from fixtures on restart.
	st := store.New()
	st.Seed()
	logger.Info("fixtures seeded",
		zap.Int("users", len(st.Users(""))),
		zap.Int("cases", len(st.Cases())))

	var mail notify.Mailer
	if m := mailer.New(cfg); m != nil {
		mail = m
		logger.Info("smtp mail enabled", zap.String("host", cfg.SMTPHost))
	} else {
		logger.Info("smtp not configured, notification mail disabled")
	}
	notifier := notify.New(st, mail, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")
	secret := []byte(cfg.JWTSecret)

	// Auth
	authH := auth.NewHandler(st, cfg)
	api.Post("/login", auth.LoginLimiter(cfg.LoginRatePerSec, cfg.LoginBurst), authH.Login)
	api.Post("/register", authH.Register)
	api.Get("/me", auth.RequireAuth(secret), authH.Me)

	// Users (admin)
	userH := users.NewHandler(st)
	api.Post("/users", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), userH.Create)
	api.Get("/users", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), userH.List)
	api.Patch("/users/:id", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), userH.Update)
	api.Delete("/users/:id", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), userH.Delete)

	// Cases: static paths before parameterized ones so /mine and friends are
	// not shadowed by /:id.
	caseH := cases.NewHandler(st, notifier)
	api.Post("/cases", auth.RequireAuth(secret), auth.RequireRole(models.RoleClient, models.RoleAdmin), caseH.Create)
	api.Get("/cases/mine", auth.RequireAuth(secret), auth.RequireRole(models.RoleClient), caseH.ListMine)
	api.Get("/cases/assigned", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent), caseH.ListAssigned)
	api.Get("/cases/pool", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent), caseH.Pool)
	api.Get("/cases", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), caseH.ListAll)
	api.Get("/clients/mine", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent), caseH.ClientsMine)
	api.Post("/cases/:id/claim", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent), caseH.Claim)
	api.Post("/cases/:id/status", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent, models.RoleAdmin), caseH.UpdateStatus)
	api.Get("/cases/:id/timeline", auth.RequireAuth(secret), caseH.Timeline)
	api.Get("/cases/:id/history", auth.RequireAuth(secret), caseH.History)
	api.Patch("/cases/:id", auth.RequireAuth(secret), auth.RequireRole(models.RoleAgent, models.RoleAdmin), caseH.Update)
	api.Delete("/cases/:id", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), caseH.Delete)
	api.Get("/cases/:id", auth.RequireAuth(secret), caseH.GetDetail)

	// Documents
	docH := documents.NewHandler(st)
	api.Post("/cases/:id/documents", auth.RequireAuth(secret), docH.Upload)
	api.Get("/cases/:id/documents", auth.RequireAuth(secret), docH.List)
	api.Delete("/documents/:id", auth.RequireAuth(secret), docH.Delete)

	// Invoices
	invH := invoices.NewHandler(st, notifier)
	api.Post("/invoices", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin, models.RoleAgent), invH.Create)
	api.Get("/invoices/mine", auth.RequireAuth(secret), auth.RequireRole(models.RoleClient), invH.ListMine)
	api.Post("/invoices/sweep-overdue", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), invH.SweepOverdue)
	api.Get("/invoices", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), invH.ListAll)
	api.Post("/invoices/:id/pay", auth.RequireAuth(secret), auth.RequireRole(models.RoleClient, models.RoleAdmin), invH.Pay)
	api.Get("/cases/:id/invoices", auth.RequireAuth(secret), invH.ListByCase)

	// Messages
	msgH := messages.NewHandler(st)
	api.Post("/messages", auth.RequireAuth(secret), msgH.Send)
	api.Get("/messages/unread-count", auth.RequireAuth(secret), msgH.UnreadCount)
	api.Get("/messages/with/:userID", auth.RequireAuth(secret), msgH.Conversation)
	api.Post("/messages/:id/read", auth.RequireAuth(secret), msgH.MarkRead)
	api.Get("/messages", auth.RequireAuth(secret), msgH.Inbox)

	// Notifications
	notifH := notifications.NewHandler(st)
	api.Get("/notifications", auth.RequireAuth(secret), notifH.List)
	api.Post("/notifications/read-all", auth.RequireAuth(secret), notifH.MarkAllRead)
	api.Post("/notifications/:id/read", auth.RequireAuth(secret), notifH.MarkRead)

	// Contracts
	ctH := contracts.NewHandler(st, notifier)
	api.Post("/contracts", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), ctH.Create)
	api.Get("/contracts/mine", auth.RequireAuth(secret), auth.RequireRole(models.RoleClient), ctH.ListMine)
	api.Get("/contracts", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), ctH.ListAll)
	api.Patch("/contracts/:id", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), ctH.Update)
	api.Post("/contracts/:id/archive", auth.RequireAuth(secret), auth.RequireRole(models.RoleAdmin), ctH.Archive)

	logger.Info("server running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
