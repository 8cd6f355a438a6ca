package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	"github.com/Athycodz/CoMpliment-Walll/internal/auth"
	"github.com/Athycodz/CoMpliment-Walll/internal/config"
	"github.com/Athycodz/CoMpliment-Walll/internal/digest"
	"github.com/Athycodz/CoMpliment-Walll/internal/email"
	"github.com/Athycodz/CoMpliment-Walll/internal/fcm"
	"github.com/Athycodz/CoMpliment-Walll/internal/middleware"
	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
	"github.com/Athycodz/CoMpliment-Walll/internal/service"
	"github.com/Athycodz/CoMpliment-Walll/internal/store"
	httptransport "github.com/Athycodz/CoMpliment-Walll/internal/transport/http"
	"github.com/Athycodz/CoMpliment-Walll/utils"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	ctx := context.Background()
	cfg := config.Load()
	store.InitDB(cfg)

	// Identity provider is required: there is no anonymous surface besides /health.
	if cfg.FirebaseCredentialsJSON == "" {
		log.Fatalf("❌ [AUTH] FIREBASE_CREDENTIALS_JSON is required")
	}
	authProvider, err := auth.NewProvider(ctx, []byte(cfg.FirebaseCredentialsJSON))
	if err != nil {
		log.Fatalf("❌ [AUTH] Failed to initialize Firebase: %v", err)
	}
	log.Println("✅ [AUTH] Firebase provider initialized")

	// Moderation degrades to fail-open when no API key is set.
	moderator, err := moderation.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ModerationTimeout)
	if err != nil {
		log.Fatalf("❌ [MODERATION] Failed to initialize Gemini client: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️ [MODERATION] GEMINI_API_KEY missing, every message passes with the fallback reason")
	} else {
		log.Printf("✅ [MODERATION] Gemini client initialized (model: %s)", cfg.GeminiModel)
	}

	// Push notifications are optional; shares the Firebase app with auth.
	var fcmClient *fcm.Client
	if client, err := fcm.NewClient(ctx, authProvider.App()); err != nil {
		log.Printf("⚠️ [FCM] Disabled: %v", err)
	} else {
		fcmClient = client
		log.Println("✅ [FCM] Messaging client initialized")
	}

	var emailSender *email.Sender
	if cfg.SMTPHost != "" {
		emailSender = email.NewSender(cfg)
		log.Printf("✅ [EMAIL] SMTP sender initialized (%s:%d)", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		log.Println("⚠️ [EMAIL] Disabled (no SMTP_HOST)")
	}

	var r2Client *utils.AvatarR2Client
	if cfg.R2AccountID != "" {
		r2Client, err = utils.NewAvatarR2Client(utils.AvatarR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
		}
		log.Println("✅ [R2] Avatar storage initialized")
	} else {
		log.Println("⚠️ [R2] Avatar uploads disabled (no R2_ACCOUNT_ID)")
	}

	wallService := service.NewWallService(store.GetDB(), moderator, emailSender, fcmClient)
	handler := httptransport.NewHandler(wallService, authProvider, r2Client)
	log.Println("✅ [SERVICE] WallService & Handler initialized")

	if cfg.DigestEnabled && emailSender != nil {
		digest.NewJob(store.GetDB(), emailSender, cfg.DigestHour).Start()
		log.Printf("✅ [DIGEST] Daily unread digest scheduled for %02d:00", cfg.DigestHour)
	}

	app := fiber.New(fiber.Config{
		AppName:      "compliment-wall",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	// 1. Public routes
	app.Post("/v1/auth/register", handler.Register)
	log.Println("✅ [ROUTES] Registered public route: /v1/auth/register")

	// 2. Member routes (Firebase ID token required)
	secured := app.Group("/v1", middleware.RequireAuth(authProvider))
	secured.Get("/me", handler.Me)
	secured.Post("/me/avatar", handler.UploadAvatar)
	secured.Post("/me/device-token", handler.RegisterDeviceToken)
	secured.Delete("/me/device-token", handler.UnregisterDeviceToken)
	secured.Get("/inbox", handler.GetInbox)
	secured.Post("/inbox/:id/read", handler.MarkRead)
	secured.Get("/members", handler.GetMembers)
	log.Println("✅ [ROUTES] Registered member routes: /v1/*")

	// Submissions get their own per-IP budget on top of auth: one every
	// 10 seconds, small burst for the honest double-click.
	submitLimiter := middleware.NewIPRateLimiter(rate.Every(10*time.Second), 3)
	secured.Post("/compliments", middleware.RateLimit(submitLimiter), handler.SendCompliment)
	log.Println("✅ [ROUTES] Registered rate-limited route: /v1/compliments")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":             "ok",
			"service":            "compliment-wall",
			"uptime":             uptime.String(),
			"timestamp":          time.Now().UTC().Format(time.RFC3339),
			"moderation_enabled": cfg.GeminiAPIKey != "",
			"fcm_enabled":        fcmClient != nil,
			"email_enabled":      emailSender != nil,
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 compliment-wall starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   🤖 Moderation model: %s", cfg.GeminiModel)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error":      "something went wrong",
		"request_id": c.Get("X-Request-ID"),
	})
}
