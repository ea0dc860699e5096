package main

import (
	"log"
	"time"

	config "github.com/anjiri1684/web3_university/configs"
	"github.com/anjiri1684/web3_university/database"
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/jobs"
	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/routes"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	db, err := database.Connect(config.Config("DATABASE_URL"))
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	chain, err := ledger.NewClient(ledger.Config{
		RPCURL:             config.Config("RPC_URL"),
		PrivateKey:         config.Config("BACKEND_SIGNER_PRIVATE_KEY"),
		RegistryAddress:    config.Config("COURSE_REGISTRY_ADDRESS"),
		PlatformAddress:    config.Config("COURSE_PLATFORM_ADDRESS"),
		CertificateAddress: config.Config("STUDENT_CERTIFICATE_ADDRESS"),
		BadgeAddress:       config.Config("TEACHER_BADGE_ADDRESS"),
	})
	if err != nil {
		log.Fatalf("🔥 Failed to initialize ledger client: %v", err)
	}
	log.Printf("✅ Ledger client ready, backend signer %s", chain.SignerAddress())

	jwtSecret := config.Config("JWT_SECRET")
	cloudinaryURL := config.Config("CLOUDINARY_URL")

	courseStore := services.NewCourseStore(db)
	userService := services.NewUserService(db)
	courseService := services.NewCourseService(courseStore, chain)
	reviewService := services.NewReviewService(db, courseStore)
	transactionService := services.NewTransactionService(db, courseStore)
	authService := services.NewAuthService(userService, jwtSecret)
	certificateService := services.NewCertificateService(db, userService, courseStore, chain, cloudinaryURL)
	learningRecordService := services.NewLearningRecordService(db, courseStore)

	ratingJob := jobs.NewRatingJob(db, reviewService, chain)
	reconcileJob := jobs.NewReconcileJob(db, chain)

	c := cron.New()
	c.AddFunc("*/10 * * * *", ratingJob.Run)
	c.AddFunc("0 * * * *", reconcileJob.Run)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Web3 University",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app, handlers.NewAuthHandler(authService, userService))
	routes.CourseRoutes(app, handlers.NewCourseHandler(courseService), jwtSecret)
	routes.ReviewRoutes(app, handlers.NewReviewHandler(reviewService), jwtSecret)
	routes.TransactionRoutes(app, handlers.NewTransactionHandler(transactionService), jwtSecret)
	routes.UserRoutes(app, handlers.NewUserHandler(userService), jwtSecret)
	routes.OnchainRoutes(app, handlers.NewOnchainHandler(chain, certificateService), jwtSecret)
	routes.UploadRoutes(app, handlers.NewUploadHandler(cloudinaryURL), jwtSecret)
	routes.LearningRecordRoutes(app, handlers.NewLearningRecordHandler(learningRecordService), jwtSecret)

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
