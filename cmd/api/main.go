package main

import (
	"log"
	"os"

	_ "attendance/api/swagger" // swagger docs
	"attendance/internal/auth"
	"attendance/internal/database"
	"attendance/internal/handler"
	"attendance/internal/identity"
	"attendance/internal/middleware"
	"attendance/internal/repository"
	"attendance/internal/service"
	"attendance/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Attendance & HR Administration API
// @version         1.0
// @description     Multi-tenant employee attendance and HR administration backend.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	authStore := auth.NewStore(db)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	resolver := identity.NewResolver(userRepo, authStore)

	authService := service.NewAuthService(authStore, userRepo, resolver, middleware.GetJWTSecret())
	employeeService := service.NewEmployeeService(userRepo, auditRepo, txManager)
	attendanceService := service.NewAttendanceService(attendanceRepo, auditRepo, txManager, wsHub)
	provisionService := service.NewProvisionService(authStore, userRepo, auditRepo, txManager)
	reportService := service.NewReportService(userRepo, attendanceRepo)
	orgService := service.NewOrgService(orgRepo)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService, provisionService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	provisionHandler := handler.NewProvisionHandler(provisionService)
	reportHandler := handler.NewReportHandler(reportService)
	orgHandler := handler.NewOrgHandler(orgService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authMW := middleware.RequireAuth()
	profileMW := middleware.LoadProfile(userRepo)

	authHandler.RegisterRoutes(router.Group(""), authMW)
	employeeHandler.RegisterRoutes(router.Group(""), authMW, profileMW)
	attendanceHandler.RegisterRoutes(router.Group(""), authMW, profileMW)
	provisionHandler.RegisterRoutes(router.Group(""), authMW, profileMW)
	reportHandler.RegisterRoutes(router.Group(""), authMW, profileMW)
	orgHandler.RegisterRoutes(router.Group(""), authMW, profileMW)
	auditHandler.RegisterRoutes(router.Group(""), authMW, profileMW)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
