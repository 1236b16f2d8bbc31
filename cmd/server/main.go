package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railbook/train-booking-backend/internal/config"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/handlers"
	"github.com/railbook/train-booking-backend/internal/middleware"
	"github.com/railbook/train-booking-backend/internal/services"
	"github.com/railbook/train-booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Railbook Train Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Repositories
	accountRepo := database.NewAccountRepository(db)
	trainRepo := database.NewTrainRepository(db)
	coachRepo := database.NewCoachRepository(db)
	instanceRepo := database.NewTrainInstanceRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	ticketRepo := database.NewTicketRepository(db)

	// Services
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(accountRepo, jwtService, cfg.Security.BcryptCost, logger)
	trainService := services.NewTrainService(trainRepo, instanceRepo, cfg.Booking)
	coachService := services.NewCoachService(coachRepo, trainRepo, instanceRepo, logger)
	instanceService := services.NewTrainInstanceService(instanceRepo, trainRepo, coachRepo)
	chartService := services.NewChartService(trainRepo, instanceRepo, coachRepo)
	reservationService := services.NewReservationService(
		db, trainRepo, instanceRepo, coachRepo, bookingRepo, ticketRepo, cfg.Booking, logger)
	ticketQueryService := services.NewTicketQueryService(ticketRepo, bookingRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	trainHandler := handlers.NewTrainHandler(trainService)
	coachHandler := handlers.NewCoachHandler(coachService)
	instanceHandler := handlers.NewTrainInstanceHandler(instanceService, chartService)
	bookingHandler := handlers.NewBookingHandler(reservationService, ticketQueryService)
	ticketHandler := handlers.NewTicketHandler(ticketQueryService)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(middleware.RequestLogger(logger))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/profile", middleware.AuthMiddleware(jwtService), authHandler.GetProfile)
		}

		trains := v1.Group("/trains")
		{
			trains.GET("", trainHandler.ListTrains)
			trains.GET("/active", trainHandler.ListActiveTrains)
			trains.GET("/cities", trainHandler.ListCities)
			trains.GET("/search", trainHandler.SearchTrains)
			trains.GET("/:trainNumber", trainHandler.GetTrainByNumber)
			trains.GET("/:trainNumber/info", trainHandler.GetTrainInfo)
			trains.GET("/:trainNumber/coaches", coachHandler.ListCoachesForTrain)
			trains.POST("", middleware.AuthMiddleware(jwtService), middleware.RequireAdmin(), trainHandler.AddTrain)
		}

		coaches := v1.Group("/coaches")
		{
			coaches.GET("/:coachNumber", coachHandler.GetCoachDetails)
			coaches.POST("", middleware.AuthMiddleware(jwtService), middleware.RequireAdmin(), coachHandler.AddCoach)
		}

		v1.POST("/train-instances", middleware.AuthMiddleware(jwtService), middleware.RequireAdmin(), instanceHandler.CreateTrainInstance)
		v1.GET("/charts", instanceHandler.GetReservationChart)

		bookings := v1.Group("/bookings", middleware.AuthMiddleware(jwtService))
		{
			bookings.POST("", bookingHandler.BookTickets)
			bookings.GET("", bookingHandler.GetBookingHistory)
		}

		v1.GET("/tickets/:pnrNumber", ticketHandler.GetTicketByPNR)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
