package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"vigilnet/internal/config"
	"vigilnet/internal/handler"
	"vigilnet/internal/repository"
	"vigilnet/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Repositories
	messageRepo := repository.NewMessageRepository(s.db, s.logger)
	profileRepo := repository.NewProfileRepository(s.db, s.logger)
	alertRepo := repository.NewAlertRepository(s.db, s.logger)
	codewordRepo := repository.NewCodewordRepository(s.db, s.logger)
	zoneRepo := repository.NewRiskZoneRepository(s.db, s.logger)

	// Services
	dashboard := service.NewDashboardService(profileRepo, alertRepo, messageRepo, s.logger)
	detector := service.NewDetector(codewordRepo, alertRepo, s.logger)

	// Handlers
	analyticsHandler := handler.NewAnalyticsHandler(dashboard, messageRepo, s.logger)
	messageHandler := handler.NewMessageHandler(messageRepo, detector, s.logger)
	profileHandler := handler.NewProfileHandler(profileRepo, s.logger)
	alertHandler := handler.NewAlertHandler(alertRepo, s.logger)
	codewordHandler := handler.NewCodewordHandler(codewordRepo, s.logger)
	zoneHandler := handler.NewRiskZoneHandler(zoneRepo, s.logger)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := s.router.Group("/api")
	{
		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", analyticsHandler.GetDashboard)
			analytics.GET("/channels", analyticsHandler.GetChannelCount)
			analytics.GET("/recent-messages", analyticsHandler.GetRecentMessages)
			analytics.GET("/high-risk-channels", analyticsHandler.GetHighRiskChannels)
			analytics.GET("/latest-messages", analyticsHandler.GetLatestMessages)
		}

		api.POST("/messages", messageHandler.SaveMessage)
		api.GET("/scan-results", messageHandler.GetScanResults)

		api.POST("/profiles", profileHandler.SaveProfile)
		api.GET("/profiles", profileHandler.GetAllProfiles)
		api.GET("/profiles/:id", profileHandler.GetProfileByID)

		api.GET("/alerts", alertHandler.GetAlerts)
		api.GET("/risk-zones", zoneHandler.GetRiskZones)
		api.GET("/codewords", codewordHandler.GetCodewords)
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
