package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/241luca/soccer-manager/internal/adapters/config"
	httpController "github.com/241luca/soccer-manager/internal/adapters/controller/http"
	"github.com/241luca/soccer-manager/internal/adapters/controller/http/handlers"
	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/adapters/controller/http/ws"
	"github.com/241luca/soccer-manager/internal/adapters/controller/scheduler"
	"github.com/241luca/soccer-manager/internal/adapters/database/postgres"
	"github.com/241luca/soccer-manager/internal/adapters/filestore"
	"github.com/241luca/soccer-manager/internal/domain/service"
	"github.com/241luca/soccer-manager/pkg/logger"
	"github.com/241luca/soccer-manager/pkg/smtp"
	"github.com/241luca/soccer-manager/pkg/token"
)

// Server owns the HTTP listener and the background sweep scheduler.
type Server struct {
	httpServer *http.Server
	sweeper    *scheduler.SweepScheduler
	logger     *logger.Logger
}

// New assembles storages, services and handlers on top of the connections
// opened by config.Get.
func New(cfg *config.Config) (*Server, error) {
	apiLogger, err := logger.Named("api")
	if err != nil {
		return nil, err
	}
	sweepLogger, err := logger.Named("sweep")
	if err != nil {
		return nil, err
	}

	files, err := filestore.New(filestore.Config{
		Root:    viper.GetString("service.uploads.dir"),
		MaxSize: viper.GetInt64("service.uploads.max-size"),
	})
	if err != nil {
		return nil, err
	}

	tokens := token.NewTokenManager(token.TokenConfig{
		AccessSecret:  viper.GetString("service.jwt.access-secret"),
		RefreshSecret: viper.GetString("service.jwt.refresh-secret"),
		AccessTTL:     viper.GetDuration("service.jwt.access-ttl"),
		RefreshTTL:    viper.GetDuration("service.jwt.refresh-ttl"),
	})

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.email"),
		viper.GetString("service.smtp.password"),
	)
	mailer := smtp.NewClient(dialer)

	clock := clockwork.NewRealClock()
	validate := validator.New()
	hub := ws.NewHub(apiLogger)

	userStorage := postgres.NewUserStorage(cfg.Database)
	membershipStorage := postgres.NewMembershipStorage(cfg.Database)
	organizationStorage := postgres.NewOrganizationStorage(cfg.Database)
	roleStorage := postgres.NewRoleStorage(cfg.Database)
	invitationStorage := postgres.NewInvitationStorage(cfg.Database)
	athleteStorage := postgres.NewAthleteStorage(cfg.Database)
	teamStorage := postgres.NewTeamStorage(cfg.Database)
	matchStorage := postgres.NewMatchStorage(cfg.Database)
	paymentStorage := postgres.NewPaymentStorage(cfg.Database)
	paymentTypeStorage := postgres.NewPaymentTypeStorage(cfg.Database)
	documentStorage := postgres.NewDocumentStorage(cfg.Database)
	documentTypeStorage := postgres.NewDocumentTypeStorage(cfg.Database)
	transportStorage := postgres.NewTransportStorage(cfg.Database)
	notificationStorage := postgres.NewNotificationStorage(cfg.Database)
	auditStorage := postgres.NewAuditStorage(cfg.Database)
	dashboardStorage := postgres.NewDashboardStorage(cfg.Database)

	notificationService := service.NewNotificationService(notificationStorage, hub, clock, apiLogger)
	authService := service.NewAuthService(
		userStorage,
		membershipStorage,
		organizationStorage,
		roleStorage,
		invitationStorage,
		cfg.Redis.Sessions,
		tokens,
		clock,
		apiLogger,
	)
	organizationService := service.NewOrganizationService(
		organizationStorage,
		membershipStorage,
		roleStorage,
		invitationStorage,
		mailer,
		files,
		clock,
		apiLogger,
	)
	athleteService := service.NewAthleteService(athleteStorage, teamStorage, notificationService, clock)
	teamService := service.NewTeamService(teamStorage, athleteStorage)
	matchService := service.NewMatchService(matchStorage, teamStorage, athleteStorage, notificationService, clock)
	paymentService := service.NewPaymentService(paymentStorage, paymentTypeStorage, athleteStorage, clock)
	documentService := service.NewDocumentService(documentStorage, documentTypeStorage, athleteStorage, files, clock)
	transportService := service.NewTransportService(transportStorage, athleteStorage)
	auditService := service.NewAuditService(auditStorage, apiLogger)
	dashboardService := service.NewDashboardService(dashboardStorage, clock)
	sweepService := service.NewSweepService(
		organizationStorage,
		documentStorage,
		paymentStorage,
		matchStorage,
		transportStorage,
		notificationService,
		clock,
		sweepLogger,
	)

	mw := middleware.New(tokens, apiLogger)
	router := httpController.NewRouter(httpController.Handlers{
		Auth:         handlers.NewAuthHandler(authService, validate, apiLogger),
		Organization: handlers.NewOrganizationHandler(organizationService, validate, apiLogger),
		Athlete:      handlers.NewAthleteHandler(athleteService, validate, apiLogger),
		Team:         handlers.NewTeamHandler(teamService, validate, apiLogger),
		Match:        handlers.NewMatchHandler(matchService, validate, apiLogger),
		Payment:      handlers.NewPaymentHandler(paymentService, validate, apiLogger),
		Document:     handlers.NewDocumentHandler(documentService, validate, apiLogger),
		Transport:    handlers.NewTransportHandler(transportService, validate, apiLogger),
		Notification: handlers.NewNotificationHandler(notificationService, sweepService, hub, validate, apiLogger),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, auditService, apiLogger),
	}, mw, middleware.Audit(auditService))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", viper.GetInt("service.http.port")),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sweeper: scheduler.NewSweepScheduler(sweepService, viper.GetDuration("service.sweep.interval"), sweepLogger),
		logger:  apiLogger,
	}, nil
}

// Start serves HTTP and the sweep scheduler until SIGINT/SIGTERM, then shuts
// down gracefully.
func (s *Server) Start() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.sweeper.Start(ctx)

	go func() {
		s.logger.Infof("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("http server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("shutdown failed: %v", err)
		os.Exit(1)
	}
}
