package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/healthdesk/clinic-api/internal/chat"
	"github.com/healthdesk/clinic-api/internal/config"
	"github.com/healthdesk/clinic-api/internal/email"
	accountHandler "github.com/healthdesk/clinic-api/internal/handler/account"
	authHandler "github.com/healthdesk/clinic-api/internal/handler/auth"
	bindingHandler "github.com/healthdesk/clinic-api/internal/handler/binding"
	feedbackHandler "github.com/healthdesk/clinic-api/internal/handler/feedback"
	healthHandler "github.com/healthdesk/clinic-api/internal/handler/health"
	inpatientHandler "github.com/healthdesk/clinic-api/internal/handler/inpatient"
	medcenterHandler "github.com/healthdesk/clinic-api/internal/handler/medcenter"
	prometheusHandler "github.com/healthdesk/clinic-api/internal/handler/prometheus"
	recordHandler "github.com/healthdesk/clinic-api/internal/handler/record"
	slotHandler "github.com/healthdesk/clinic-api/internal/handler/slot"
	"github.com/healthdesk/clinic-api/internal/middleware"
	"github.com/healthdesk/clinic-api/internal/repository/postgres"
	"github.com/healthdesk/clinic-api/internal/router"
	accountService "github.com/healthdesk/clinic-api/internal/service/account"
	authService "github.com/healthdesk/clinic-api/internal/service/auth"
	bindingService "github.com/healthdesk/clinic-api/internal/service/binding"
	eventService "github.com/healthdesk/clinic-api/internal/service/event"
	feedbackService "github.com/healthdesk/clinic-api/internal/service/feedback"
	inpatientService "github.com/healthdesk/clinic-api/internal/service/inpatient"
	medcenterService "github.com/healthdesk/clinic-api/internal/service/medcenter"
	notificationService "github.com/healthdesk/clinic-api/internal/service/notification"
	recordService "github.com/healthdesk/clinic-api/internal/service/record"
	slotService "github.com/healthdesk/clinic-api/internal/service/slot"
	"github.com/healthdesk/clinic-api/pkg/auth"
	"github.com/healthdesk/clinic-api/pkg/security"
	"github.com/healthdesk/clinic-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	slotRepo := postgres.NewSlotRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	medCenterRepo := postgres.NewMedCenterRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	inpatientRepo := postgres.NewInpatientRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Notification channels. Chat is optional: without a bot token the
	// channel degrades to a no-op and only email goes out.
	emailSvc := email.NewSMTPSender(cfg.Email)
	chatSvc := chat.NewNoopSender()
	poller := (*chat.Poller)(nil)
	bindingSvc := bindingService.NewService(accountRepo, cfg.Binding.TTL(), log.Logger)
	if cfg.Telegram.Token != "" {
		sender, botAPI, err := chat.NewTelegramSender(cfg.Telegram)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize telegram sender")
		}
		chatSvc = sender
		poller = chat.NewPoller(botAPI, bindingSvc, log.Logger)
	}

	// Services
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	eventSvc := eventService.NewService(outboxRepo)
	notifier := notificationService.NewService(accountRepo, emailSvc, chatSvc, log.Logger)
	slotSvc := slotService.NewService(slotRepo, accountRepo, notifier, eventSvc, log.Logger)
	recordSvc := recordService.NewService(recordRepo, accountRepo, notifier, eventSvc, log.Logger)
	accountSvc := accountService.NewService(accountRepo, hasher)
	authSvc := authService.NewService(accountRepo, hasher, jwtSvc)
	feedbackSvc := feedbackService.NewService(feedbackRepo)
	inpatientSvc := inpatientService.NewService(inpatientRepo)
	medcenterSvc := medcenterService.NewService(medCenterRepo)

	// Middleware, handlers, router
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		prometheusHandler.New(),
		authHandler.NewHandler(authSvc),
		slotHandler.NewHandler(slotSvc),
		bindingHandler.NewHandler(bindingSvc),
		accountHandler.NewHandler(accountSvc),
		recordHandler.NewHandler(recordSvc),
		feedbackHandler.NewHandler(feedbackSvc),
		inpatientHandler.NewHandler(inpatientSvc),
		medcenterHandler.NewHandler(medcenterSvc),
		router.RouterConfig{
			RateLimit:  rate.Limit(100),
			RateBurst:  200,
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The chat poller drives the code exchange for identity binding.
	if poller != nil {
		go poller.Run(ctx)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
