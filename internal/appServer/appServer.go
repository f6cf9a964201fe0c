package appServer

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ticketanywhere/ticketanywhere/config"
	repository "github.com/ticketanywhere/ticketanywhere/internal/database/postgres"
	redisrepo "github.com/ticketanywhere/ticketanywhere/internal/database/redis"
	"github.com/ticketanywhere/ticketanywhere/internal/rabbitmq"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
	"github.com/ticketanywhere/ticketanywhere/internal/transport"
	"github.com/ticketanywhere/ticketanywhere/internal/worker"
	"github.com/ticketanywhere/ticketanywhere/pkg/postgres"
	pkgredis "github.com/ticketanywhere/ticketanywhere/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := pkgredis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := redisrepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)
	receiptRepo := redisrepo.NewReceiptRepository(redisClient, cfg.Auth.ReceiptsLimit)

	// Receipt queue is optional; purchases proceed without it.
	var receiptQueue rabbitmq.Queue
	var publisher service.ReceiptPublisher
	if cfg.RabbitMQ.Enabled {
		queue, err := rabbitmq.NewRabbitMQ(rabbitmq.Config{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.Queue,
		})
		if err != nil {
			logrus.Errorf("Failed to initialize RabbitMQ: %v. Continuing without receipt queue...", err)
		} else {
			receiptQueue = queue
			publisher = service.NewQueueAdapter(queue)
			defer queue.Close()
			logrus.Info("Receipt queue initialized")
		}
	}

	// Services
	eventService := service.NewEventService(eventRepo)
	ticketService := service.NewTicketService(ticketRepo, eventRepo, userRepo, publisher)
	userService := service.NewUserService(userRepo, cfg.Auth.AdminEmails)
	authService := service.NewAuthService(userService, sessionRepo)
	receiptService := service.NewReceiptService(receiptRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if receiptQueue != nil {
		receiptWorker := worker.NewReceiptWorker(receiptQueue, receiptService)
		if err := receiptWorker.Start(ctx); err != nil {
			logrus.Errorf("Receipt worker failed to start: %v", err)
		}
	}

	// Handlers
	eventHandler := transport.NewEventHandler(eventService)
	ticketHandler := transport.NewTicketHandler(ticketService, receiptService)
	userHandler := transport.NewUserHandler(
		authService,
		cfg.Auth.CookieName,
		int(cfg.Auth.SessionTTL.Seconds()),
		cfg.Auth.CookieSecure,
	)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := transport.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CookieName:     cfg.Auth.CookieName,
		TimeoutSeconds: 30,
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(routerCfg, eventHandler, ticketHandler, userHandler, authService)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
