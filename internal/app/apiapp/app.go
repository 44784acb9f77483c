package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Doudousmyle42/Vibezone/internal/config"
	s3infra "github.com/Doudousmyle42/Vibezone/internal/infra/s3"
	pgrepo "github.com/Doudousmyle42/Vibezone/internal/repo/postgres"
	redrepo "github.com/Doudousmyle42/Vibezone/internal/repo/redis"
	authsvc "github.com/Doudousmyle42/Vibezone/internal/services/auth"
	feedsvc "github.com/Doudousmyle42/Vibezone/internal/services/feed"
	matchessvc "github.com/Doudousmyle42/Vibezone/internal/services/matches"
	mediasvc "github.com/Doudousmyle42/Vibezone/internal/services/media"
	messagesvc "github.com/Doudousmyle42/Vibezone/internal/services/messages"
	profilesvc "github.com/Doudousmyle42/Vibezone/internal/services/profiles"
	ratesvc "github.com/Doudousmyle42/Vibezone/internal/services/rate"
	swipesvc "github.com/Doudousmyle42/Vibezone/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	txRunner := pgrepo.NewTxRunner(pool)
	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	feedRepo := pgrepo.NewFeedRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(authsvc.Dependencies{
		JWT:      jwtManager,
		Sessions: sessionRepo,
		Users:    userRepo,
		Profiles: profileRepo,
		Tx:       txRunner,
	}, cfg.Auth.RefreshTTL)

	profileService := profilesvc.NewService(profileRepo)
	feedService := feedsvc.NewService(feedRepo)
	matchesService := matchessvc.NewService(matchRepo)

	swipeLimiter := ratesvc.NewLimiter(rateRepo, "swipe", cfg.Limits.SwipesPerMinute, cfg.Limits.SwipesPer10Sec)
	messageLimiter := ratesvc.NewLimiter(rateRepo, "message", cfg.Limits.MessagesPerMinute, cfg.Limits.MessagesPer10Sec)

	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Tx:          txRunner,
		SwipeStore:  swipeRepo,
		MatchStore:  matchRepo,
		RateLimiter: swipeLimiter,
	})
	messageService := messagesvc.NewService(messagesvc.Dependencies{
		Tx:           txRunner,
		MessageStore: messageRepo,
		MatchStore:   matchRepo,
		RateLimiter:  messageLimiter,
	}, cfg.Limits.MessageMaxLen)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	if s3Client != nil {
		photoStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
		profileService.AttachPhotoSigner(photoStorage)
		feedService.AttachPhotoSigner(photoStorage)
		matchesService.AttachPhotoSigner(photoStorage)
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		ProfileService: profileService,
		FeedService:    feedService,
		SwipeService:   swipeService,
		MatchService:   matchesService,
		MessageService: messageService,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
