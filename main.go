package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixit-be/config"
	"fixit-be/controllers"
	"fixit-be/engagement"
	"fixit-be/middlewares"
	"fixit-be/models"
	"fixit-be/routes"
	"fixit-be/storage"
	"fixit-be/tracker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	setupLogging()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if cfg.RateLimitEnabled() || cfg.StoreBackend == config.BackendRedis {
		redisClient, err = config.ConnectRedis(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
	}

	slot, closeSlot, err := openSlot(ctx, cfg, redisClient)
	if err != nil {
		log.WithError(err).Fatal("Failed to open issue store")
	}
	defer closeSlot()

	var opts []tracker.Option
	if cfg.SessionUserName != "" {
		opts = append(opts, tracker.WithUser(sessionUser(cfg.SessionUserName)))
	}
	t, err := tracker.Open(ctx, storage.NewStore(slot), opts...)
	if err != nil {
		log.WithError(err).Fatal("Failed to load issues")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, t, redisClient),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}

func newRouter(cfg *config.Config, t *tracker.Tracker, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	corsConfig := cors.DefaultConfig()
	origins := cfg.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Session-ID")
	r.Use(cors.New(corsConfig))

	var reportMiddleware []gin.HandlerFunc
	if redisClient != nil && cfg.RateLimitEnabled() {
		reportMiddleware = append(reportMiddleware,
			middlewares.IssueRateLimiter(redisClient, cfg.IssueLimitQueue, cfg.IssueDailyLimit))
	}

	routes.IssueRoutes(r, controllers.NewIssueController(t), reportMiddleware...)
	routes.UserRoutes(r, controllers.NewUserController(t))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

// openSlot returns the durable slot for the configured backend and a func
// releasing its connection.
func openSlot(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (storage.Slot, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		return storage.NewRedisSlot(redisClient, cfg.RedisKeyPrefix), noop, nil
	case config.BackendMongo:
		db, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
		return storage.NewMongoSlot(db.Collection("slots")), closeDB, nil
	case config.BackendPostgres:
		pool, err := config.ConnectPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		slot, err := storage.NewPostgresSlot(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return slot, pool.Close, nil
	}

	log.Warn("Using in-memory issue store; issues are lost on restart")
	return storage.NewMemorySlot(), noop, nil
}

func sessionUser(name string) models.User {
	u := engagement.DefaultUser()
	u.Name = name
	return u
}

func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}
