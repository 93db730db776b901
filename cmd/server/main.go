package main // Entry point package

import (
	"context"   // bounded startup and shutdown contexts
	"log"       // Logging library
	"os"        // signal plumbing
	"os/signal" // graceful shutdown on SIGINT/SIGTERM
	"syscall"   // signal constants
	"time"      // startup timeouts

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/odelyak/campboard/internal/config"     // Internal config loader
	"github.com/odelyak/campboard/internal/database"   // MySQL catalog connection
	"github.com/odelyak/campboard/internal/handler"    // HTTP handlers
	"github.com/odelyak/campboard/internal/middleware" // rate limit + response cache
	"github.com/odelyak/campboard/internal/notify"     // in-process event bus
	"github.com/odelyak/campboard/internal/queue"      // AMQP lock-event consumer
	"github.com/odelyak/campboard/internal/registry"   // camp catalog
	"github.com/odelyak/campboard/internal/repository" // DB repositories
	"github.com/odelyak/campboard/internal/router"     // Internal router setup
	"github.com/odelyak/campboard/internal/schedule"   // session manager
	queue_publisher "github.com/odelyak/campboard/internal/service"
	"github.com/odelyak/campboard/internal/store" // Redis document store
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()                    // Load environment config
	schedCfg := config.LoadScheduleConfig() // scheduling tunables

	// The catalog database is required: without divisions and
	// subdivisions there is nothing to authorize against.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	// Load the whole catalog once.  A partially loaded registry is worse
	// than no service, so any load error is fatal.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	reg, err := registry.Load(loadCtx, repository.NewCatalogRepo(db))
	cancelLoad()
	if err != nil {
		log.Fatalf("registry: %v", err)
	}
	log.Printf("registry: %d divisions, %d subdivisions, %d resource rules",
		len(reg.Divisions()), len(reg.AllSubdivisions()), len(reg.ResourceRules()))

	// Redis carries the authoritative schedule document.  Rate limiting
	// and response caching would degrade gracefully without it, but the
	// document store cannot, so a missing Redis is fatal here.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed; the schedule document store requires redis")
	}
	defer rdb.Close()
	remote := store.NewRedisStore(rdb, schedCfg.OrgID)

	// In-process notifications feed both the AMQP bridge and anything
	// else that wants to observe lock traffic.
	bus := notify.NewBus()
	queue_publisher.BridgeLockEvents(bus, func(subdivisionID string) string {
		if sub, ok := reg.Subdivision(subdivisionID); ok {
			return sub.Name
		}
		return ""
	})

	// Background consumer mirrors lock events into logs/schedule-events.log.
	// It reconnects forever on its own; it never takes the server down.
	go func() {
		if err := queue.StartLockEventConsumer(); err != nil {
			log.Printf("lock-consumer: %v", err)
		}
	}()

	manager := schedule.NewManager(reg, bus, remote, schedule.Options{
		Quiet:       schedCfg.SyncQuiet,
		IdleTTL:     schedCfg.SessionIdleTTL,
		InitTimeout: schedCfg.InitTimeout,
		Grid:        schedCfg.Grid(),
	})

	e := echo.New() // Create Echo instance

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db)), cfg.JWTSecret)
	router.RegisterSchedule(e, handler.NewSessionHandler(manager), cfg.JWTSecret, limiter)
	router.RegisterRegistry(e, handler.NewRegistryHandler(reg), cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil { // Start HTTP server
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until asked to stop, then flush every live session before
	// letting the process exit; an evicted write beats a lost one.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	manager.Close()
}
