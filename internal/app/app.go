// Package app wires the two tool servers: config, logging, cache, auth and
// the gin routers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/auth"
	"github.com/dante4567/openwebui-sub000/internal/cache"
	"github.com/dante4567/openwebui-sub000/internal/caldav"
	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/handlers"
	"github.com/dante4567/openwebui-sub000/internal/retry"
	"github.com/dante4567/openwebui-sub000/internal/service"
	"github.com/dante4567/openwebui-sub000/internal/todoist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// App is one running tool server.
type App struct {
	cfg    config.Config
	log    *slog.Logger
	router *gin.Engine
	rdb    *redis.Client
}

// NewTodoist builds the task tool server.
func NewTodoist(cfg config.Config) (*App, error) {
	a := newBase(cfg, "todoist-tool")

	manager := cache.NewManager(a.newStore(), cfg.Cache.TTL.Duration(), a.log)
	guard := auth.NewGuard(cfg.Auth.APIKey, a.log)
	client := todoist.NewClient(cfg.Todoist, retry.New(a.log), a.log)
	svc := service.NewTaskService(client, manager, a.log)
	reporter := service.NewHealthReporter("todoist-tool", guard.Enabled(), client, manager, a.log)

	setupCommonRoutes(a.router, cfg, "todoist-tool", "tasks", handlers.NewHealthHandler(reporter, a.log))
	registerTaskRoutes(a.router.Group("", guard.Middleware()), handlers.NewTaskHandler(svc, a.log))
	return a, nil
}

// NewCalDAV builds the calendar/contact tool server.
func NewCalDAV(cfg config.Config) (*App, error) {
	a := newBase(cfg, "caldav-tool")

	manager := cache.NewManager(a.newStore(), cfg.Cache.TTL.Duration(), a.log)
	guard := auth.NewGuard(cfg.Auth.APIKey, a.log)
	client, err := caldav.NewClient(cfg.CalDAV, retry.New(a.log), a.log)
	if err != nil {
		return nil, err
	}
	svc := service.NewCalendarService(client, manager, a.log)
	reporter := service.NewHealthReporter("caldav-tool", guard.Enabled(), client, manager, a.log)

	setupCommonRoutes(a.router, cfg, "caldav-tool", "calendar", handlers.NewHealthHandler(reporter, a.log))
	registerCalendarRoutes(a.router.Group("", guard.Middleware()), handlers.NewCalendarHandler(svc, a.log))
	return a, nil
}

func newBase(cfg config.Config, serviceName string) *App {
	log := newLogger(cfg.App.Env, serviceName)
	slog.SetDefault(log)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	return &App{cfg: cfg, log: log, router: r}
}

// newStore picks the cache backend: Redis when configured, in-process map
// otherwise. A Redis that fails its ping is still used; the manager
// degrades to always-miss per operation.
func (a *App) newStore() cache.Store {
	if !a.cfg.Cache.RedisEnabled() {
		a.log.Info("cache backend: in-process memory")
		return cache.NewMemoryStore()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Cache.RedisAddr,
		Password: a.cfg.Cache.RedisPassword,
		DB:       a.cfg.Cache.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		a.log.Warn("redis unreachable at startup, cache will degrade to miss until it recovers",
			"addr", a.cfg.Cache.RedisAddr, "error", err)
	} else {
		a.log.Info("cache backend: redis", "addr", a.cfg.Cache.RedisAddr)
	}
	a.rdb = rdb
	return cache.NewRedisStore(rdb)
}

// Router returns the configured engine.
func (a *App) Router() *gin.Engine { return a.router }

// Close releases held connections.
func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	return nil
}

func newLogger(env, serviceName string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", serviceName)
}
