package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dayanisma-dernegi/portal/config"
	"github.com/dayanisma-dernegi/portal/internal/data"
	httpx "github.com/dayanisma-dernegi/portal/internal/http"
	"github.com/dayanisma-dernegi/portal/internal/observability/statsd"
	"github.com/dayanisma-dernegi/portal/internal/service"
	"github.com/dayanisma-dernegi/portal/internal/session"
)

// ServiceContainer holds the repositories and services the HTTP layer needs.
type ServiceContainer struct {
	Auth     *service.AuthService
	Settings *service.SettingsService
	Codec    *session.Codec

	Applications  *data.ApplicationRepo
	Events        *data.EventRepo
	Announcements *data.AnnouncementRepo
	Donations     *data.DonationRepo
	AdminUsers    *data.AdminUserRepo

	// Health backs /healthz readiness with database and cache probes.
	Health *httpx.HealthHandlers
	// Metrics is nil when metrics emission is disabled or the sink could not
	// be dialed; the router skips the metrics middleware in that case.
	Metrics *statsd.Client
}

// ServicesConfig groups the dependencies for building the container.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	// Redis is optional; without it the settings service reads straight from
	// the database.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildServices wires repositories and services from the open connections.
func BuildServices(cfg ServicesConfig) (*ServiceContainer, error) {
	codec, err := session.NewCodec(cfg.Config.Auth.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}

	adminUsers := data.NewAdminUserRepo(cfg.DB)
	settingRepo := data.NewSettingRepo(cfg.DB)

	var cache service.SettingsCache
	health := &httpx.HealthHandlers{DB: cfg.DB}
	if cfg.Redis != nil {
		cacheRepo := data.NewRedisCacheRepo(cfg.Redis)
		cache = cacheRepo
		health.Cache = cacheRepo
	}

	var metrics *statsd.Client
	if cfg.Config.Metrics.Enabled {
		metrics, err = statsd.NewClient(statsd.Config{
			Addr:   cfg.Config.Metrics.Addr,
			Prefix: cfg.Config.Metrics.Prefix,
			Logger: cfg.Logger,
		})
		if err != nil && cfg.Logger != nil {
			// Metrics never block boot.
			cfg.Logger.Error("statsd unavailable, continuing without metrics", "error", err)
		}
	}

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Accounts:        adminUsers,
			Codec:           codec,
			RefreshInterval: cfg.Config.Auth.RefreshInterval,
		}),
		Settings: service.NewSettingsService(service.SettingsServiceOptions{
			Repo:   settingRepo,
			Cache:  cache,
			TTL:    cfg.Config.Cache.SettingsTTL,
			Logger: cfg.Logger,
		}),
		Codec:         codec,
		Applications:  data.NewApplicationRepo(cfg.DB),
		Events:        data.NewEventRepo(cfg.DB),
		Announcements: data.NewAnnouncementRepo(cfg.DB),
		Donations:     data.NewDonationRepo(cfg.DB),
		AdminUsers:    adminUsers,
		Health:        health,
		Metrics:       metrics,
	}, nil
}
