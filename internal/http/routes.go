package httpx

import (
	"log/slog"
	"net/http"

	"github.com/dayanisma-dernegi/portal/internal/data"
	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
	"github.com/dayanisma-dernegi/portal/internal/observability/statsd"
	"github.com/dayanisma-dernegi/portal/internal/service"
)

// RouterServices holds all the dependencies the HTTP router needs.
type RouterServices struct {
	Auth          *service.AuthService
	Settings      *service.SettingsService
	Applications  *data.ApplicationRepo
	Events        *data.EventRepo
	Announcements *data.AnnouncementRepo
	Donations     *data.DonationRepo
	AdminUsers    *data.AdminUserRepo

	// Codec verifies the admin session cookie for both gate variants.
	Codec ClaimDecoder
	// Cookie carries deployment-dependent cookie attributes.
	Cookie CookieSettings
	// DenyUnlistedAdminPaths flips the gate's unlisted-path policy.
	DenyUnlistedAdminPaths bool

	// Health backs the readiness endpoint; a nil value degrades to a static OK.
	Health *HealthHandlers
	// Metrics, when non-nil, receives request counters and timings.
	Metrics statsd.Sink

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP handler chain: panic recovery,
// request logging, the admin route gate, then the mux.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookie: services.Cookie, Logger: logger}
	registerAuthRoutes(mux, authHandlers, services.Codec)

	registerPublicRoutes(mux, services)
	registerAdminAPIRoutes(mux, services)
	registerAdminPageRoutes(mux)

	health := services.Health
	if health == nil {
		health = &HealthHandlers{}
	}
	mux.HandleFunc("GET /healthz", health.Check)
	mux.HandleFunc("HEAD /healthz", health.Check)

	gate := AdminGate(AdminGateConfig{
		Codec:        services.Codec,
		Permissions:  AdminPermissions(),
		DenyUnlisted: services.DenyUnlistedAdminPaths,
	})

	var handler http.Handler = mux
	handler = gate(handler)
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, codec ClaimDecoder) {
	mux.HandleFunc("POST /api/admin/login", h.Login)
	mux.HandleFunc("POST /api/admin/logout", h.Logout)
	mux.Handle("GET /api/admin/me", RequireAdminAPI(codec)(http.HandlerFunc(h.Me)))
}

func registerPublicRoutes(mux *http.ServeMux, services RouterServices) {
	applications := &ApplicationHandlers{Repo: services.Applications}
	events := &EventHandlers{Repo: services.Events}
	announcements := &AnnouncementHandlers{Repo: services.Announcements}
	donations := &DonationHandlers{Repo: services.Donations}
	settings := &SettingHandlers{Svc: services.Settings}

	mux.HandleFunc("POST /api/applications", applications.Create)
	mux.HandleFunc("POST /api/donations", donations.Create)
	mux.HandleFunc("GET /api/events", events.ListPublic)
	mux.HandleFunc("GET /api/events/{slug}", events.GetBySlug)
	mux.HandleFunc("GET /api/announcements", announcements.ListPublic)
	mux.HandleFunc("GET /api/settings", settings.ListPublic)
}

func registerAdminAPIRoutes(mux *http.ServeMux, services RouterServices) {
	adminOnly := func(h http.Handler) http.Handler {
		return RequireAdminAPI(services.Codec, domainauth.RoleAdmin)(h)
	}
	superOnly := func(h http.Handler) http.Handler {
		return RequireAdminAPI(services.Codec, domainauth.RoleSuperAdmin)(h)
	}

	applications := &ApplicationHandlers{Repo: services.Applications}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/applications",
		Create:     applications.Create,
		List:       applications.List,
		GetByID:    applications.GetByID,
		Update:     applications.Update,
		Delete:     applications.Delete,
		Middleware: adminOnly,
	})

	events := &EventHandlers{Repo: services.Events}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/events",
		Create:     events.Create,
		List:       events.List,
		GetByID:    events.GetByID,
		Update:     events.Update,
		Delete:     events.Delete,
		Middleware: adminOnly,
	})

	announcements := &AnnouncementHandlers{Repo: services.Announcements}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/announcements",
		Create:     announcements.Create,
		List:       announcements.List,
		GetByID:    announcements.GetByID,
		Update:     announcements.Update,
		Delete:     announcements.Delete,
		Middleware: adminOnly,
	})

	donations := &DonationHandlers{Repo: services.Donations}
	mux.Handle("GET /api/admin/donations", adminOnly(http.HandlerFunc(donations.List)))
	mux.Handle("GET /api/admin/donations/{id}", adminOnly(http.HandlerFunc(donations.GetByID)))
	mux.Handle("DELETE /api/admin/donations/{id}", adminOnly(http.HandlerFunc(donations.Delete)))

	settings := &SettingHandlers{Svc: services.Settings}
	mux.Handle("GET /api/admin/settings", superOnly(http.HandlerFunc(settings.List)))
	mux.Handle("GET /api/admin/settings/{key}", superOnly(http.HandlerFunc(settings.Get)))
	mux.Handle("PUT /api/admin/settings/{key}", superOnly(http.HandlerFunc(settings.Upsert)))
	mux.Handle("DELETE /api/admin/settings/{key}", superOnly(http.HandlerFunc(settings.Delete)))

	adminUsers := &AdminUserHandlers{Repo: services.AdminUsers}
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/users",
		Create:     adminUsers.Create,
		List:       adminUsers.List,
		GetByID:    adminUsers.GetByID,
		Update:     adminUsers.Update,
		Delete:     adminUsers.Delete,
		Middleware: superOnly,
	})
}

// registerAdminPageRoutes wires the page shells. Authorization happens in
// the AdminGate middleware, keyed by the permission table, so the handlers
// themselves stay trivial.
func registerAdminPageRoutes(mux *http.ServeMux) {
	pages := &AdminPageHandlers{}
	mux.HandleFunc("GET /admin/login", pages.Login)
	mux.HandleFunc("GET /admin", pages.Dashboard)
	mux.HandleFunc("GET /admin/applications", pages.Section("applications", "Başvurular"))
	mux.HandleFunc("GET /admin/events", pages.Section("events", "Etkinlikler"))
	mux.HandleFunc("GET /admin/announcements", pages.Section("announcements", "Duyurular"))
	mux.HandleFunc("GET /admin/donations", pages.Section("donations", "Bağışlar"))
	mux.HandleFunc("GET /admin/settings", pages.Section("settings", "Site Ayarları"))
	mux.HandleFunc("GET /admin/users", pages.Section("users", "Yöneticiler"))
}

// crudRoutes describes the standard CRUD routes for a resource base path.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
