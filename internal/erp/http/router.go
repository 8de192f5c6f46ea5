package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/service"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/httpx"
	"github.com/xingubit/isperp/pkg/jwtx"
	"github.com/xingubit/isperp/pkg/slogx"

	_ "github.com/xingubit/isperp/api/erp" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SetupService        *service.SetupService
	AuthService         *service.AuthService
	UserService         *service.UserService
	CompanyService      *service.CompanyService
	SiteSettingsService *service.SiteSettingsService
	CustomerService     *service.CustomerService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSetup()
	r.registerAuth()
	r.registerUsers()
	r.registerCompanies()
	r.registerSiteSettings()
	r.registerCustomers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ERP Backend API
//	@version		0.1.0
//	@description	Multi-tenant ERP backend covering first-run setup, authentication, and the core registries (users, companies, customers, site branding).
//	@description
//	@description				Tokens are signed with HS512 and sent as "Bearer {token}".
//
//	@contact.name				xingubit
//	@contact.url				https://github.com/xingubit/isperp
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSetup() {
	h := &SetupHandler{SetupService: r.SetupService}

	// GET /setup/status - public, polled by the frontend before login
	r.Mux.Handle("GET /v1/setup/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /setup - strict rate limit (unauthenticated, runs exactly once)
	r.Mux.Handle("POST /v1/setup",
		httpx.Chain(http.HandlerFunc(h.HandlePerform),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// User management is admin-only.
	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/users", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/users", admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/users/{id}", admin(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/users/{id}", admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("PUT /v1/users/{id}/password", admin(http.HandlerFunc(h.HandleChangePassword)))
	r.Mux.Handle("DELETE /v1/users/{id}", admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerCompanies() {
	h := &CompaniesHandler{CompanyService: r.CompanyService}

	authed := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	admin := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	// Reads are open to any authenticated user; writes are admin-only.
	r.Mux.Handle("GET /v1/companies", authed(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/companies/tenant", authed(http.HandlerFunc(h.HandleGetTenant)))
	r.Mux.Handle("GET /v1/companies/{id}", authed(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /v1/companies", admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /v1/companies/{id}", admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/companies/{id}", admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSiteSettings() {
	h := &SiteSettingsHandler{SiteSettingsService: r.SiteSettingsService}

	// GET is public: the frontend needs branding before anyone logs in.
	r.Mux.Handle("GET /v1/site-settings",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("PUT /v1/site-settings",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{CustomerService: r.CustomerService}

	authed := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/customers", authed(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/customers", authed(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/customers/{id}", authed(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/customers/{id}", authed(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("POST /v1/customers/{id}/activate", authed(http.HandlerFunc(h.HandleActivate)))
	r.Mux.Handle("POST /v1/customers/{id}/deactivate", authed(http.HandlerFunc(h.HandleDeactivate)))

	// Hard deletion stays admin-only; everyone else soft-deactivates.
	r.Mux.Handle("DELETE /v1/customers/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
