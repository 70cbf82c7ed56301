package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"

	_ "github.com/aussiebroadwan/accountvault/api/vault" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	Allocator *service.Allocator
	Inventory *service.Inventory
	Catalog   *service.Catalog
	AdminAuth *service.AdminAuthenticator
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
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
	r.registerAccounts()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AccountVault API
//	@version		0.1.0
//	@description	Hands out pre-provisioned third-party accounts to authenticated users under a per-user daily quota.
//	@description
//	@description				User endpoints take a bearer JWT issued by the configured identity provider.
//	@description				Admin operations take the admin password or a token with the vault:admin scope.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/accountvault
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

func (r *Router) registerAccounts() {
	// POST /v1/accounts/generate - moderate rate limit by user (every call can consume quota)
	generate := &GenerateAccountHandler{Allocator: r.Allocator}
	r.Mux.Handle("POST /v1/accounts/generate",
		httpx.Chain(generate,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Read-only views - lenient rate limit by user
	h := &CatalogHandler{Catalog: r.Catalog}
	r.Mux.Handle("GET /v1/services",
		httpx.Chain(http.HandlerFunc(h.HandleServices),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/quota",
		httpx.Chain(http.HandlerFunc(h.HandleQuota),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/claims",
		httpx.Chain(http.HandlerFunc(h.HandleClaims),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	// POST /v1/admin/operations - strict rate limit by IP (password guessing)
	// A bearer token is optional; with the vault:admin scope it replaces the password.
	h := &AdminOperationsHandler{Auth: r.AdminAuth, Inventory: r.Inventory}
	r.Mux.Handle("POST /v1/admin/operations",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.OptionalAuthnMiddleware(r.verifier),
		),
	)

	// GET /v1/admin/stats - token only, for dashboards that poll
	r.Mux.Handle("GET /v1/admin/stats",
		httpx.Chain(&AdminStatsHandler{Inventory: r.Inventory},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.AdminScope),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently.
	// Readiness touches the database so it gets the tighter profile.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
