package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zeepkist/gtr-auth/internal/auth/service"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/pkg/httpx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"

	_ "github.com/zeepkist/gtr-auth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion   string
	minimumVersion string
	realm          string
	startTime      time.Time
	logger         *slog.Logger

	store                store.Store
	GameTokenService     *service.TokenService
	ExternalTokenService *service.TokenService
	UserService          *service.UserService
	TicketVerifier       TicketVerifier
	OpenID               OpenIDVerifier
}

func NewRouter(
	buildVersion, minimumVersion, realm string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		minimumVersion: minimumVersion,
		realm:          realm,
		startTime:      time.Now(),
		store:          st,
		logger:         logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGame()
	r.registerExternal()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Zeepkist GTR Authentication Service API
//	@version		1.0.0
//	@description	Token issuance and refresh for the Zeepkist GTR leaderboard platform.
//	@description	Game clients authenticate with Steam session tickets; browsers use Steam
//	@description	OpenID. Access tokens are short-lived JWTs, refresh tokens are opaque and
//	@description	single use.
//
//	@contact.name	Zeepkist GTR
//	@contact.url	https://github.com/zeepkist
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGame() {
	h := &GameAuthHandler{
		TokenService:   r.GameTokenService,
		UserService:    r.UserService,
		Verifier:       r.TicketVerifier,
		MinimumVersion: r.minimumVersion,
	}

	// Login and refresh both mint credentials; keep the strict limit on them.
	r.Mux.Handle("POST /game/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /game/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerExternal() {
	h := &ExternalAuthHandler{
		TokenService: r.ExternalTokenService,
		UserService:  r.UserService,
		OpenID:       r.OpenID,
		Realm:        r.realm,
	}

	r.Mux.Handle("GET /external/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /external/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /external/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
