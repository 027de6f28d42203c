package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/service"
	"github.com/aussiebroadwan/courier/internal/msg/store"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/jwtx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	UserService    *service.UserService
	MessageService *service.MessageService
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

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerMessages()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	// Anonymous endpoints: the token is what they hand out.
	r.Mux.Handle("POST /login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /register", http.HandlerFunc(h.HandleRegister))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Bulk listing and single profiles need any signed-in user; message
	// history is self-access only, enforced against the path username.
	r.Mux.Handle("GET /users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.Authenticate(r.verifier),
			httpx.RequireLogin,
		),
	)
	r.Mux.Handle("GET /users/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.Authenticate(r.verifier),
			httpx.RequireLogin,
		),
	)
	r.Mux.Handle("GET /users/{username}/to",
		httpx.Chain(http.HandlerFunc(h.HandleMessagesTo),
			httpx.Authenticate(r.verifier),
			httpx.RequireUser("username"),
		),
	)
	r.Mux.Handle("GET /users/{username}/from",
		httpx.Chain(http.HandlerFunc(h.HandleMessagesFrom),
			httpx.Authenticate(r.verifier),
			httpx.RequireUser("username"),
		),
	)
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{MessageService: r.MessageService}

	// RequireLogin gets these to "some signed-in user"; the sender/recipient
	// ownership checks live in the service because they need the record.
	r.Mux.Handle("GET /messages/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.Authenticate(r.verifier),
			httpx.RequireLogin,
		),
	)
	r.Mux.Handle("POST /messages",
		httpx.Chain(http.HandlerFunc(h.HandleSend),
			httpx.Authenticate(r.verifier),
			httpx.RequireLogin,
		),
	)
	r.Mux.Handle("POST /messages/{id}/read",
		httpx.Chain(http.HandlerFunc(h.HandleMarkRead),
			httpx.Authenticate(r.verifier),
			httpx.RequireLogin,
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier))
}
