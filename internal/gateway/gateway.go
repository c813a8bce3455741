// Package gateway exposes the board services as a JSON REST API.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/Novip1906/join/internal/contextkeys"
	_ "github.com/Novip1906/join/internal/gateway/docs"
	"github.com/Novip1906/join/internal/middleware"
	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/pkg/logging"
)

type Services struct {
	Auth     *service.AuthService
	Board    *service.BoardService
	Contacts *service.ContactsService
}

type Gateway struct {
	log         *slog.Logger
	svc         Services
	mux         *runtime.ServeMux
	rateLimiter *middleware.RateLimiter
	auth        func(http.Handler) http.Handler
}

type Option func(*Gateway)

// WithRateLimiter enables per-IP rate limiting of the API routes.
func WithRateLimiter(rl *middleware.RateLimiter) Option {
	return func(g *Gateway) {
		g.rateLimiter = rl
	}
}

func New(log *slog.Logger, svc Services, opts ...Option) (*Gateway, error) {
	g := &Gateway{log: log, svc: svc}
	for _, opt := range opts {
		opt(g)
	}

	g.mux = runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				UseProtoNames:   true,
				EmitUnpopulated: true,
			},
			UnmarshalOptions: protojson.UnmarshalOptions{
				DiscardUnknown: true,
			},
		}),
		runtime.WithErrorHandler(func(ctx context.Context, mux *runtime.ServeMux, marshaler runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {
			log := contextkeys.GetLogger(ctx)
			if runtime.HTTPStatusFromCode(status.Code(err)) >= http.StatusInternalServerError {
				log.Error("gateway error", logging.Err(err))
			} else {
				log.Debug("request rejected", logging.Err(err))
			}
			runtime.DefaultHTTPErrorHandler(ctx, mux, marshaler, w, r, err)
		}),
	)
	g.auth = middleware.Auth(svc.Auth, g.writeError)

	if err := g.registerRoutes(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gateway) registerRoutes() error {
	routes := []struct {
		method, pattern string
		handler         runtime.HandlerFunc
		public          bool
	}{
		{http.MethodPost, "/api/v1/auth/signup", g.signup, true},
		{http.MethodPost, "/api/v1/auth/login", g.login, true},
		{http.MethodPost, "/api/v1/auth/guest", g.guestLogin, true},
		{http.MethodPost, "/api/v1/auth/logout", g.logout, false},
		{http.MethodGet, "/api/v1/auth/me", g.me, false},

		{http.MethodGet, "/api/v1/board", g.board, false},
		{http.MethodGet, "/api/v1/summary", g.summary, false},
		{http.MethodGet, "/api/v1/search", g.search, false},

		{http.MethodGet, "/api/v1/tasks", g.listTasks, false},
		{http.MethodPost, "/api/v1/tasks", g.createTask, false},
		{http.MethodGet, "/api/v1/tasks/{id}", g.getTask, false},
		{http.MethodPut, "/api/v1/tasks/{id}", g.updateTask, false},
		{http.MethodDelete, "/api/v1/tasks/{id}", g.deleteTask, false},
		{http.MethodPatch, "/api/v1/tasks/{id}/status", g.moveTask, false},

		{http.MethodPost, "/api/v1/tasks/{id}/subtasks", g.addSubtask, false},
		{http.MethodPatch, "/api/v1/tasks/{id}/subtasks/{subtaskId}", g.editSubtask, false},
		{http.MethodDelete, "/api/v1/tasks/{id}/subtasks/{subtaskId}", g.deleteSubtask, false},
		{http.MethodPost, "/api/v1/tasks/{id}/subtasks/{subtaskId}/toggle", g.toggleSubtask, false},

		{http.MethodGet, "/api/v1/contacts", g.listContacts, false},
		{http.MethodPost, "/api/v1/contacts", g.createContact, false},
		{http.MethodGet, "/api/v1/contacts/{id}", g.getContact, false},
		{http.MethodPut, "/api/v1/contacts/{id}", g.updateContact, false},
		{http.MethodDelete, "/api/v1/contacts/{id}", g.deleteContact, false},
	}

	for _, rt := range routes {
		h := rt.handler
		if !rt.public {
			h = g.protected(h)
		}
		if err := g.mux.HandlePath(rt.method, rt.pattern, h); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) protected(h runtime.HandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		g.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h(w, r, pathParams)
		})).ServeHTTP(w, r)
	}
}

// Handler returns the full HTTP handler: API routes behind logging and the
// optional rate limiter, plus health and Swagger endpoints.
func (g *Gateway) Handler() http.Handler {
	api := http.Handler(g.mux)
	if g.rateLimiter != nil {
		api = g.rateLimiter.Middleware()(api)
	}

	root := http.NewServeMux()
	root.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	root.Handle("/", api)

	return middleware.Logging(g.log)(root)
}
