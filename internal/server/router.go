// Package server wires the route table and the cross-cutting middleware.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ccaruso/gestion-ingresos/auth"
	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/handlers"
	"github.com/ccaruso/gestion-ingresos/internal/store"
	"gorm.io/gorm"
)

// App is the root application handler.
type App struct {
	mux   *http.ServeMux
	store *store.Store
}

// New constructs the application with all routes configured. google may be
// unconfigured; the login endpoint then answers 503.
func New(db *gorm.DB, google *auth.GoogleOAuth) *App {
	app := &App{
		mux:   http.NewServeMux(),
		store: store.New(db),
	}

	// Sessions that refer to a deleted user are cleared on the next request.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		_, err := app.store.UserByID(uid)
		return err == nil
	})

	app.setupRoutes(google)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := withRecover(withLogging(auth.Middleware(a.mux)))
	handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes(google *auth.GoogleOAuth) {
	ah := handlers.NewAuthHandler(a.store, google)
	dh := handlers.NewDashboardHandler(a.store)
	sh := handlers.NewSupplyHandler(a.store)
	th := handlers.NewJobTypeHandler(a.store)
	jh := handlers.NewJobHandler(a.store)
	mh := handlers.NewMovementHandler(a.store)
	rh := handlers.NewRecommendationHandler(a.store)

	// Public routes.
	a.mux.HandleFunc("GET /auth/login", ah.Login)
	a.mux.HandleFunc("GET /auth/login/google", ah.LoginGoogle)
	a.mux.HandleFunc("GET /auth/login/google/callback", ah.GoogleCallback)
	a.mux.HandleFunc("GET /auth/logout", ah.Logout)

	a.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Everything below needs a session.
	a.mux.Handle("GET /{$}", a.requireAuth(http.HandlerFunc(dh.Index)))

	a.mux.Handle("GET /supplies", a.requireAuth(http.HandlerFunc(sh.List)))
	a.mux.Handle("POST /supplies", a.requireAuth(http.HandlerFunc(sh.Create)))
	a.mux.Handle("PUT /supplies/{id}", a.requireAuth(http.HandlerFunc(sh.Rename)))
	a.mux.Handle("DELETE /supplies/{id}", a.requireAuth(http.HandlerFunc(sh.Delete)))
	a.mux.Handle("GET /supplies/{id}/summary", a.requireAuth(http.HandlerFunc(sh.Summary)))
	a.mux.Handle("GET /supplies/{id}/detail/{month}", a.requireAuth(http.HandlerFunc(sh.Detail)))

	a.mux.Handle("GET /job-types", a.requireAuth(http.HandlerFunc(th.List)))
	a.mux.Handle("POST /job-types", a.requireAuth(http.HandlerFunc(th.Create)))
	a.mux.Handle("PUT /job-types/{id}", a.requireAuth(http.HandlerFunc(th.Rename)))
	a.mux.Handle("DELETE /job-types/{id}", a.requireAuth(http.HandlerFunc(th.Delete)))
	a.mux.Handle("GET /job-types/{id}/summary", a.requireAuth(http.HandlerFunc(th.Summary)))
	a.mux.Handle("GET /job-types/{id}/detail/{month}", a.requireAuth(http.HandlerFunc(th.Detail)))

	a.mux.Handle("GET /jobs", a.requireAuth(http.HandlerFunc(jh.List)))
	a.mux.Handle("POST /jobs", a.requireAuth(http.HandlerFunc(jh.Create)))
	a.mux.Handle("POST /jobs/types", a.requireAuth(http.HandlerFunc(jh.CreateType)))
	a.mux.Handle("GET /jobs/{id}/detail", a.requireAuth(http.HandlerFunc(jh.Detail)))
	a.mux.Handle("PUT /jobs/{id}", a.requireAuth(http.HandlerFunc(jh.Update)))
	a.mux.Handle("DELETE /jobs/{id}", a.requireAuth(http.HandlerFunc(jh.Delete)))

	a.mux.Handle("POST /movements", a.requireAuth(http.HandlerFunc(mh.Record)))
	a.mux.Handle("GET /movements/annual-summary", a.requireAuth(http.HandlerFunc(mh.AnnualSummary)))
	a.mux.Handle("DELETE /payments/{id}", a.requireAuth(http.HandlerFunc(mh.DeletePayment)))
	a.mux.Handle("DELETE /expenses/{id}", a.requireAuth(http.HandlerFunc(mh.DeleteExpense)))

	a.mux.Handle("GET /recommendations", a.requireAuth(http.HandlerFunc(rh.Savings)))
}

func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
