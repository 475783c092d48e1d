package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lessonboard/lessonboard/internal/api"
	apiMiddleware "github.com/lessonboard/lessonboard/internal/api/middleware"
)

// setupRouter creates the router with the standard middleware stack and
// every route of the route table.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.renderer.Middleware)

	handlers := api.NewHandlers(api.Dependencies{
		Categories:       app.categoryStore,
		Lessons:          app.lessonStore,
		Roles:            app.roleStore,
		Users:            app.userStore,
		Tx:               app.transactor,
		JWTService:       app.jwtService,
		PasswordVerifier: app.passwordVerifier,
		Renderer:         app.renderer,
		DB:               app.db,
		AuthConfig:       app.config.Auth,
		AppURL:           app.config.View.AppURL,
		Logger:           app.logger,
	})

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore,
		apiMiddleware.AuthOptions{
			SessionCookie: app.config.Auth.SessionCookie,
			LoginURL:      api.MustURL(api.RouteLogin),
			VerifyURL:     api.MustURL(api.RouteVerifyNotice),
		}, app.logger)

	if err := api.Mount(r, handlers, authMiddleware); err != nil {
		return nil, err
	}
	return r, nil
}
