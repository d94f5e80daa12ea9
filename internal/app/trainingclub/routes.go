// Package trainingclub собирает HTTP-приложение клуба дрессировки:
// маршруты, middleware и жизненный цикл сервера.
package trainingclub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eventosguau/training-club/internal/http/handlers/admin/assign"
	"github.com/eventosguau/training-club/internal/http/handlers/admin/clients"
	"github.com/eventosguau/training-club/internal/http/handlers/admin/editexercise"
	"github.com/eventosguau/training-club/internal/http/handlers/auth/login"
	"github.com/eventosguau/training-club/internal/http/handlers/auth/register"
	"github.com/eventosguau/training-club/internal/http/handlers/health"
	"github.com/eventosguau/training-club/internal/http/handlers/library/importcsv"
	librarylist "github.com/eventosguau/training-club/internal/http/handlers/library/list"
	"github.com/eventosguau/training-club/internal/http/handlers/library/template"
	onboardingcomplete "github.com/eventosguau/training-club/internal/http/handlers/onboarding/complete"
	"github.com/eventosguau/training-club/internal/http/handlers/payment/confirm"
	"github.com/eventosguau/training-club/internal/http/handlers/payment/sign"
	plancomplete "github.com/eventosguau/training-club/internal/http/handlers/plan/complete"
	"github.com/eventosguau/training-club/internal/http/handlers/plan/export"
	"github.com/eventosguau/training-club/internal/http/handlers/plan/feedback"
	"github.com/eventosguau/training-club/internal/http/handlers/plan/preferred"
	planweek "github.com/eventosguau/training-club/internal/http/handlers/plan/week"
	"github.com/eventosguau/training-club/internal/http/handlers/profile/comment"
	profilesave "github.com/eventosguau/training-club/internal/http/handlers/profile/save"
	sessionhandler "github.com/eventosguau/training-club/internal/http/handlers/session"
	usercreate "github.com/eventosguau/training-club/internal/http/handlers/user/create"
	userget "github.com/eventosguau/training-club/internal/http/handlers/user/get"
	userremove "github.com/eventosguau/training-club/internal/http/handlers/user/remove"
	userupdate "github.com/eventosguau/training-club/internal/http/handlers/user/update"
	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/lib/jwt"
	authservice "github.com/eventosguau/training-club/internal/services/auth"
	libraryservice "github.com/eventosguau/training-club/internal/services/library"
	paymentservice "github.com/eventosguau/training-club/internal/services/payment"
	planservice "github.com/eventosguau/training-club/internal/services/plan"
	userservice "github.com/eventosguau/training-club/internal/services/user"
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	db *repository.Storage,
	auth *authservice.AuthService,
	users *userservice.UserService,
	plans *planservice.PlanService,
	library *libraryservice.LibraryService,
	signer *paymentservice.Signer,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, auth).ServeHTTP)
		r.Post("/login", login.New(logger, auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/session", sessionhandler.New(logger, db).ServeHTTP)

			r.Post("/payment/sign", sign.New(logger, signer).ServeHTTP)
			r.Post("/payment/confirm", confirm.New(logger, users).ServeHTTP)

			r.Post("/onboarding/complete", onboardingcomplete.New(logger, users).ServeHTTP)
			r.Post("/profile", profilesave.New(logger, users).ServeHTTP)

			r.Get("/plan/week", planweek.New(logger, plans).ServeHTTP)
			r.Post("/plan/complete", plancomplete.New(logger, plans).ServeHTTP)
			r.Post("/plan/feedback", feedback.New(logger, plans).ServeHTTP)
			r.Post("/plan/preferred", preferred.New(logger, plans).ServeHTTP)
			r.Get("/plan/export", export.New(logger, plans).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Get("/admin/clients", clients.New(logger, users).ServeHTTP)
				r.Post("/admin/assign", assign.New(logger, plans).ServeHTTP)
				r.Put("/admin/exercise", editexercise.New(logger, plans).ServeHTTP)
				r.Post("/admin/comment", comment.New(logger, users).ServeHTTP)

				r.Get("/admin/library", librarylist.New(logger, library).ServeHTTP)
				r.Post("/admin/library/import", importcsv.New(logger, library).ServeHTTP)
				r.Get("/admin/library/template", template.New(logger).ServeHTTP)

				r.Get("/users", userget.New(logger, users).ServeHTTP)
				r.Post("/users", usercreate.New(logger, users).ServeHTTP)
				r.Put("/users", userupdate.New(logger, users).ServeHTTP)
				r.Delete("/users", userremove.New(logger, users).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
