package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"kh-portfolio/internal/middleware"
	"kh-portfolio/internal/works"
)

// Routes builds the whole API. The carousel stream sits outside the request
// timeout since it stays open for as long as the visitor watches.
func (s *Server) Routes(worksHandler *works.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.Log))
	r.Use(middleware.CORS(s.FrontendOrigin))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.Health)

		api.Group(func(visitor chi.Router) {
			visitor.Use(middleware.Session(s.Sessions, s.Tokens, s.CookieSecure, s.Log))
			visitor.Get("/carousel/stream", s.CarouselStream)

			visitor.Group(func(timed chi.Router) {
				timed.Use(chiMiddleware.Timeout(30 * time.Second))

				timed.Get("/site", s.GetSite)
				timed.Get("/pages/{name}", s.GetPage)

				timed.Get("/works", worksHandler.PublicList)
				timed.Get("/works/{id}", worksHandler.PublicGet)
				timed.Get("/works/{id}/thumbnail", s.GetThumbnail)

				timed.Get("/carousel", s.GetCarousel)
				timed.Post("/carousel/events", s.CarouselEvent)

				timed.Get("/view", s.GetView)
				timed.Post("/view/navigate", s.Navigate)
				timed.Post("/view/logo", s.ClickLogo)
				timed.Post("/view/works/{id}", s.SelectWork)
				timed.Post("/view/works/{id}/detail", s.ShowWorkDetail)
				timed.Post("/view/visit", s.VisitWork)

				timed.Route("/admin", func(admin chi.Router) {
					admin.Post("/login", s.AdminLogin)
					admin.Post("/logout", s.AdminLogout)

					admin.Group(func(protected chi.Router) {
						protected.Use(middleware.AdminOnly)
						protected.Get("/works", worksHandler.AdminList)
						protected.Post("/works", worksHandler.AdminCreate)
						protected.Put("/works/{id}", worksHandler.AdminUpdate)
						protected.Delete("/works/{id}", worksHandler.AdminDelete)
						if s.UploadLimiter != nil {
							protected.With(s.UploadLimiter.Middleware).Post("/images", s.AdminUploadImage)
						} else {
							protected.Post("/images", s.AdminUploadImage)
						}
					})
				})
			})
		})
	})

	return r
}
