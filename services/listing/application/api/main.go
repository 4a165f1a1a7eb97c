package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/hellohellohell0/mcmarket/pkg/app"
	"github.com/hellohellohell0/mcmarket/pkg/auth"
	"github.com/hellohellohell0/mcmarket/services/listing/application/handlers"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
)

// ListingRoutes registers the public catalog and moderation endpoints on the
// provided chi router.
func ListingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/listings", func(r chi.Router) {
		r.Post("/", handlers.NewSubmitListingHandler(svcs).Execute)
		r.Get("/", handlers.NewSearchListingsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetListingHandler(svcs).Execute)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", auth.LoginHandler(a.SessionStore, a.AdminCreds, a.Logger))
		r.Post("/logout", auth.LogoutHandler(a.SessionStore, a.Logger))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(a.SessionStore, a.Logger))
			r.Route("/listings", func(r chi.Router) {
				r.Get("/", handlers.NewAdminListListingsHandler(svcs).Execute)
				r.Post("/", handlers.NewAdminCreateListingHandler(svcs).Execute)
				r.Delete("/pending", handlers.NewPurgePendingHandler(svcs).Execute)
				r.Post("/{id}/approve", handlers.NewApproveListingHandler(svcs).Execute)
				r.Post("/{id}/reject", handlers.NewRejectListingHandler(svcs).Execute)
				r.Patch("/{id}", handlers.NewEditListingHandler(svcs).Execute)
				r.Put("/{id}/price", handlers.NewEditPriceHandler(svcs).Execute)
				r.Delete("/{id}", handlers.NewDeleteListingHandler(svcs).Execute)
			})
		})
	})
}
