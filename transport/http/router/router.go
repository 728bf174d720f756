package router

import (
	"github.com/go-chi/chi/v5"

	"taghazout/internal/handlers/blog"
	"taghazout/internal/handlers/booking"
	"taghazout/internal/handlers/i18n"
	"taghazout/internal/handlers/listing"
	"taghazout/internal/handlers/tourpackage"
)

type DomainHandlers struct {
	Listing listing.Handler
	Package tourpackage.Handler
	Blog    blog.Handler
	Booking booking.Handler
	I18n    i18n.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Listing.Router(routerGroup)
		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Blog.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.I18n.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
