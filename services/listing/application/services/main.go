package services

import (
	"github.com/hellohellohell0/mcmarket/pkg/app"
	"github.com/hellohellohell0/mcmarket/pkg/auth"
	"github.com/hellohellohell0/mcmarket/pkg/cache"
	"github.com/hellohellohell0/mcmarket/services/listing/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Listing *ListingService
}

// New wires all listing application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewListingRepository(a.Db, a.EventBus)
	listingCache := cache.NewListingCache(a.Redis)
	return &Services{
		Listing: NewListingService(repo, listingCache, auth.ContextGate{}, a.EventBus, a.Logger),
	}
}
