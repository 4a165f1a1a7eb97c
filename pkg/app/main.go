package app

import (
	"github.com/gorilla/sessions"

	"github.com/hellohellohell0/mcmarket/pkg/auth"
	"github.com/hellohellohell0/mcmarket/pkg/cache"
	"github.com/hellohellohell0/mcmarket/pkg/database"
	"github.com/hellohellohell0/mcmarket/pkg/events"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "listing approved", "listing_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store   // Redis-backed admin session store; nil in worker process
	AdminCreds   auth.Credentials // injected moderator credential; zero in worker process
}
