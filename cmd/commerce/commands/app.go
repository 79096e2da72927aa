package commands

import (
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/logging/observes"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/server"
)

// App is the fully wired service
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Server *server.Server
}

// NewApp creates the application. Observes is required so tracing and
// error reporting are initialized before the server starts.
func NewApp(cfg *config.Config, l *logger.Logger, s *server.Server, _ *observes.Observes) *App {
	return &App{Config: cfg, Logger: l, Server: s}
}

// Injectors are the wire-generated constructors used by the commands
type Injectors struct {
	App    func() (*App, func(), error)
	Tokens func() (*token.Service, func(), error)
}
