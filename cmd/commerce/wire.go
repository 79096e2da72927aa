//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/cmd/commerce/commands"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/data"
	"github.com/ncobase/commerce/data/repository"
	"github.com/ncobase/commerce/handler"
	"github.com/ncobase/commerce/logging/logger"
	"github.com/ncobase/commerce/logging/observes"
	"github.com/ncobase/commerce/metrics"
	"github.com/ncobase/commerce/security"
	"github.com/ncobase/commerce/security/token"
	"github.com/ncobase/commerce/server"
	"github.com/ncobase/commerce/service"
)

// InitializeApp wires the HTTP service.
// The cleanup function closes the data layer, flushes the logger and
// shuts down tracing.
func InitializeApp() (*commands.App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		observes.ProviderSet,
		logger.ProviderSet,
		metrics.ProviderSet,
		data.ProviderSet,
		repository.ProviderSet,
		security.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,
		server.ProviderSet,
		commands.NewApp,
	))
}

// InitializeTokenService wires only what the token service needs, for ops commands.
func InitializeTokenService() (*token.Service, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		metrics.ProviderSet,
		data.ProviderSet,
		token.ProviderSet,
	))
}
