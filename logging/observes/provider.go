package observes

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/config"
)

// ProviderSet is the wire provider set for the observes package.
var ProviderSet = wire.NewSet(ProvideObserves)

// Observes marks that error reporting and tracing are initialized
type Observes struct{}

// ProvideObserves initializes Sentry and the tracer and returns their combined cleanup
func ProvideObserves(cfg *config.Config) (*Observes, func(), error) {
	if cfg.Observes == nil {
		return &Observes{}, func() {}, nil
	}

	flush, err := NewSentry(cfg.Observes.Sentry, cfg.AppName)
	if err != nil {
		return nil, nil, err
	}
	shutdown, err := NewTracer(cfg.Observes.Tracer)
	if err != nil {
		flush()
		return nil, nil, err
	}
	return &Observes{}, func() {
		shutdown()
		flush()
	}, nil
}
