package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/version"
)

// ProviderSet is the wire provider set for the logger package
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger initializes and returns the standard logger
func ProvideLogger(cfg *config.Logger) (*Logger, func(), error) {
	cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	l := StdLogger()
	l.SetVersion(version.Version)
	return l, cleanup, nil
}
