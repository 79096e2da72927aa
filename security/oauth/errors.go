package oauth

import (
	"errors"
	"fmt"
)

// Failures of the authorization code flow
var (
	ErrProviderNotSupported = errors.New("oauth: provider not supported")
	ErrProviderNotEnabled   = errors.New("oauth: provider not enabled")
	ErrInvalidState         = errors.New("oauth: invalid state")
	ErrStateExpired         = errors.New("oauth: state expired")
	ErrCodeExchangeFailed   = errors.New("oauth: code exchange failed")
	ErrProfileFetchFailed   = errors.New("oauth: profile fetch failed")
)

var flowErrors = []error{
	ErrProviderNotSupported,
	ErrProviderNotEnabled,
	ErrInvalidState,
	ErrStateExpired,
	ErrCodeExchangeFailed,
	ErrProfileFetchFailed,
}

// StageError records which provider call failed
type StageError struct {
	Provider string
	Stage    string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("oauth %s %s: %v", e.Provider, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(provider, stage string, sentinel, cause error) *StageError {
	return &StageError{Provider: provider, Stage: stage, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}

// IsFlowError reports whether err is a failure of the provider flow
// rather than of this service
func IsFlowError(err error) bool {
	for _, target := range flowErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
