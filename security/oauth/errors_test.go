package oauth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := stageError(ProviderGoogle, "exchange", ErrCodeExchangeFailed, cause)

	assert.ErrorIs(t, err, ErrCodeExchangeFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "google exchange")

	var se *StageError
	assert.True(t, errors.As(error(err), &se))
	assert.Equal(t, "exchange", se.Stage)
}

func TestIsFlowError(t *testing.T) {
	assert.True(t, IsFlowError(ErrStateExpired))
	assert.True(t, IsFlowError(stageError(ProviderGitHub, "profile", ErrProfileFetchFailed, context.DeadlineExceeded)))
	assert.False(t, IsFlowError(context.Canceled))
	assert.False(t, IsFlowError(nil))
}
