package xerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("hero: %w", Invalid("%s is required", "title_en"))

	assert.True(t, Is(err, ErrInvalidInput))
	assert.Equal(t, "title_en is required", InputMessage(err, "bad request"))
	assert.Equal(t, "bad request", InputMessage(ErrInvalidInput, "bad request"))
}

func TestIsAuthFailure(t *testing.T) {
	for _, err := range []error{ErrInvalidCredentials, ErrInvalidToken, ErrSessionExpired, Wrap(ErrUnauthorized, "ctx")} {
		assert.True(t, IsAuthFailure(err), err.Error())
	}
	assert.False(t, IsAuthFailure(ErrNotFound))
	assert.False(t, IsAuthFailure(fmt.Errorf("failed to query: %w", ErrInternal)))
}
