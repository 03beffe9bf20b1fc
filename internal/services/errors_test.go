package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	eshika_errors "eshika-chat/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrEmailTaken))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrMissingFields))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrInvalidCredentials))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrap: %w", ErrChatNotFound)))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(eshika_errors.ErrGatewayTimeout))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("disk full")))
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "Chat not found", PublicMessage(fmt.Errorf("x: %w", ErrChatNotFound)))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("open /data/users.json: permission denied")))
}
