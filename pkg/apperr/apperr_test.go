package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	err := New(NotFound, "finca no encontrada")
	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, Conflict))
	assert.Equal(t, NotFound, KindOf(err))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, Is(wrapped, NotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(DuplicateKey, "dup")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(ValidationError, "bad")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(New(Conflict, "busy")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestPublicHidesBackendDetail(t *testing.T) {
	cause := errors.New("SQLITE_BUSY: database is locked")
	err := Wrap(QueryError, "error al obtener las parcelas", cause)
	assert.Equal(t, "internal server error", Public(err))
	assert.Contains(t, err.Error(), "SQLITE_BUSY")

	assert.Equal(t, "sector no encontrado", Public(New(NotFound, "sector no encontrado")))
}
