package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatusKeepsServerMessage(t *testing.T) {
	err := FromStatus(http.StatusNotFound, "Aluno não encontrado")
	assert.Equal(t, ErrNotFound.Code, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Aluno não encontrado", err.Message)

	err = FromStatus(http.StatusTeapot, "")
	assert.Equal(t, ErrUpstream.Code, err.Code)
	assert.Equal(t, http.StatusText(http.StatusTeapot), err.Message)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "Pagamento inválido", Message(Clone(ErrValidation, "Pagamento inválido"), "fallback"))
	wrapped := fmt.Errorf("outer: %w", Clone(ErrConflict, "duplicado"))
	assert.Equal(t, "duplicado", Message(wrapped, "fallback"))
	assert.Equal(t, "boom", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(errors.New(""), "fallback"))
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(errors.New("raw"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, "raw", errors.Unwrap(err).Error())
}
