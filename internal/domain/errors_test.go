package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear producto: %w", domain.NewValidationError("price", "debe ser >= 0"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "price", ve.Field)
	assert.Equal(t, "crear producto: price: debe ser >= 0", err.Error())
}

func TestUnavailable_ConservaCausa(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("%w: %w", domain.ErrUnavailable, cause)

	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
