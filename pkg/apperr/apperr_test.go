package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("create transaction: %w", NotFound("Customer not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "Customer not found", MessageOf(wrapped))
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "boom", MessageOf(err))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "query customers", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query customers: connection reset", err.Error())
	assert.Equal(t, "internal", err.Kind.String())
}
