package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Format(t *testing.T) {
	err := New(CodeEmptyCart, "cart is empty")
	assert.Equal(t, "EMPTY_CART: cart is empty", err.Error())

	cause := stdErrors.New("unexpected EOF")
	wrapped := Wrap(CodeCorruptState, cause, "decode snapshot")
	assert.Equal(t, "CORRUPT_STATE: decode snapshot: unexpected EOF", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestAs_ThroughWrapping(t *testing.T) {
	base := Newf(CodeInsufficientStock, "only %d left", 2).
		WithDetail("available", 2).
		WithDetail("requested", 5)
	err := fmt.Errorf("state: restore: %w", base)

	typed := As(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeInsufficientStock, typed.Code())
	assert.Equal(t, "only 2 left", typed.Message())
	v, ok := typed.Detail("available")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Len(t, typed.Details(), 2)

	assert.True(t, Is(err, CodeInsufficientStock))
	assert.False(t, Is(err, CodeNotFound))
	assert.Equal(t, CodeInsufficientStock, CodeOf(err))
}

func TestForeignErrors(t *testing.T) {
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("boom")))
	assert.False(t, Is(nil, CodeNotFound))
	assert.Equal(t, CodeInternal, CodeOf(stdErrors.New("boom")))
}

func TestRecoverable(t *testing.T) {
	for _, c := range []Code{CodeInvalidInput, CodeNotFound, CodeInsufficientStock, CodeInvalidQuantity,
		CodeDuplicate, CodeInvalidIdentity, CodeLastAdminProtected, CodeEmptyCart, CodeProductInCart} {
		assert.True(t, c.Recoverable(), c)
	}
	assert.False(t, CodeCorruptState.Recoverable())
	assert.False(t, CodeInternal.Recoverable())
}
