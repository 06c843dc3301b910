package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataErrorMessageIncludesFieldAndValue(t *testing.T) {
	err := InvalidValue("permalink", "not a url", "must be an absolute http(s) URL")
	assert.Contains(t, err.Error(), "invalid_value")
	assert.Contains(t, err.Error(), `"permalink"`)
	assert.Contains(t, err.Error(), `"not a url"`)
}

func TestMissingFieldKind(t *testing.T) {
	err := MissingField("contact")
	require.Equal(t, KindMissingField, err.Kind)
	assert.True(t, IsKind(err, KindMissingField))
	assert.False(t, IsKind(err, KindInvalidValue))
}

func TestWrapIOUnwraps(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := WrapIO(cause, "write sitemap")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, KindIO, GetKind(err))
}

func TestIsKindFollowsCauseChain(t *testing.T) {
	inner := Security("name", "../../etc/passwd", "path traversal")
	outer := &DataError{Kind: KindStructural, Message: "record rejected", Cause: inner}
	assert.True(t, IsKind(outer, KindSecurity))
	assert.True(t, IsKind(outer, KindStructural))
}

func TestGetKindOnForeignError(t *testing.T) {
	assert.Equal(t, KindIO, GetKind(fmt.Errorf("plain")))
}
