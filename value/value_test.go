package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_LiteralRoundTrip(t *testing.T) {
	assert.Equal(t, int64(42), NewInt(42).AsInt())
	assert.Equal(t, 3.5, NewFloat(3.5).AsFloat())
	assert.Equal(t, byte('q'), NewChar('q').AsChar())
	assert.True(t, NewBool(true).AsBool())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", NewInt(42).String())
	assert.Equal(t, "3.5", NewFloat(3.5).String())
	assert.Equal(t, "q", NewChar('q').String())
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "false", NewBool(false).String())
	assert.Equal(t, "null", Null.String())
}

func TestValue_Equals(t *testing.T) {
	assert.True(t, NewInt(5).Equals(NewInt(5)))
	assert.False(t, NewInt(5).Equals(NewInt(6)))
	assert.False(t, NewInt(5).Equals(NewFloat(5)))
	assert.True(t, Null.Equals(Null))
}

func TestValue_WrongAccessorPanics(t *testing.T) {
	assert.Panics(t, func() { NewInt(1).AsFloat() })
	assert.Panics(t, func() { Null.AsBool() })
}
