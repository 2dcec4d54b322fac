package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAsString(t *testing.T) {
	s, err := GetAsString("already")
	require.NoError(t, err)
	assert.Equal(t, "already", s)

	s, err = GetAsString(42)
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	s, err = GetAsString(2.5)
	require.NoError(t, err)
	assert.Equal(t, "2.5", s)

	s, err = GetAsString(true)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, err = GetAsString(nil)
	assert.Error(t, err)
}

func TestGetAsInteger(t *testing.T) {
	n, err := GetAsInteger(7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = GetAsInteger(int64(9))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	n, err = GetAsInteger(3.0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = GetAsInteger(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = GetAsInteger(3.5)
	assert.Error(t, err)
	_, err = GetAsInteger("leg 3")
	assert.Error(t, err)
	_, err = GetAsInteger(nil)
	assert.Error(t, err)
}
