package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_SealOpen(t *testing.T) {
	box, err := NewBox("chave-de-teste")
	require.NoError(t, err)

	sealed, err := box.Seal("1//refresh-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "refresh-token")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "1//refresh-token", plain)
}

func TestBox_OpenWithOtherKey(t *testing.T) {
	a, _ := NewBox("a")
	b, _ := NewBox("b")

	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidSealed)
}

func TestBox_OpenInvalid(t *testing.T) {
	box, _ := NewBox("k")

	_, err := box.Open("não-é-base64")
	assert.ErrorIs(t, err, ErrInvalidSealed)

	_, err = box.Open("YWJj")
	assert.ErrorIs(t, err, ErrInvalidSealed)
}

func TestNewBox_EmptyKey(t *testing.T) {
	_, err := NewBox("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
