package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Prompt string `validate:"required,min=3"`
}

func TestValidate(t *testing.T) {
	_, err := Validate(sampleRequest{Prompt: "aumentar orçamento"})
	require.NoError(t, err)

	_, err = Validate(sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Prompt")
	assert.Contains(t, err.Error(), "required")
}
