package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "secid-gateway/pkg/domain-errors"
)

type sampleRequest struct {
	Value      string   `validate:"required,notblank,max=64"`
	Schemes    []string `validate:"max=13,dive,notblank"`
	MaxResults int      `validate:"min=0,max=100"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, Validate(sampleRequest{Value: "US5949181045", MaxResults: 10}))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := Validate(sampleRequest{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "value is required")
	})

	t.Run("blank field", func(t *testing.T) {
		err := Validate(sampleRequest{Value: "   "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value must not be blank")
	})

	t.Run("range violation", func(t *testing.T) {
		err := Validate(sampleRequest{Value: "x", MaxResults: 500})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_results must be at most 100")
	})
}
