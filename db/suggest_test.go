package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bifrost-platform/asset-info-v2/models"
)

var networks = models.EnumInfoList{
	{Value: "bifrost", Description: "Bifrost Network"},
	{Value: "evm-1", Description: "Ethereum"},
	{Value: "evm-56", Description: "BNB Smart Chain"},
	{Value: "evm-8453", Description: "Base"},
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  models.ID
	}{
		"description words": {input: "smart chain", want: "evm-56"},
		"exact value":       {input: "bifrost", want: "bifrost"},
		"typo at the end":   {input: "evm-8452", want: "evm-8453"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Lookup(tt.input, networks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestSuggestNothing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Suggest("zz", networks))
	_, err := Lookup("zz", networks)
	assert.Error(t, err)
	assert.Equal(t, "", Hint("zz", networks, 2))
	assert.Empty(t, Suggest("evm-1", nil))
}

func TestHint(t *testing.T) {
	t.Parallel()

	hint := Hint("bifrots", networks, 1)
	assert.Equal(t, `did you mean "bifrost"?`, hint)
}
