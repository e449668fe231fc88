package networks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bifrost-platform/asset-info-v2/models"
)

func writeRPCList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEndpoints(t *testing.T) {
	t.Parallel()

	path := writeRPCList(t, `[
  {"id": "evm-1", "url": "https://eth.example.org"},
  {"id": "evm-56", "url": "https://bsc.example.org"},
  {"id": "solana"}
]`)
	e, err := LoadEndpoints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"evm-1", "evm-56", "solana"}, e.Names())
	assert.Equal(t, map[string]string{"evm-1": "https://eth.example.org"}, e.GetNodes("evm-1"))
	assert.Empty(t, e.GetNodes("solana"))
	assert.Empty(t, e.GetNodes("evm-137"))

	n, err := e.GetNetwork("evm-56")
	require.NoError(t, err)
	id, ok := n.GetChainID()
	assert.True(t, ok)
	assert.Equal(t, uint64(56), id)

	_, err = e.GetNetwork("evm-2")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
	unlisted := e.Network("evm-2")
	assert.Equal(t, "ASSETINFO_NODE_EVM_2", unlisted.GetNodeVariableName())
	assert.Empty(t, unlisted.GetDefaultNodes())
	id, ok = unlisted.GetChainID()
	assert.True(t, ok)
	assert.Equal(t, uint64(2), id)
}

func TestLoadEndpointsRejectsUnsorted(t *testing.T) {
	t.Parallel()

	path := writeRPCList(t, `[{"id": "evm-56", "url": "https://a.org"}, {"id": "evm-1", "url": "https://b.org"}]`)
	_, err := LoadEndpoints(path)
	assert.Error(t, err)
}

func TestLoadEndpointsMissingFile(t *testing.T) {
	t.Parallel()

	e, err := LoadEndpoints(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, e.Names())
}

func TestGetNodesEnvOverride(t *testing.T) {
	t.Setenv("ASSETINFO_NODE_EVM_137", "https://a.example.org, https://b.example.org")

	e := NewEndpoints()
	nodes := e.GetNodes("evm-137")
	assert.Len(t, nodes, 2)
	assert.Equal(t, "https://a.example.org", nodes["evm-137-env-0"])
	assert.Equal(t, "https://b.example.org", nodes["evm-137-env-1"])
}

func TestChainIDFromNetworkID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id   string
		want uint64
		ok   bool
	}{
		"mainnet":      {id: "evm-1", want: 1, ok: true},
		"large":        {id: "evm-3068", want: 3068, ok: true},
		"not evm":      {id: "bitcoin", ok: false},
		"not a number": {id: "evm-abc", ok: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := ChainIDFromNetworkID(models.ID(tt.id))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "ASSETINFO_NODE_EVM_1", GetNodeVariableName("evm-1"))
}
