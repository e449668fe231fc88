package enums_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
	"github.com/bifrost-platform/asset-info-v2/store/storetest"
)

func TestRead(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	list, err := enums.Read(r.Root, models.EnumIDAsset)
	require.NoError(t, err)
	assert.Equal(t, []string{"eth", "unknown-ethereum", "usdt"}, list.Values())

	tags, err := enums.Read(r.Root, models.EnumTagAssetContracts)
	require.NoError(t, err)
	assert.True(t, tags.Contains("native-coin"))

	r.WriteFile("enums/ids/protocol.json", []byte(`[{"value":"b","description":"B"},{"value":"a","description":"A"}]`))
	_, err = enums.Read(r.Root, models.EnumIDProtocol)
	assert.Error(t, err)

	require.NoError(t, os.Remove(r.Path("enums", "ids", "network.json")))
	_, err = enums.Read(r.Root, models.EnumIDNetwork)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	assets := []models.Asset{storetest.USDTAsset(t), storetest.UnknownAsset(), storetest.EthAsset(t)}
	list, err := enums.Rebuild(assets)
	require.NoError(t, err)
	assert.Equal(t, storetest.Enum("eth", "Ether", "unknown-ethereum", "Unknown Ethereum Token", "usdt", "Tether USD"), list)

	empty, err := enums.Rebuild([]models.Protocol{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRebuildDuplicateID(t *testing.T) {
	t.Parallel()

	r := storetest.New(t)
	a := storetest.USDTAsset(t)
	a.ID = "token-a"
	r.Put("token-a", a)
	r.Put("token-a-copy", a)

	snap, err := store.Load(context.Background(), r.Root, 2, zap.NewNop())
	require.NoError(t, err)

	_, err = enums.Derived(snap, models.CategoryAsset)
	require.ErrorIs(t, err, enums.ErrDuplicateID)
	var dup *enums.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, models.ID("token-a"), dup.ID)
	assert.Len(t, dup.Paths, 2)

	outcomes := enums.RebuildAll(snap, zap.NewNop(), models.CategoryAsset)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, enums.ErrDuplicateID)
	assert.True(t, enums.Failed(outcomes))
	assert.NoFileExists(t, enums.Path(r.Root, models.EnumIDAsset))
}

func TestRebuildAll(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	extra := storetest.UniswapProtocol()
	extra.ID = "curve"
	extra.Name = "Curve"
	r.Add(extra)

	snap, err := store.Load(context.Background(), r.Root, 4, zap.NewNop())
	require.NoError(t, err)

	outcomes := enums.RebuildAll(snap, zap.NewNop())
	require.Len(t, outcomes, 3)
	assert.False(t, enums.Failed(outcomes))
	changed := map[models.EnumTypeID]bool{}
	for _, o := range outcomes {
		changed[o.Type] = o.Changed
	}
	assert.Equal(t, map[models.EnumTypeID]bool{
		models.EnumIDAsset:    false,
		models.EnumIDNetwork:  false,
		models.EnumIDProtocol: true,
	}, changed)

	list, err := enums.Read(r.Root, models.EnumIDProtocol)
	require.NoError(t, err)
	assert.Equal(t, storetest.Enum("curve", "Curve", "uniswap", "Uniswap"), list)

	again := enums.RebuildAll(snap, zap.NewNop())
	for _, o := range again {
		assert.False(t, o.Changed, o.Type)
	}
}

func TestRebuildAllSkipsIncomplete(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.WriteFile("networks/evm-56/info.json", []byte(`{}`))
	before, err := os.ReadFile(enums.Path(r.Root, models.EnumIDNetwork))
	require.NoError(t, err)

	snap, err := store.Load(context.Background(), r.Root, 4, zap.NewNop())
	require.NoError(t, err)
	outcomes := enums.RebuildAll(snap, zap.NewNop(), models.CategoryNetwork)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, enums.ErrIncomplete)

	after, err := os.ReadFile(enums.Path(r.Root, models.EnumIDNetwork))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	content, err := enums.Encode(storetest.Enum("bifrost", "Bifrost <BFC> & friends", "eth", "이더리움"))
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "value": "bifrost",
    "description": "Bifrost <BFC> & friends"
  },
  {
    "value": "eth",
    "description": "\uc774\ub354\ub9ac\uc6c0"
  }
]
`, string(content))

	content, err = enums.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
}

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    models.EnumType
		wantErr bool
	}{
		"bare id":        {in: "asset", want: models.EnumIDAsset},
		"explicit id":    {in: "ids/network.explorer", want: models.EnumIDNetworkExplorer},
		"explicit tag":   {in: "tags/asset", want: models.EnumTagAsset},
		"bare tag only":  {in: "asset.contracts", want: models.EnumTagAssetContracts},
		"unknown family": {in: "colors/asset", wantErr: true},
		"unknown name":   {in: "ids/token", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := enums.ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, enums.Rebuildable(models.EnumIDProtocol))
	assert.False(t, enums.Rebuildable(models.EnumIDAssetReference))
	assert.False(t, enums.Rebuildable(models.EnumTagAsset))
}
