package preprocess

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
	"github.com/bifrost-platform/asset-info-v2/store/storetest"
	"github.com/bifrost-platform/asset-info-v2/validation"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func load(t *testing.T, root string) *store.Snapshot {
	t.Helper()
	snap, err := store.Load(context.Background(), root, 2, zap.NewNop())
	require.NoError(t, err)
	return snap
}

func preprocess(t *testing.T, root string, overwrite bool) *Summary {
	t.Helper()
	summary, err := Run(context.Background(), load(t, root), Options{Workers: 2, Overwrite: overwrite})
	require.NoError(t, err)
	return summary
}

func outcome(t *testing.T, s *Summary, id models.ID) RecordOutcome {
	t.Helper()
	for _, r := range s.Records {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no outcome for %s", id)
	return RecordOutcome{}
}

func TestRunDerivesAndFoldsFlags(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.WriteFile("assets/usdt/image.png", pngBytes(t, 512, 300))
	r.WriteFile("assets/eth/image.png", []byte("\x89PNG\r\n\x1a\ntruncated"))
	r.Add(models.Protocol{
		ID:       "curve",
		Name:     "Curve",
		Networks: models.IDList{"evm-1"},
		Tags:     models.TagList{"dex"},
		URL:      "https://curve.fi",
	})

	summary := preprocess(t, r.Root, false)
	assert.True(t, summary.Failed())

	failures := summary.DerivationFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, models.ID("eth"), failures[0].ID)

	usdt := outcome(t, summary, "usdt")
	require.NoError(t, usdt.Err)
	assert.Equal(t, []models.ImageType{models.ImagePng32, models.ImagePng64, models.ImagePng128, models.ImagePng256}, usdt.Created)
	assert.True(t, usdt.InfoChanged)

	rec, err := store.ReadInfo[models.Asset](r.Path("assets", "usdt", "info.json"))
	require.NoError(t, err)
	assert.Equal(t, models.ImageInfo{Png32: true, Png64: true, Png128: true, Png256: true}, rec.Images)

	list, err := enums.Read(r.Root, models.EnumIDProtocol)
	require.NoError(t, err)
	assert.Equal(t, storetest.Enum("curve", "Curve", "uniswap", "Uniswap"), list)
	assert.False(t, enums.Failed(summary.Enums))

	report, err := validation.Run(context.Background(), load(t, r.Root), validation.Options{Workers: 2})
	require.NoError(t, err)
	assert.Empty(t, report.Failures())
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.WriteFile("networks/evm-1/image-128.png", pngBytes(t, 128, 128))

	first := preprocess(t, r.Root, false)
	require.False(t, first.Failed())
	assert.Equal(t, 2, first.CreatedCount())
	assert.Equal(t, 1, first.ChangedInfoCount())

	second := preprocess(t, r.Root, false)
	assert.False(t, second.Failed())
	assert.Zero(t, second.CreatedCount())
	assert.Zero(t, second.ChangedInfoCount())
	for _, o := range second.Enums {
		assert.False(t, o.Changed, o.Type)
	}

	overwritten := preprocess(t, r.Root, true)
	assert.Equal(t, 2, overwritten.CreatedCount())
	assert.Zero(t, overwritten.ChangedInfoCount())
}

func TestRunRewritesInfoCanonically(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	p := storetest.UniswapProtocol()
	compact, err := json.Marshal(p)
	require.NoError(t, err)
	path := r.WriteFile("protocols/uniswap/info.json", compact)

	summary := preprocess(t, r.Root, false)
	require.False(t, summary.Failed())
	assert.True(t, outcome(t, summary, "uniswap").InfoChanged)

	want, err := store.EncodeInfo(p)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRunSkipsUnreadable(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.WriteFile("protocols/uniswap/info.json", []byte(`{"id": "uniswap"}`))

	summary := preprocess(t, r.Root, false)
	assert.True(t, summary.Failed())
	require.Len(t, summary.Unreadable, 1)
	assert.Empty(t, summary.DerivationFailures())

	protocolEnum := summary.Enums[models.CategoryProtocol.Order()]
	assert.ErrorIs(t, protocolEnum.Err, enums.ErrIncomplete)
	list, err := enums.Read(r.Root, models.EnumIDProtocol)
	require.NoError(t, err)
	assert.Equal(t, storetest.Enum("uniswap", "Uniswap"), list, "previous enum kept")
}

func TestWithImages(t *testing.T) {
	t.Parallel()

	images := models.ImageInfo{Png32: true}
	for name, rec := range map[string]models.Record{
		"asset":    storetest.UnknownAsset(),
		"network":  storetest.EthNetwork(t),
		"protocol": storetest.UniswapProtocol(),
	} {
		got, err := WithImages(rec, images)
		require.NoError(t, err, name)
		assert.Equal(t, images, got.GetImages(), name)
		assert.Equal(t, rec.GetID(), got.GetID(), name)
	}
}
