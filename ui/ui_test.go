package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	u := NewTerminalUIWriter(&buf, false)
	u.TableWithGroups([]string{"kind", "count"}, [][][]string{
		{{"schema", "1"}},
		{{"consistency", "12"}},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "┌─────────────┬───────┐", lines[0])
	assert.Equal(t, "│ kind        │ count │", lines[1])
	assert.Equal(t, "│ schema      │ 1     │", lines[3])
	assert.Equal(t, "├─────────────┼───────┤", lines[4])
	assert.Equal(t, "└─────────────┴───────┘", lines[6])
}

func TestTerminalIndentAndSection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	u := NewTerminalUIWriter(&buf, false)
	u.Indent().Info("assets/eth/info.json")
	u.Indent().KeyValue([][2]string{{"Rule", "image-flag"}, {"Expected", "true"}})
	u.Section("image (1)")
	stop := u.Spinner("Loading records...")
	stop()

	out := buf.String()
	assert.Contains(t, out, "  assets/eth/info.json\n")
	assert.Contains(t, out, "  Rule      image-flag\n")
	assert.Contains(t, out, "  Expected  true\n")
	assert.Contains(t, out, " image (1) ")
	assert.Contains(t, out, "Loading records...\n")
	assert.NotContains(t, out, "\x1b[", "no colour outside a terminal")

	buf.Reset()
	_, err := u.Indent().Writer().Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "  a\n  b\n", buf.String())
}

func TestRecordingUI(t *testing.T) {
	t.Parallel()

	r := NewRecordingUI()
	r.Info("checked %d records", 3)
	r.Indent().Error("assets/foo: %s", "broken")
	r.Table([]string{"value", "description"}, [][]string{{"eth", "Ether"}})
	r.Section("schema (1)")

	assert.Equal(t, []string{"checked 3 records"}, r.InfoMessages())
	assert.Equal(t, []string{"assets/foo: broken"}, r.ErrorMessages())
	assert.Equal(t, [][][]string{{{"eth", "Ether"}}}, r.Tables())
	assert.Equal(t, []string{"schema (1)"}, r.Sections())
	assert.True(t, r.HasMessage("BROKEN"))
	assert.Equal(t, "x", r.Style(StyledText{Text: "x", Severity: SeverityError}))
}
