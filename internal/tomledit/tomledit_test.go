package tomledit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# codex settings
model = "o3"

[profile]
# keep me
name = "work"

[mcp_servers.fetch]
command = "uvx"

[mcp_servers.fetch.env]
TOKEN = "x"

[other]
key = 1
`

func TestParse_RejectsInvalidTOML(t *testing.T) {
	_, err := Parse([]byte("model = \"unterminated\nkey"))
	assert.Error(t, err)
}

func TestParse_RoundTripUntouched(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, sample, string(doc.Bytes()))
}

func TestHasTable(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.True(t, doc.HasTable("mcp_servers"))
	assert.True(t, doc.HasTable("profile"))
	assert.False(t, doc.HasTable("mcp"))
	assert.False(t, doc.HasTable("prof"), "prefix match must be segment-aware")
}

func TestRemoveTable(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.True(t, doc.RemoveTable("mcp_servers"))

	out := string(doc.Bytes())
	assert.NotContains(t, out, "mcp_servers")
	assert.NotContains(t, out, "TOKEN")
	assert.Contains(t, out, "# codex settings")
	assert.Contains(t, out, "# keep me")
	assert.Contains(t, out, "[other]")

	// Result must still be valid TOML.
	var v map[string]any
	require.NoError(t, doc.Unmarshal(&v))
}

func TestRemoveTable_Absent(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	before := string(doc.Bytes())
	assert.False(t, doc.RemoveTable("missing"))
	assert.Equal(t, before, string(doc.Bytes()), "removing an absent table is a no-op")
}

func TestReplaceTable_InPlace(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	doc.ReplaceTable("mcp_servers", []byte("[mcp_servers.git]\ncommand = \"git-mcp\"\n"))

	out := string(doc.Bytes())
	assert.Contains(t, out, `command = "git-mcp"`)
	assert.NotContains(t, out, "uvx")

	// Replacement happens where the old table sat, before [other].
	assert.Less(t, strings.Index(out, "git-mcp"), strings.Index(out, "[other]"))

	var v map[string]any
	require.NoError(t, doc.Unmarshal(&v))
}

func TestReplaceTable_AppendsWhenAbsent(t *testing.T) {
	doc, err := Parse([]byte("model = \"o3\"\n"))
	require.NoError(t, err)

	doc.ReplaceTable("mcp_servers", []byte("[mcp_servers.fetch]\ncommand = \"uvx\"\n"))

	out := string(doc.Bytes())
	assert.Contains(t, out, "model = \"o3\"")
	assert.Contains(t, out, "[mcp_servers.fetch]")

	var v map[string]any
	require.NoError(t, doc.Unmarshal(&v))
	assert.Contains(t, v, "mcp_servers")
}

func TestHeaderKey_QuotedSegments(t *testing.T) {
	key, ok := headerKey(`[mcp_servers."my.server"]`)
	require.True(t, ok)
	assert.Equal(t, "mcp_servers.my.server", key)

	_, ok = headerKey(`value = [1, 2]`)
	assert.False(t, ok)
}

func TestEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Bytes())
	assert.False(t, doc.HasTable("anything"))
}
