package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerSpec_RoundTripKeepsUnknownFields(t *testing.T) {
	raw := []byte(`{"type":"stdio","command":"npx","args":["-y","server"],"startup_timeout_sec":30}`)

	var spec ServerSpec
	require.NoError(t, json.Unmarshal(raw, &spec))

	assert.Equal(t, TypeStdio, spec.Type)
	assert.Equal(t, "npx", spec.Command)

	out, err := json.Marshal(&spec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, float64(30), m["startup_timeout_sec"], "unknown field must survive")
}

func TestServerSpec_Native(t *testing.T) {
	stdio := &ServerSpec{
		Type:    TypeStdio,
		Command: "uvx",
		Args:    []string{"mcp-server-git"},
		Env:     map[string]string{"HOME": "/tmp"},
	}
	m := stdio.Native()
	assert.Equal(t, "uvx", m["command"])
	assert.NotContains(t, m, "type", "stdio entries are identified by command")

	http := &ServerSpec{
		Type:    TypeHTTP,
		URL:     "https://mcp.example.com",
		Headers: map[string]string{"Authorization": "Bearer x"},
	}
	m = http.Native()
	assert.Equal(t, TypeHTTP, m["type"])
	assert.Equal(t, "https://mcp.example.com", m["url"])
}

func TestValidateSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    *ServerSpec
		wantErr bool
	}{
		{"valid stdio", &ServerSpec{Type: TypeStdio, Command: "npx"}, false},
		{"valid http", &ServerSpec{Type: TypeHTTP, URL: "https://x"}, false},
		{"stdio missing command", &ServerSpec{Type: TypeStdio}, true},
		{"stdio blank command", &ServerSpec{Type: TypeStdio, Command: "   "}, true},
		{"http missing url", &ServerSpec{Type: TypeHTTP}, true},
		{"unknown type", &ServerSpec{Type: "websocket", URL: "x"}, true},
		{"nil spec", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSpec_InfersType(t *testing.T) {
	spec, err := ParseSpec(map[string]any{"command": "npx", "args": []any{"-y"}})
	require.NoError(t, err)
	assert.Equal(t, TypeStdio, spec.Type)

	spec, err = ParseSpec(map[string]any{"url": "https://mcp.example.com"})
	require.NoError(t, err)
	assert.Equal(t, TypeHTTP, spec.Type)

	_, err = ParseSpec(map[string]any{"command": ""})
	assert.Error(t, err, "empty command must fail validation")
}

func TestConfig_Enabled(t *testing.T) {
	cfg := Config{
		"b": {ID: "b", Enabled: true, Server: &ServerSpec{Type: TypeStdio, Command: "b"}},
		"a": {ID: "a", Enabled: true, Server: &ServerSpec{Type: TypeStdio, Command: "a"}},
		"c": {ID: "c", Enabled: false, Server: &ServerSpec{Type: TypeStdio, Command: "c"}},
	}

	enabled := cfg.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "a", enabled[0].ID, "entries must be identifier-sorted")
	assert.Equal(t, "b", enabled[1].ID)
}
