package client

import (
	"sort"
	"strings"
)

// ParseEnv parses flat KEY=VALUE text. Blank lines and #-comments are
// skipped; lines without '=' are ignored. Values keep everything after the
// first '='.
func ParseEnv(data []byte) map[string]string {
	env := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		env[key] = strings.TrimSpace(value)
	}
	return env
}

// SerializeEnv renders the map as KEY=VALUE lines sorted by key, so repeated
// writes of the same content are byte-identical.
func SerializeEnv(env map[string]string) []byte {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(env[k])
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
