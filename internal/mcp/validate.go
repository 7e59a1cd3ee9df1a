package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mpratt/provsync/internal/errors"
)

// ValidateSpec checks a server spec for the minimal field contract:
// stdio servers need a non-empty command, http servers a non-empty URL.
func ValidateSpec(spec *ServerSpec) error {
	if spec == nil {
		return errors.Wrap(errors.ErrMcpValidation, "server spec is missing")
	}

	switch spec.Type {
	case TypeStdio:
		if strings.TrimSpace(spec.Command) == "" {
			return errors.Wrap(errors.ErrMcpValidation, "stdio server requires a command")
		}
	case TypeHTTP:
		if strings.TrimSpace(spec.URL) == "" {
			return errors.Wrap(errors.ErrMcpValidation, "http server requires a url")
		}
	default:
		return errors.Wrapf(errors.ErrMcpValidation, "unknown server type %q", spec.Type)
	}

	return nil
}

// ValidateEntry checks a catalogue entry: a non-blank identifier plus the
// spec contract of ValidateSpec.
func ValidateEntry(entry *ServerEntry) error {
	if entry == nil {
		return errors.Wrap(errors.ErrMcpValidation, "entry is nil")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return errors.Wrap(errors.ErrMcpValidation, "entry id is required")
	}
	return ValidateSpec(entry.Server)
}

// ParseSpec builds a ServerSpec from a client-native generic map, as found
// in live configuration files. The type tag is inferred when absent: a url
// means http, otherwise stdio.
func ParseSpec(raw map[string]any) (*ServerSpec, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "encoding native server definition")
	}

	var spec ServerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "decoding native server definition")
	}

	if spec.Type == "" {
		if spec.URL != "" && spec.Command == "" {
			spec.Type = TypeHTTP
		} else {
			spec.Type = TypeStdio
		}
	}

	if err := ValidateSpec(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
