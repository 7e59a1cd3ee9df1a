package mcp

import (
	"testing"

	"github.com/mpratt/provsync/internal/logging"
)

func stdioEntry(id string) *ServerEntry {
	return &ServerEntry{
		ID:      id,
		Enabled: true,
		Server:  &ServerSpec{Type: TypeStdio, Command: "npx"},
	}
}

func TestRepair_BlankID(t *testing.T) {
	cfg := Config{"filesystem": stdioEntry("")}

	if got := Repair(cfg, nil); got != 1 {
		t.Errorf("Repair() = %d, want 1", got)
	}
	if cfg["filesystem"].ID != "filesystem" {
		t.Errorf("ID = %q, want filesystem", cfg["filesystem"].ID)
	}
}

func TestRepair_TrimsPadding(t *testing.T) {
	cfg := Config{"github": stdioEntry("  github  ")}

	if got := Repair(cfg, nil); got != 1 {
		t.Errorf("Repair() = %d, want 1", got)
	}
	if cfg["github"].ID != "github" {
		t.Errorf("ID = %q, want github", cfg["github"].ID)
	}
}

func TestRepair_RenamesSlot(t *testing.T) {
	cfg := Config{"old-key": stdioEntry("fetch")}

	if got := Repair(cfg, nil); got != 1 {
		t.Errorf("Repair() = %d, want 1", got)
	}
	if _, ok := cfg["old-key"]; ok {
		t.Error("old slot should have been renamed away")
	}
	entry, ok := cfg["fetch"]
	if !ok {
		t.Fatal("entry not found under its identifier")
	}
	if entry.ID != "fetch" {
		t.Errorf("ID = %q, want fetch", entry.ID)
	}
}

func TestRepair_CollisionKeepsKey(t *testing.T) {
	cfg := Config{
		"fetch": stdioEntry("fetch"),
		"other": stdioEntry("fetch"),
	}

	if got := Repair(cfg, logging.ForTest(t)); got != 1 {
		t.Errorf("Repair() = %d, want 1", got)
	}
	if cfg["other"].ID != "other" {
		t.Errorf("colliding entry ID = %q, want forced back to other", cfg["other"].ID)
	}
	if cfg["fetch"].ID != "fetch" {
		t.Error("existing entry must be untouched")
	}
}

func TestRepair_Idempotent(t *testing.T) {
	cfg := Config{
		"a":       stdioEntry(" a"),
		"b":       stdioEntry(""),
		"old-key": stdioEntry("c"),
	}

	if first := Repair(cfg, nil); first != 3 {
		t.Errorf("first Repair() = %d, want 3", first)
	}
	if second := Repair(cfg, nil); second != 0 {
		t.Errorf("second Repair() = %d, want 0", second)
	}
}

func TestRepair_CleanMapUntouched(t *testing.T) {
	cfg := Config{"a": stdioEntry("a")}
	if got := Repair(cfg, nil); got != 0 {
		t.Errorf("Repair() = %d, want 0", got)
	}
}
