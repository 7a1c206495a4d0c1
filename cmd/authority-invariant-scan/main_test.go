package main

import (
	"os"
	"path/filepath"
	"testing"

	authority "github.com/ironforge/authority"
)

func TestApplyReplaysScenarioCleanly(t *testing.T) {
	core, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer core.Close()

	ops := []operation{
		{Op: "create_group", Name: "root", Priority: 10},
		{Op: "create_group", Name: "child", Parent: "root", Perms: []string{"a.b"}},
		{Op: "create_user", UserID: 1, Groups: []string{"child"}},
		{Op: "add_permission", UserID: 1, Perm: "c.d"},
		{Op: "remove_permission", UserID: 1, Perm: "c.d"},
		{Op: "delete_group", Name: "child"},
	}

	for i, op := range ops {
		if err := apply(core, op); err != nil {
			t.Fatalf("operation %d (%s): %v", i, op.Op, err)
		}
	}

	report := core.InvariantReport()
	if !report.Clean() {
		t.Fatalf("expected a clean report, got %v", report.Violations)
	}
}

func TestApplyRejectsUnknownOp(t *testing.T) {
	core, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer core.Close()

	if err := apply(core, operation{Op: "frobnicate"}); err == nil {
		t.Fatal("expected an error for an unknown op")
	}
}

func TestLoadScenarioParsesJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	const body = `[
		{"op": "create_group", "name": "root"},
		{"op": "create_user", "id": 1, "groups": ["root"]}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ops, err := loadScenario(path)
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	if ops[1].UserID != 1 || len(ops[1].Groups) != 1 || ops[1].Groups[0] != "root" {
		t.Fatalf("unexpected second op: %+v", ops[1])
	}
}
