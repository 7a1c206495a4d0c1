// Command authority-invariant-scan replays a scripted scenario file
// against a fresh authority.Core and reports any structural-invariant
// violation internal/invariants knows how to detect, exiting 1 on any
// finding.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	authority "github.com/ironforge/authority"
)

// operation is one step of a scripted scenario. Op selects which fields
// are read; unused fields are left at their zero value.
type operation struct {
	Op        string   `json:"op"`
	Name      string   `json:"name"`
	Parent    string   `json:"parent"`
	Child     string   `json:"child"`
	Priority  int      `json:"priority"`
	Perms     []string `json:"perms"`
	Perm      string   `json:"perm"`
	Timestamp int64    `json:"timestamp"`
	UserID    uint64   `json:"id"`
	Immunity  int      `json:"immunity"`
	Groups    []string `json:"groups"`
}

func main() {
	var scenarioPath string
	flag.StringVar(&scenarioPath, "scenario", "", "path to a JSON array of scripted operations")
	flag.Parse()

	if scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "-scenario is required")
		os.Exit(2)
	}

	ops, err := loadScenario(scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load scenario: %v\n", err)
		os.Exit(1)
	}

	core, err := authority.New().Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build core: %v\n", err)
		os.Exit(1)
	}
	defer core.Close()

	for i, op := range ops {
		if err := apply(core, op); err != nil {
			fmt.Fprintf(os.Stderr, "operation %d (%s): %v\n", i, op.Op, err)
			os.Exit(1)
		}
	}

	report := core.InvariantReport()
	if report.Clean() {
		fmt.Printf("invariant scan passed (%d operations replayed)\n", len(ops))
		return
	}

	fmt.Fprintln(os.Stderr, "invariant violations:")
	for _, v := range report.Violations {
		fmt.Fprintf(os.Stderr, "  - [%s] %s\n", v.Rule, v.Detail)
	}
	os.Exit(1)
}

func loadScenario(path string) ([]operation, error) {
	// #nosec G304 -- scenario path is an operator-supplied CLI flag.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ops []operation
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func apply(core *authority.Core, op operation) error {
	switch op.Op {
	case "create_group":
		if status := core.CreateGroup(op.Name, op.Perms, op.Priority, op.Parent); status != authority.Success {
			return fmt.Errorf("CreateGroup: %v", status)
		}
	case "delete_group":
		if status := core.DeleteGroup(op.Name); status != authority.Success {
			return fmt.Errorf("DeleteGroup: %v", status)
		}
	case "set_parent":
		if status, err := core.SetParent(op.Child, op.Parent); err != nil {
			return err
		} else if status != authority.Success {
			return fmt.Errorf("SetParent: %v", status)
		}
	case "create_user":
		if status := core.CreateUser(op.UserID, op.Immunity, op.Groups, op.Perms); status != authority.Success {
			return fmt.Errorf("CreateUser: %v", status)
		}
	case "delete_user":
		if status := core.DeleteUser(op.UserID); status != authority.Success {
			return fmt.Errorf("DeleteUser: %v", status)
		}
	case "add_permission":
		if status := core.AddPermission(op.UserID, op.Perm, op.Timestamp, true); status != authority.Success {
			return fmt.Errorf("AddPermission: %v", status)
		}
	case "remove_permission":
		if status := core.RemovePermission(op.UserID, op.Perm, true); status != authority.Success {
			return fmt.Errorf("RemovePermission: %v", status)
		}
	case "add_group":
		if status := core.AddGroup(op.UserID, op.Name, op.Timestamp, true); status != authority.Success {
			return fmt.Errorf("AddGroup: %v", status)
		}
	case "remove_group":
		if status := core.RemoveGroup(op.UserID, op.Name, true); status != authority.Success {
			return fmt.Errorf("RemoveGroup: %v", status)
		}
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}
