/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package ops

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

// TestRegistry_BasicRegistration tests basic command registration functionality
func TestRegistry_BasicRegistration(t *testing.T) {
	registry := newTestRegistry()

	testCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan font sources",
	}

	if err := registry.Register("scan", GroupPipeline, testCmd, "Scan sources for font metadata"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	cmd, exists := registry.GetCommand("scan")
	if !exists {
		t.Fatal("Expected command to exist after registration")
	}

	if cmd.Name != "scan" {
		t.Errorf("Expected command name 'scan', got '%s'", cmd.Name)
	}

	if cmd.Group != GroupPipeline {
		t.Errorf("Expected command group 'pipeline', got '%s'", cmd.Group)
	}

	if cmd.Description != "Scan sources for font metadata" {
		t.Errorf("Expected description 'Scan sources for font metadata', got '%s'", cmd.Description)
	}

	if cmd.Command != testCmd {
		t.Error("Expected command object to match registered command")
	}
}

// TestRegistry_DuplicateRegistration tests handling of duplicate command registration
func TestRegistry_DuplicateRegistration(t *testing.T) {
	registry := newTestRegistry()

	testCmd := &cobra.Command{Use: "merge"}

	if err := registry.Register("merge", GroupPipeline, testCmd, "first"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := registry.Register("merge", GroupPipeline, testCmd, "second")
	if err == nil {
		t.Fatal("Expected error for duplicate registration")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("Expected 'already registered' in error, got: %v", err)
	}

	// The original registration survives
	cmd, _ := registry.GetCommand("merge")
	if cmd.Description != "first" {
		t.Errorf("Expected original registration to survive, got '%s'", cmd.Description)
	}
}

// TestRegistry_GetCommand tests command lookup
func TestRegistry_GetCommand(t *testing.T) {
	registry := newTestRegistry()

	if _, exists := registry.GetCommand("missing"); exists {
		t.Error("Expected missing command to not exist")
	}

	testCmd := &cobra.Command{Use: "version"}
	if err := registry.Register("version", GroupSupport, testCmd, "Show version"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	cmd, exists := registry.GetCommand("version")
	if !exists {
		t.Fatal("Expected registered command to exist")
	}
	if cmd.Name != "version" {
		t.Errorf("Expected 'version', got '%s'", cmd.Name)
	}
}

// TestRegistry_GetCommandsByGroup tests group-based command retrieval
func TestRegistry_GetCommandsByGroup(t *testing.T) {
	registry := newTestRegistry()

	pipelineCommands := []string{"scan", "clash", "merge"}
	for _, name := range pipelineCommands {
		cmd := &cobra.Command{Use: name}
		if err := registry.Register(name, GroupPipeline, cmd, name+" command"); err != nil {
			t.Fatalf("registration of %s failed: %v", name, err)
		}
	}

	versionCmd := &cobra.Command{Use: "version"}
	if err := registry.Register("version", GroupSupport, versionCmd, "Show version"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	pipeline := registry.GetCommandsByGroup(GroupPipeline)
	if len(pipeline) != 3 {
		t.Errorf("Expected 3 pipeline commands, got %d", len(pipeline))
	}
	for i, name := range pipelineCommands {
		if pipeline[i].Name != name {
			t.Errorf("Expected registration order preserved, got %s at %d", pipeline[i].Name, i)
		}
	}

	support := registry.GetCommandsByGroup(GroupSupport)
	if len(support) != 1 || support[0].Name != "version" {
		t.Errorf("Expected only version in support group, got %v", support)
	}

	if got := registry.GetCommandsByGroup("unknown"); len(got) != 0 {
		t.Errorf("Expected no commands for unknown group, got %d", len(got))
	}
}

// TestRegistry_GetPipelineCommands tests the pipeline convenience accessor
func TestRegistry_GetPipelineCommands(t *testing.T) {
	registry := newTestRegistry()

	scanCmd := &cobra.Command{Use: "scan"}
	if err := registry.Register("scan", GroupPipeline, scanCmd, "Scan sources"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	versionCmd := &cobra.Command{Use: "version"}
	if err := registry.Register("version", GroupSupport, versionCmd, "Show version"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	pipeline := registry.GetPipelineCommands()
	if len(pipeline) != 1 {
		t.Fatalf("Expected 1 pipeline command, got %d", len(pipeline))
	}
	if pipeline[0].Name != "scan" {
		t.Errorf("Expected 'scan', got '%s'", pipeline[0].Name)
	}
}

// TestRegistry_GetAllCommands tests retrieval of the full command map
func TestRegistry_GetAllCommands(t *testing.T) {
	registry := newTestRegistry()

	names := []string{"scan", "clash", "version"}
	groups := []CommandGroup{GroupPipeline, GroupPipeline, GroupSupport}
	for i, name := range names {
		cmd := &cobra.Command{Use: name}
		if err := registry.Register(name, groups[i], cmd, name); err != nil {
			t.Fatalf("registration of %s failed: %v", name, err)
		}
	}

	all := registry.GetAllCommands()
	if len(all) != 3 {
		t.Errorf("Expected 3 commands, got %d", len(all))
	}
	for _, name := range names {
		if _, ok := all[name]; !ok {
			t.Errorf("Expected %s in GetAllCommands result", name)
		}
	}

	// The returned map is a copy
	delete(all, "scan")
	if _, exists := registry.GetCommand("scan"); !exists {
		t.Error("Mutating GetAllCommands result changed the registry")
	}
}

// TestRegistry_ListGroups tests group counting
func TestRegistry_ListGroups(t *testing.T) {
	registry := newTestRegistry()

	if counts := registry.ListGroups(); len(counts) != 0 {
		t.Errorf("Expected no groups in empty registry, got %v", counts)
	}

	for _, name := range []string{"scan", "clash", "merge"} {
		cmd := &cobra.Command{Use: name}
		if err := registry.Register(name, GroupPipeline, cmd, name); err != nil {
			t.Fatalf("registration of %s failed: %v", name, err)
		}
	}
	versionCmd := &cobra.Command{Use: "version"}
	if err := registry.Register("version", GroupSupport, versionCmd, "version"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	counts := registry.ListGroups()
	if counts[GroupPipeline] != 3 {
		t.Errorf("Expected 3 pipeline commands, got %d", counts[GroupPipeline])
	}
	if counts[GroupSupport] != 1 {
		t.Errorf("Expected 1 support command, got %d", counts[GroupSupport])
	}
}

// TestGlobalRegistry tests the package-level registry and RegisterCommand
func TestGlobalRegistry(t *testing.T) {
	if GetRegistry() != globalRegistry {
		t.Error("Expected GetRegistry to return the global instance")
	}

	name := "test-global-registration"
	cmd := &cobra.Command{Use: name}
	if err := RegisterCommand(name, GroupSupport, cmd, "global test"); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}

	reg, exists := GetRegistry().GetCommand(name)
	if !exists {
		t.Fatal("Expected command registered through RegisterCommand to exist")
	}
	if reg.Group != GroupSupport {
		t.Errorf("Expected support group, got '%s'", reg.Group)
	}
}

// TestCommandGroups verifies the group constants
func TestCommandGroups(t *testing.T) {
	if GroupSupport != "support" {
		t.Errorf("Expected GroupSupport to be 'support', got '%s'", GroupSupport)
	}
	if GroupPipeline != "pipeline" {
		t.Errorf("Expected GroupPipeline to be 'pipeline', got '%s'", GroupPipeline)
	}
}
