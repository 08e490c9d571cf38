package installation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeInstallation(t *testing.T, name string) Installation {
	t.Helper()
	home := t.TempDir()
	bin := filepath.Join(home, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range []string{"ansible", "ansible-playbook"} {
		if err := os.WriteFile(filepath.Join(bin, cmd), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return Installation{Name: name, Home: home}
}

func TestExecutablePath(t *testing.T) {
	inst := fakeInstallation(t, "test")

	path, err := inst.ExecutablePath(CommandPlaybook)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if filepath.Base(path) != "ansible-playbook" {
		t.Errorf("expected ansible-playbook, got %q", path)
	}
	if !strings.HasPrefix(path, inst.Home) {
		t.Errorf("expected a path under the installation home, got %q", path)
	}
}

func TestExecutablePathMissing(t *testing.T) {
	inst := Installation{Name: "empty", Home: t.TempDir()}
	if _, err := inst.ExecutablePath(CommandPlaybook); err == nil {
		t.Error("expected an error for a missing executable")
	}
}

func TestExecutablePathNotExecutable(t *testing.T) {
	home := t.TempDir()
	bin := filepath.Join(home, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, "ansible-playbook"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	inst := Installation{Name: "noexec", Home: home}
	if _, err := inst.ExecutablePath(CommandPlaybook); err == nil {
		t.Error("expected an error for a non-executable file")
	}
}

func TestRegistryFind(t *testing.T) {
	first := fakeInstallation(t, "system")
	second := fakeInstallation(t, "venv")
	reg := NewRegistry([]Installation{first, second})

	t.Run("empty name selects the first installation", func(t *testing.T) {
		inst, err := reg.Find("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if inst.Name != "system" {
			t.Errorf("expected system, got %q", inst.Name)
		}
	})

	t.Run("match by name", func(t *testing.T) {
		inst, err := reg.Find("venv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if inst.Name != "venv" {
			t.Errorf("expected venv, got %q", inst.Name)
		}
	})

	t.Run("close miss suggests the nearest name", func(t *testing.T) {
		_, err := reg.Find("vnev")
		if err == nil || !strings.Contains(err.Error(), `"venv"`) {
			t.Errorf("expected a suggestion for venv, got %v", err)
		}
	})

	t.Run("distant miss has no suggestion", func(t *testing.T) {
		_, err := reg.Find("completely-different")
		if err == nil {
			t.Fatal("expected an error")
		}
		if strings.Contains(err.Error(), "Did you mean") {
			t.Errorf("expected no suggestion, got %v", err)
		}
	})
}

func TestRegistryFindEmpty(t *testing.T) {
	if _, err := NewRegistry(nil).Find("anything"); err == nil {
		t.Error("expected an error when nothing is registered")
	}
}
