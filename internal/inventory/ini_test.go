package inventory

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGroups(t *testing.T) {
	path := writeInventory(t, `
loose1

[web]
web2 ansible_host=10.0.0.2
web1

[db]
db1

[web:vars]
http_port=8080

[all:children]
web
db
`)

	groups, err := Groups(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	if !slices.Equal(names, []string{"db", "ungrouped", "web"}) {
		t.Fatalf("expected sorted group names without vars/children sections, got %v", names)
	}

	for _, g := range groups {
		switch g.Name {
		case "web":
			if !slices.Equal(g.Hosts, []string{"web1", "web2"}) {
				t.Errorf("expected sorted web hosts without inline vars, got %v", g.Hosts)
			}
		case "db":
			if !slices.Equal(g.Hosts, []string{"db1"}) {
				t.Errorf("expected db hosts, got %v", g.Hosts)
			}
		case "ungrouped":
			if !slices.Equal(g.Hosts, []string{"loose1"}) {
				t.Errorf("expected ungrouped hosts, got %v", g.Hosts)
			}
		}
	}
}

func TestGroupsMissingFile(t *testing.T) {
	if _, err := Groups(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Error("expected an error for a missing inventory file")
	}
}
