// Package inventory provides the inventory variants an invocation can target
// and their contribution to the runner's argument vector.
package inventory

import (
	"fmt"
	"os"
	"strings"

	"github.com/ansrun/ansrun/internal/args"
	"github.com/ansrun/ansrun/internal/envvars"
)

// Handler contributes an inventory selection to an argument vector and tears
// down any resources it created. An invocation calls AddArgs at most once
// while assembling the vector and TearDown exactly once afterwards.
type Handler interface {
	AddArgs(b *args.Builder, env envvars.Vars) error
	TearDown() error
}

// Path targets an existing inventory file or directory on disk.
// Environment references in the path are expanded against the build snapshot.
type Path struct {
	Path string
}

func (p *Path) AddArgs(b *args.Builder, env envvars.Vars) error {
	b.Add("-i", env.Expand(p.Path))
	return nil
}

func (p *Path) TearDown() error {
	return nil
}

// Content carries inline inventory content. AddArgs materializes the content
// (env-expanded) into a temporary file which TearDown removes.
type Content struct {
	Content string

	file string
}

func (c *Content) AddArgs(b *args.Builder, env envvars.Vars) error {
	if c.file == "" {
		f, err := os.CreateTemp("", "inventory*.ini")
		if err != nil {
			return fmt.Errorf("creating inventory file: %w", err)
		}
		if _, err := f.WriteString(env.Expand(c.Content)); err != nil {
			f.Close()
			os.Remove(f.Name())
			return fmt.Errorf("writing inventory file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return fmt.Errorf("writing inventory file: %w", err)
		}
		c.file = f.Name()
	}
	b.Add("-i", c.file)
	return nil
}

func (c *Content) TearDown() error {
	if c.file == "" {
		return nil
	}
	file := c.file
	c.file = ""
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing inventory file: %w", err)
	}
	return nil
}

// HostList targets an explicit list of hosts without an inventory file.
type HostList struct {
	Hosts []string
}

func (h *HostList) AddArgs(b *args.Builder, env envvars.Vars) error {
	hosts := make([]string, 0, len(h.Hosts))
	for _, host := range h.Hosts {
		host = strings.TrimSpace(env.Expand(host))
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	if len(hosts) == 0 {
		return fmt.Errorf("host list contains no hosts")
	}
	// The trailing comma makes the runner treat a single host as a list
	// rather than an inventory file path.
	b.Add("-i", strings.Join(hosts, ",")+",")
	return nil
}

func (h *HostList) TearDown() error {
	return nil
}
