// Package envvars holds the environment variable snapshot a build step runs
// under and provides macro expansion for user-supplied option strings.
package envvars

import (
	"fmt"
	"sort"
	"strings"
)

// Vars is a snapshot of environment variables visible to one build step.
// It is not shared between invocations; mutate freely during configuration.
type Vars map[string]string

// New returns an empty snapshot.
func New() Vars {
	return Vars{}
}

// FromEnviron builds a snapshot from "KEY=value" pairs as returned by
// os.Environ. Malformed entries without a '=' are ignored.
func FromEnviron(environ []string) Vars {
	v := make(Vars, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		v[key] = value
	}
	return v
}

// Get returns the value for key, or the empty string if unset.
func (v Vars) Get(key string) string {
	return v[key]
}

// Set stores a value in the snapshot.
func (v Vars) Set(key, value string) {
	v[key] = value
}

// Environ renders the snapshot as sorted "KEY=value" pairs suitable for a
// child process environment.
func (v Vars) Environ() []string {
	environ := make([]string, 0, len(v))
	for key, value := range v {
		environ = append(environ, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(environ)
	return environ
}

// Expand replaces $NAME and ${NAME} references in s with values from the
// snapshot. References to unset variables are left untouched so the runner
// (or the shell that eventually sees them) can still resolve them.
func (v Vars) Expand(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' || i+1 >= len(s) {
			out.WriteByte(c)
			continue
		}

		if s[i+1] == '$' {
			// "$$" escapes a literal dollar sign.
			out.WriteByte('$')
			i++
			continue
		}

		name, braced, width := parseRef(s[i+1:])
		if name == "" {
			out.WriteByte(c)
			continue
		}

		if value, ok := v[name]; ok {
			out.WriteString(value)
		} else if braced {
			out.WriteString("${" + name + "}")
		} else {
			out.WriteString("$" + name)
		}
		i += width
	}
	return out.String()
}

// parseRef reads a variable reference starting just after a '$'. It returns
// the variable name, whether the reference was brace-delimited, and how many
// bytes the reference consumed.
func parseRef(s string) (name string, braced bool, width int) {
	if s == "" {
		return "", false, 0
	}

	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", false, 0
		}
		name = s[1:end]
		if !validName(name) {
			return "", false, 0
		}
		return name, true, end + 1
	}

	end := 0
	for end < len(s) && isNameByte(s[end], end == 0) {
		end++
	}
	if end == 0 {
		return "", false, 0
	}
	return s[:end], false, end
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i], i == 0) {
			return false
		}
	}
	return true
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_':
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
