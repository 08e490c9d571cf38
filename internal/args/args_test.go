package args

import (
	"slices"
	"strings"
	"testing"

	"github.com/ansrun/ansrun/internal/envvars"
)

func TestAddAndList(t *testing.T) {
	b := New()
	b.Add("ansible-playbook", "site.yml").Add("-f", "5")

	want := []string{"ansible-playbook", "site.yml", "-f", "5"}
	if !slices.Equal(b.List(), want) {
		t.Errorf("expected %v, got %v", want, b.List())
	}
	if b.Len() != 4 {
		t.Errorf("expected 4 tokens, got %d", b.Len())
	}
}

func TestMaskedTokensNeverRendered(t *testing.T) {
	b := New()
	b.Add("sshpass")
	b.AddMasked("-ps3cr3t")
	b.Add("ansible")

	if strings.Contains(b.String(), "s3cr3t") {
		t.Errorf("masked rendering leaked the secret: %q", b.String())
	}
	masked := b.MaskedList()
	if masked[1] != Mask {
		t.Errorf("expected placeholder %q, got %q", Mask, masked[1])
	}

	// The real vector still carries the value for the launcher.
	if b.List()[1] != "-ps3cr3t" {
		t.Errorf("expected real value in List, got %q", b.List()[1])
	}
}

func TestAddTokenized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		env  envvars.Vars
		want []string
	}{
		{
			name: "plain whitespace split",
			raw:  "--check --diff",
			want: []string{"--check", "--diff"},
		},
		{
			name: "env expansion",
			raw:  "--check $EXTRA",
			env:  envvars.Vars{"EXTRA": "foo"},
			want: []string{"--check", "foo"},
		},
		{
			name: "unset reference survives as a literal token",
			raw:  "--check $EXTRA",
			want: []string{"--check", "$EXTRA"},
		},
		{
			name: "quoting keeps spaces",
			raw:  `-e "msg=hello world"`,
			want: []string{"-e", "msg=hello world"},
		},
		{
			name: "reference inside single quotes is expanded",
			raw:  `-e 'version=$EXTRA'`,
			env:  envvars.Vars{"EXTRA": "foo"},
			want: []string{"-e", "version=foo"},
		},
		{
			name: "blank appends nothing",
			raw:  "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			env := tt.env
			if env == nil {
				env = envvars.New()
			}
			if err := b.AddTokenized(tt.raw, env); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !slices.Equal(b.List(), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, b.List())
			}
		})
	}
}

func TestAddTokenizedBadQuoting(t *testing.T) {
	b := New()
	if err := b.AddTokenized(`--msg "unterminated`, envvars.New()); err == nil {
		t.Error("expected error for unterminated quote")
	}
}
