package project

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/layout"
	"github.com/neutron-wm/neutron/internal/testutil"
)

const shopProject = `
network:
  vpn: Norway
sublime_project:
  "%Project%": .
  Vendor:
    path: ../vendor
    exclude: [node_modules, .cache]
i3_workspace:
  Editor: true
  Shell:
    terminal: true
    path: .
`

func TestLoad(t *testing.T) {
	root := t.TempDir()
	dir := testutil.WriteProject(t, root, "acme", "shop", shopProject)

	p, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if p.File != filepath.Join(dir, FileName) {
		t.Errorf("File = %q, want %q", p.File, filepath.Join(dir, FileName))
	}
	if p.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", p.Dir(), dir)
	}
	if p.Namespace() != "shop" {
		t.Errorf("Namespace() = %q, want %q", p.Namespace(), "shop")
	}

	if p.Network == nil || p.Network.VPN != "Norway" {
		t.Errorf("Network = %+v, want VPN Norway", p.Network)
	}

	wantFolders := []Folder{
		{Name: "shop", Path: dir},
		{Name: "Vendor", Path: filepath.Join(root, "acme", "vendor"), Exclude: []string{"node_modules", ".cache"}},
	}
	if diff := cmp.Diff(wantFolders, p.Editor); diff != "" {
		t.Errorf("Editor mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Editor", "Shell"}, p.Panes.Labels()); diff != "" {
		t.Errorf("pane labels mismatch (-want +got):\n%s", diff)
	}
	if p.Panes[1].Item.Kind != layout.KindTerminal {
		t.Errorf("Shell kind = %s, want terminal", p.Panes[1].Item.Kind)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, errors.ErrProjectNotFound) {
		t.Errorf("Load() error = %v, want ErrProjectNotFound", err)
	}
}

func TestParse_Sections(t *testing.T) {
	file := "/home/me/Sites/acme/shop/" + FileName

	tests := []struct {
		name        string
		src         string
		wantNetwork *Network
		wantEditor  bool
		wantPanes   bool
	}{
		{"empty file", "", nil, false, false},
		{"null network registers", "network:", &Network{}, false, false},
		{"vpn false uses default", "network: {vpn: false}", &Network{}, false, false},
		{"vpn name", "network: {vpn: Sweden}", &Network{VPN: "Sweden"}, false, false},
		{"null editor is skipped", "sublime_project: ~", nil, false, false},
		{"null workspace is skipped", "i3_workspace: null", nil, false, false},
		{"workspace only", "i3_workspace: {Notes: x}", nil, false, true},
		{"editor only", "sublime_project: {code: .}", nil, true, false},
		{"unknown keys ignored", "other: 1\nnetwork: {}", &Network{}, false, false},
		{"aliased network", "x-vpn: &vpn {vpn: Norway}\nnetwork: *vpn", &Network{VPN: "Norway"}, false, false},
		{"merged network", "x-vpn: &vpn {vpn: Norway}\nnetwork: {<<: *vpn}", &Network{VPN: "Norway"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.src), file)
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantNetwork, p.Network); diff != "" {
				t.Errorf("Network mismatch (-want +got):\n%s", diff)
			}
			if (p.Editor != nil) != tt.wantEditor {
				t.Errorf("Editor registered = %v, want %v", p.Editor != nil, tt.wantEditor)
			}
			if (p.Panes != nil) != tt.wantPanes {
				t.Errorf("Panes registered = %v, want %v", p.Panes != nil, tt.wantPanes)
			}
		})
	}
}

func TestParse_AnchoredPanes(t *testing.T) {
	src := `
x-term: &term
  terminal: true
  path: .
i3_workspace:
  Shell: *term
  Tail:
    <<: *term
    command: tail -f log
`
	p, err := Parse([]byte(src), "/p/acme/shop/"+FileName)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	tail := layout.Terminal(".")
	tail.Command = "tail -f log"
	want := layout.PaneSpec{
		{Label: "Shell", Item: layout.Terminal(".")},
		{Label: "Tail", Item: tail},
	}
	if diff := cmp.Diff(want, p.Panes); diff != "" {
		t.Errorf("Panes mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	file := "/p/acme/shop/" + FileName

	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", "a: [unclosed"},
		{"not a mapping", "- one\n- two"},
		{"network not a mapping", "network: yes"},
		{"editor not a mapping", "sublime_project: [a]"},
		{"folder without path", "sublime_project: {code: {exclude: [x]}}"},
		{"empty workspace", "i3_workspace: {}"},
		{"bad pane", "i3_workspace: {Shell: {terminal: true}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src), file); !errors.Is(err, errors.ErrMalformedSpec) {
				t.Errorf("Parse() error = %v, want ErrMalformedSpec", err)
			}
		})
	}
}
