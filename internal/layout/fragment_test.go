package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFragments_Leaf(t *testing.T) {
	root := NewContainer(Tabbed, 1, NewLeaf("Custom notes", 2))

	got, err := Fragments(root)
	if err != nil {
		t.Fatalf("Fragments() failed: %v", err)
	}

	want := `{
    "border": "pixel",
    "current_border_width": 2,
    "floating": "auto_off",
    "percent": 1,
    "type": "con",
    "swallows": [],
    "geometry": {
        "height": 0,
        "width": 0,
        "x": 0,
        "y": 0
    },
    "name": "Custom notes"
}

`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestFragments_ContainerPerTopLevelNode(t *testing.T) {
	root := NewContainer(Tabbed, 1,
		NewContainer(SplitH, 0.5,
			NewLeaf("  Shell ", 1, Swallow{Kind: "instance", Pattern: "^ProjectShell$"}),
		),
		NewLeaf("Custom x", 1),
	)

	got, err := Fragments(root)
	if err != nil {
		t.Fatalf("Fragments() failed: %v", err)
	}

	want := `{
    "border": "pixel",
    "floating": "auto_off",
    "layout": "splith",
    "percent": 0.5,
    "type": "con",
    "nodes": [
        {
            "border": "pixel",
            "current_border_width": 1,
            "floating": "auto_off",
            "percent": 1,
            "type": "con",
            "swallows": [
                {
                    "instance": "^ProjectShell$"
                }
            ],
            "geometry": {
                "height": 0,
                "width": 0,
                "x": 0,
                "y": 0
            },
            "name": "  Shell "
        }
    ]
}

{
    "border": "pixel",
    "current_border_width": 1,
    "floating": "auto_off",
    "percent": 1,
    "type": "con",
    "swallows": [],
    "geometry": {
        "height": 0,
        "width": 0,
        "x": 0,
        "y": 0
    },
    "name": "Custom x"
}

`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestFragments_PatternsAreNotEscaped(t *testing.T) {
	root := NewContainer(Tabbed, 1, NewLeaf("x", 1, Swallow{Kind: "title", Pattern: "<dev> & co"}))

	got, err := Fragments(root)
	if err != nil {
		t.Fatalf("Fragments() failed: %v", err)
	}
	if !strings.Contains(string(got), `"title": "<dev> & co"`) {
		t.Errorf("pattern was escaped:\n%s", got)
	}
}

func TestSaveFragments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	root := NewContainer(Tabbed, 1, NewLeaf("Custom a", 1))

	if err := os.WriteFile(path, []byte("stale content that is much longer than the fragment"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveFragments(path, root); err != nil {
		t.Fatalf("SaveFragments() failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Fragments(root)
	if string(got) != string(want) {
		t.Errorf("file content = %q, want %q", got, want)
	}
}
