package project

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/neutron-wm/neutron/internal/config"
)

// discoveryPattern matches project files two directories below a root.
var discoveryPattern = glob.MustCompile("*/*/"+FileName, '/')

// Listing is a project found by Discover.
type Listing struct {
	Namespace string
	// Dir is the absolute project directory.
	Dir string
	// Parent is the directory holding Dir, with the home directory shown as ~.
	Parent string
}

// Entry returns the picker entry for l.
func (l Listing) Entry() string { return Entry(l.Namespace, l.Parent) }

// Discover finds every <root>/*/*/neutron.yml under roots, skipping
// project directories that contain a .neutronignore file and hidden
// directories. Symlinked directories are followed. Roots may start with ~.
// Missing roots are skipped. The result is sorted by entry.
func Discover(roots []string) ([]Listing, error) {
	home, _ := os.UserHomeDir()

	seen := make(map[string]bool)
	var listings []Listing
	for _, root := range roots {
		root = config.ExpandHome(root)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}

		files, err := candidates(root, "", 0)
		if err != nil {
			return nil, err
		}

		for _, rel := range files {
			if !discoveryPattern.Match(rel) {
				continue
			}

			dir := filepath.Dir(filepath.Join(root, filepath.FromSlash(rel)))
			if _, err := os.Stat(filepath.Join(dir, IgnoreFileName)); err == nil {
				continue
			}
			abs, err := filepath.Abs(dir)
			if err != nil || seen[abs] {
				continue
			}
			seen[abs] = true

			listings = append(listings, Listing{
				Namespace: filepath.Base(abs),
				Dir:       abs,
				Parent:    tildePath(filepath.Dir(abs), home),
			})
		}
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Entry() < listings[j].Entry()
	})
	return listings, nil
}

// maxProjectDepth is how many directory levels below a root are searched.
const maxProjectDepth = 2

// candidates returns the slash-separated paths, relative to root, of the
// files under root/rel, descending at most maxProjectDepth levels below
// root. Entries are resolved with os.Stat, so symlinks to directories are
// walked like directories. Hidden directories and broken links are skipped.
// Only a failure to read root itself is returned.
func candidates(root, rel string, depth int) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if depth == 0 {
			return nil, err
		}
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		name := path.Join(rel, entry.Name())
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			continue
		}

		if !info.IsDir() {
			files = append(files, name)
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") || depth >= maxProjectDepth {
			continue
		}
		nested, _ := candidates(root, name, depth+1)
		files = append(files, nested...)
	}
	return files, nil
}

func tildePath(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
