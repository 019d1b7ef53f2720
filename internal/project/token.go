package project

import (
	"path/filepath"
	"strings"

	"github.com/neutron-wm/neutron/internal/config"
)

// Separator joins a namespace and its parent directory in picker entries.
const Separator = "→"

// QuitEntry is the picker entry that quits the active session.
const QuitEntry = "quit active project"

// IsQuit reports whether token asks to quit the active session.
func IsQuit(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	return t == "quit" || t == QuitEntry
}

// IsList reports whether token asks for the project picker.
func IsList(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), "list")
}

// Entry formats the picker entry for a project directory.
func Entry(namespace, parent string) string {
	return namespace + " " + Separator + " " + parent
}

// ResolveToken turns a CLI or picker token into a project directory. A
// picker entry "<namespace> → <parent>" becomes <parent>/<namespace> with a
// leading ~ expanded; anything else is returned unchanged.
func ResolveToken(token string) string {
	namespace, parent, ok := strings.Cut(token, Separator)
	if !ok {
		return token
	}
	return filepath.Join(config.ExpandHome(strings.TrimSpace(parent)), strings.TrimSpace(namespace))
}

// SpecPath returns the absolute path of the project file for token.
func SpecPath(token string) (string, error) {
	return filepath.Abs(filepath.Join(ResolveToken(token), FileName))
}
