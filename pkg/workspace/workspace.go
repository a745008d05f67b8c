package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitport/gitport/pkg/logger"
)

// Workspace is a disposable filesystem area scoped to one repository's
// migration. It owns an exclusive subdirectory under the run's base directory
// and is released unconditionally when the repository is done.
type Workspace struct {
	root string
}

// New allocates an exclusive, empty workspace for the named repository under
// baseDir. A leftover directory from an earlier run is removed first.
func New(baseDir, name string) (*Workspace, error) {
	root := filepath.Join(baseDir, name)
	if err := os.RemoveAll(root); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to clean workspace %s: %w", root, err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace %s: %w", root, err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// MirrorDir returns the directory holding the bare mirror clone.
func (w *Workspace) MirrorDir() string {
	return filepath.Join(w.root, "mirror.git")
}

// Release removes the workspace directory. Safe to call on every exit path.
func (w *Workspace) Release() {
	if err := os.RemoveAll(w.root); err != nil {
		logger.Warn("Failed to remove workspace", "dir", w.root, "error", err)
	}
}
