// Package nodes models the cgroup hierarchy: a [Node] per directory under
// the mount root, raw property I/O, and typed controller views over the
// accessors in package interfaces.
package nodes

import (
	"path/filepath"
	"strings"

	"github.com/luominghao/cgroupspy/internal/fs"
)

// DefaultMountRoot is where the kernel usually mounts the cgroup hierarchy.
const DefaultMountRoot = "/sys/fs/cgroup"

// controlFilePerm is the permission passed on control file writes. The
// pseudo-filesystem ignores it; it only matters for [fs.Mem] in tests.
const controlFilePerm = 0o644

// Node is one directory in a cgroup hierarchy. It satisfies
// [interfaces.Owner]: accessors resolve their filenames against the node's
// directory through its filesystem.
//
// A Node holds no file state of its own; every property access re-reads or
// re-writes the underlying control file.
type Node struct {
	root string
	path string
	fsys fs.FS
}

// New returns a node for relPath under the mount root. A nil fsys selects
// the real filesystem.
func New(root, relPath string, fsys fs.FS) *Node {
	if fsys == nil {
		fsys = fs.NewReal()
	}

	return &Node{
		root: filepath.Clean(root),
		path: strings.Trim(relPath, "/"),
		fsys: fsys,
	}
}

// Name returns the node's directory name; the root node returns the base
// of the mount root.
func (n *Node) Name() string {
	if n.path == "" {
		return filepath.Base(n.root)
	}

	return filepath.Base(n.path)
}

// Path returns the node's path relative to the mount root, "" for the root.
func (n *Node) Path() string {
	return n.path
}

// FullPath returns the node's absolute directory path.
func (n *Node) FullPath() string {
	return filepath.Join(n.root, n.path)
}

// GetProperty reads the named control file and returns its contents with
// surrounding whitespace stripped, which is how the kernel's trailing
// newline disappears before decoding.
func (n *Node) GetProperty(filename string) (string, error) {
	data, err := n.fsys.ReadFile(filepath.Join(n.FullPath(), filename))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// SetProperty replaces the named control file's contents in place.
func (n *Node) SetProperty(filename, value string) error {
	return n.fsys.WriteFile(filepath.Join(n.FullPath(), filename), []byte(value), controlFilePerm)
}

// Writable reports whether the process may write the named control file.
func (n *Node) Writable(filename string) (bool, error) {
	return n.fsys.Writable(filepath.Join(n.FullPath(), filename))
}

// Child returns the node for a direct subdirectory without checking that it
// exists.
func (n *Node) Child(name string) *Node {
	return &Node{
		root: n.root,
		path: strings.Trim(filepath.Join(n.path, name), "/"),
		fsys: n.fsys,
	}
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	if n.path == "" {
		return nil
	}

	parent := filepath.Dir(n.path)
	if parent == "." {
		parent = ""
	}

	return &Node{root: n.root, path: parent, fsys: n.fsys}
}

// ListFiles lists the names of the node's control files in name order.
func (n *Node) ListFiles() ([]string, error) {
	entries, err := n.fsys.ReadDir(n.FullPath())
	if err != nil {
		return nil, err
	}

	var out []string

	for _, entry := range entries {
		if !entry.IsDir() {
			out = append(out, entry.Name())
		}
	}

	return out, nil
}

// Children lists the node's direct subgroups in name order.
func (n *Node) Children() ([]*Node, error) {
	entries, err := n.fsys.ReadDir(n.FullPath())
	if err != nil {
		return nil, err
	}

	var out []*Node

	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, n.Child(entry.Name()))
		}
	}

	return out, nil
}
