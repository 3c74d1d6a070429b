package nodes

import (
	"fmt"
	"io/fs"
	"strings"

	intfs "github.com/luominghao/cgroupspy/internal/fs"
)

// Tree is a cgroup hierarchy rooted at a mount point.
type Tree struct {
	root *Node
	fsys intfs.FS
}

// NewTree opens the hierarchy at mountRoot. A nil fsys selects the real
// filesystem. The mount root must exist.
func NewTree(mountRoot string, fsys intfs.FS) (*Tree, error) {
	if fsys == nil {
		fsys = intfs.NewReal()
	}

	ok, err := fsys.Exists(mountRoot)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("cgroup mount %s: %w", mountRoot, fs.ErrNotExist)
	}

	return &Tree{root: New(mountRoot, "", fsys), fsys: fsys}, nil
}

// Root returns the hierarchy's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Get returns the node at relPath, which must exist.
func (t *Tree) Get(relPath string) (*Node, error) {
	node := New(t.root.root, relPath, t.fsys)

	ok, err := t.fsys.Exists(node.FullPath())
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("cgroup %s: %w", strings.Trim(relPath, "/"), fs.ErrNotExist)
	}

	return node, nil
}

// Walk visits every node depth-first in name order, the root included.
// Returning an error from fn stops the walk.
func (t *Tree) Walk(fn func(*Node) error) error {
	return walk(t.root, fn)
}

func walk(n *Node, fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}

	children, err := n.Children()
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := walk(child, fn); err != nil {
			return err
		}
	}

	return nil
}
