package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luominghao/cgroupspy/internal/fs"
	"github.com/luominghao/cgroupspy/nodes"
)

const mountRoot = "/sys/fs/cgroup"

func newMemHierarchy(t *testing.T) *fs.Mem {
	t.Helper()

	m := fs.NewMem()
	m.AddDir(mountRoot)
	m.AddFile(mountRoot+"/cpu.shares", "1024\n")
	m.AddFile(mountRoot+"/tasks", "1\n2\n")
	m.AddDir(mountRoot + "/system")
	m.AddFile(mountRoot+"/system/cpu.shares", "512\n")
	m.AddDir(mountRoot + "/system/web")
	m.AddDir(mountRoot + "/user")

	return m
}

func Test_Node_GetProperty_Strips_Whitespace(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	n := nodes.New(mountRoot, "", m)

	got, err := n.GetProperty("cpu.shares")
	require.NoError(t, err)
	assert.Equal(t, "1024", got)
}

func Test_Node_SetProperty_Writes_InPlace(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	n := nodes.New(mountRoot, "system", m)

	require.NoError(t, n.SetProperty("cpu.shares", "256"))

	contents, ok := m.Contents(mountRoot + "/system/cpu.shares")
	require.True(t, ok)
	assert.Equal(t, "256", contents)
}

func Test_Node_GetProperty_Propagates_IOErrors(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	n := nodes.New(mountRoot, "", m)

	_, err := n.GetProperty("memory.limit_in_bytes")
	require.Error(t, err)
}

func Test_Node_Paths(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)

	root := nodes.New(mountRoot, "", m)
	assert.Equal(t, "cgroup", root.Name())
	assert.Equal(t, "", root.Path())
	assert.Equal(t, mountRoot, root.FullPath())
	assert.Nil(t, root.Parent())

	web := nodes.New(mountRoot, "/system/web/", m)
	assert.Equal(t, "web", web.Name())
	assert.Equal(t, "system/web", web.Path())
	assert.Equal(t, mountRoot+"/system/web", web.FullPath())
	assert.Equal(t, "system", web.Parent().Name())
	assert.Equal(t, "", web.Parent().Parent().Path())
}

func Test_Node_Children_Lists_Subgroups_Only(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	root := nodes.New(mountRoot, "", m)

	children, err := root.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "system", children[0].Name())
	assert.Equal(t, "user", children[1].Name())
}

func Test_Node_ListFiles_Lists_ControlFiles_Only(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	root := nodes.New(mountRoot, "", m)

	files, err := root.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu.shares", "tasks"}, files)
}

func Test_Node_Child_Does_Not_Check_Existence(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	root := nodes.New(mountRoot, "", m)

	ghost := root.Child("ghost")
	assert.Equal(t, "ghost", ghost.Path())

	_, err := ghost.Children()
	require.Error(t, err)
}

func Test_Node_Writable_Reflects_Filesystem(t *testing.T) {
	t.Parallel()

	m := newMemHierarchy(t)
	root := nodes.New(mountRoot, "", m)

	ok, err := root.Writable("cpu.shares")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = root.Writable("memory.limit_in_bytes")
	require.NoError(t, err)
	assert.False(t, ok)
}
