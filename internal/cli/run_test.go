package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luominghao/cgroupspy/internal/cli"
	"github.com/luominghao/cgroupspy/internal/fs"
)

const mountRoot = "/sys/fs/cgroup"

func newCLIHierarchy(t *testing.T) *fs.Mem {
	t.Helper()

	m := fs.NewMem()
	m.AddDir(mountRoot)
	m.AddFile(mountRoot+"/cpu.shares", "1024\n")
	m.AddFile(mountRoot+"/tasks", "1\n")
	m.AddDir(mountRoot + "/system")
	m.AddFile(mountRoot+"/system/cpu.shares", "512\n")
	m.AddDir(mountRoot + "/system/web")
	m.AddDir(mountRoot + "/user")

	return m
}

// runCLI invokes the tool as main would, against the given filesystem.
func runCLI(t *testing.T, m *fs.Mem, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer

	code = cli.Run(&out, &errOut, append([]string{"cgctl"}, args...), map[string]string{}, m)

	return out.String(), errOut.String(), code
}

func Test_Run_Prints_Usage_Without_Arguments(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, newCLIHierarchy(t))
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: cgctl")
	assert.Contains(t, stdout, "snapshot")
}

func Test_Run_Fails_On_Unknown_Command(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t, newCLIHierarchy(t), "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func Test_Get_Prints_Stripped_Contents(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, newCLIHierarchy(t), "get", "/", "cpu.shares")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1024\n", stdout)

	stdout, _, code = runCLI(t, newCLIHierarchy(t), "get", "system", "cpu.shares")
	assert.Equal(t, 0, code)
	assert.Equal(t, "512\n", stdout)
}

func Test_Get_Fails_When_Cgroup_Missing(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t, newCLIHierarchy(t), "get", "nope", "cpu.shares")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error:")
}

func Test_Set_Writes_ControlFile(t *testing.T) {
	t.Parallel()

	m := newCLIHierarchy(t)

	_, _, code := runCLI(t, m, "set", "system", "cpu.shares", "256")
	assert.Equal(t, 0, code)

	contents, ok := m.Contents(mountRoot + "/system/cpu.shares")
	require.True(t, ok)
	assert.Equal(t, "256", contents)
}

func Test_Set_Probes_Writability_First(t *testing.T) {
	t.Parallel()

	m := newCLIHierarchy(t)

	_, stderr, code := runCLI(t, m, "set", "system", "memory.limit_in_bytes", "100")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not writable")

	_, _, code = runCLI(t, m, "set", "--force", "system", "memory.limit_in_bytes", "100")
	assert.Equal(t, 0, code)

	contents, ok := m.Contents(mountRoot + "/system/memory.limit_in_bytes")
	require.True(t, ok)
	assert.Equal(t, "100", contents)
}

func Test_Ls_Indents_By_Nesting_Level(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, newCLIHierarchy(t), "ls")
	assert.Equal(t, 0, code)
	assert.Equal(t, "/\n  system\n    web\n  user\n", stdout)
}

func Test_Ls_Honors_Depth_And_Start_Cgroup(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, newCLIHierarchy(t), "ls", "--depth", "1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "/\n  system\n  user\n", stdout)

	stdout, _, code = runCLI(t, newCLIHierarchy(t), "ls", "system")
	assert.Equal(t, 0, code)
	assert.Equal(t, "/system\n  web\n", stdout)
}

func Test_Snapshot_Dumps_Readable_Files_As_JSON(t *testing.T) {
	t.Parallel()

	m := newCLIHierarchy(t)
	m.AddDir("/out")

	stdout, _, code := runCLI(t, m, "snapshot", "-o", "/out/snap.json")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "/out/snap.json")

	raw, ok := m.Contents("/out/snap.json")
	require.True(t, ok)

	var entries []struct {
		Path  string            `json:"path"`
		Files map[string]string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))

	require.Len(t, entries, 4)
	assert.Equal(t, "/", entries[0].Path)
	assert.Equal(t, "1024", entries[0].Files["cpu.shares"])
	assert.Equal(t, "/system", entries[1].Path)
	assert.Equal(t, "512", entries[1].Files["cpu.shares"])
	assert.Equal(t, "/system/web", entries[2].Path)
	assert.Empty(t, entries[2].Files)
}

func Test_GlobalFlag_Root_Overrides_Config(t *testing.T) {
	t.Parallel()

	m := fs.NewMem()
	m.AddDir("/alt/root")
	m.AddFile("/alt/root/pids.max", "max\n")

	stdout, _, code := runCLI(t, m, "--root", "/alt/root", "get", "/", "pids.max")
	assert.Equal(t, 0, code)
	assert.Equal(t, "max\n", stdout)

	stdout, _, code = runCLI(t, m, "--root=/alt/root", "print-config")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"root": "/alt/root"`)
}

func Test_Command_Help_Flag_Prints_Details(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, newCLIHierarchy(t), "set", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: cgctl set")
	assert.Contains(t, stdout, "--force")
}

func Test_GlobalFlag_Requires_Argument(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t, newCLIHierarchy(t), "--root")
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stderr, "requires an argument"))
}
