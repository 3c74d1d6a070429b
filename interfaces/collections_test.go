package interfaces_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luominghao/cgroupspy/interfaces"
)

func Test_ListFile_Splits_On_Whitespace(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cgroup.controllers": "a b c"})
	list := interfaces.Must(interfaces.NewListFile("cgroup.controllers"))

	got, err := list.Read(owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func Test_ListFile_ReturnsEmpty_When_FileBlank(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cgroup.subtree_control": ""})
	list := interfaces.Must(interfaces.NewListFile("cgroup.subtree_control"))

	got, err := list.Read(owner)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func Test_IntegerListFile_Parses_Tokens(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{
		"cpuacct.usage_percpu": "253237230463342 317756630269369 247294096796305",
	})
	list := interfaces.Must(interfaces.NewIntegerListFile("cpuacct.usage_percpu"))

	got, err := list.Read(owner)
	require.NoError(t, err)
	assert.Equal(t, []int64{253237230463342, 317756630269369, 247294096796305}, got)

	simple := newFakeOwner(map[string]string{"cpuacct.usage_percpu": "1 2 3"})

	got, err = list.Read(simple)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func Test_IntegerListFile_Fails_When_TokenNotNumeric(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cpuacct.usage_percpu": "1 x 3"})
	list := interfaces.Must(interfaces.NewIntegerListFile("cpuacct.usage_percpu"))

	_, err := list.Read(owner)
	require.ErrorIs(t, err, interfaces.ErrDecode)
}

func Test_IntegerListFile_RejectsWrites_ByDefault(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	list := interfaces.Must(interfaces.NewIntegerListFile("cpuacct.usage_percpu"))

	v := int64(7)
	err := list.Write(owner, &v)
	require.ErrorIs(t, err, interfaces.ErrReadOnly)
	assert.Zero(t, owner.sets)
}

func Test_MultiLineIntegerFile_Reads_OneIntegerPerLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "plain lines", raw: "300\n301\n487", want: []int64{300, 301, 487}},
		{name: "blank lines skipped", raw: "300\n\n301\n", want: []int64{300, 301}},
		{name: "empty file", raw: "", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			owner := newFakeOwner(map[string]string{"cgroup.procs": tc.raw})
			procs := interfaces.Must(interfaces.NewMultiLineIntegerFile("cgroup.procs"))

			got, err := procs.Read(owner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_MultiLineIntegerFile_Writes_SingleScalar(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	procs := interfaces.Must(interfaces.NewMultiLineIntegerFile("cgroup.procs"))

	pid := int64(4242)
	require.NoError(t, procs.Write(owner, &pid))
	assert.Equal(t, "4242", owner.props["cgroup.procs"], "write side takes one value, not the whole list")

	require.NoError(t, procs.Write(owner, nil))
	assert.Equal(t, "-1", owner.props["cgroup.procs"])
}

func Test_DictFile_Decodes_KeyValueLines(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cpu.stat": "a 1\nb 2"})
	dict := interfaces.Must(interfaces.NewDictFile("cpu.stat"))

	got, err := dict.Read(owner)
	require.NoError(t, err)

	want := map[string]int64{"a": 1, "b": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dict mismatch (-want +got):\n%s", diff)
	}
}

func Test_DictFile_LastOccurrenceWins_When_KeyRepeats(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cpu.stat": "a 1\na 2"})
	dict := interfaces.Must(interfaces.NewDictFile("cpu.stat"))

	got, err := dict.Read(owner)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 2}, got)
}

func Test_DictFile_ReturnsEmpty_When_FileBlank(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cpu.stat": "\n"})
	dict := interfaces.Must(interfaces.NewDictFile("cpu.stat"))

	got, err := dict.Read(owner)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func Test_DictFile_Fails_When_LineMalformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{name: "one token", raw: "orphan"},
		{name: "three tokens", raw: "a 1 extra"},
		{name: "non numeric value", raw: "a one"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			owner := newFakeOwner(map[string]string{"cpu.stat": tc.raw})
			dict := interfaces.Must(interfaces.NewDictFile("cpu.stat"))

			_, err := dict.Read(owner)
			require.ErrorIs(t, err, interfaces.ErrDecode)
		})
	}
}

// The write side of this format carries keys only; the mapping's values are
// discarded. This mirrors the file format, odd as it is.
func Test_DictFile_Writes_SortedKeysOnly(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	dict := interfaces.Must(interfaces.NewDictFile("cpu.stat"))

	require.NoError(t, dict.Write(owner, map[string]int64{"b": 2, "a": 1, "c": 30}))
	assert.Equal(t, "a,b,c", owner.props["cpu.stat"])
}

func Test_DictAndFlagFile_ReadsTable_WritesFlag(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{
		"memory.oom_control": "oom_kill_disable 0\nunder_oom 0",
	})
	oom := interfaces.Must(interfaces.NewDictAndFlagFile("memory.oom_control"))

	got, err := oom.Read(owner)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"oom_kill_disable": 0, "under_oom": 0}, got)

	require.NoError(t, oom.Write(owner, true))
	assert.Equal(t, "1", owner.props["memory.oom_control"])

	require.NoError(t, oom.Write(owner, false))
	assert.Equal(t, "0", owner.props["memory.oom_control"])
}
