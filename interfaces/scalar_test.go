package interfaces_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luominghao/cgroupspy/interfaces"
)

func Test_StrFile_PassesText_Through_BothDirections(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"freezer.state": "THAWED"})
	str := interfaces.Must(interfaces.NewStrFile("freezer.state"))

	got, err := str.Read(owner)
	require.NoError(t, err)
	assert.Equal(t, "THAWED", got)

	state := "FROZEN"
	require.NoError(t, str.Write(owner, &state))
	assert.Equal(t, "FROZEN", owner.props["freezer.state"])
}

func Test_StrFile_SkipsWrite_When_ValueNil(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"freezer.state": "THAWED"})
	str := interfaces.Must(interfaces.NewStrFile("freezer.state"))

	require.NoError(t, str.Write(owner, nil))
	assert.Zero(t, owner.sets, "nil value is a no-op, not a write")
	assert.Equal(t, "THAWED", owner.props["freezer.state"])
}

func Test_StrFile_NilWrite_StillFails_When_Readonly(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	str := interfaces.Must(interfaces.NewStrFile("freezer.state", interfaces.ReadOnly()))

	err := str.Write(owner, nil)
	require.ErrorIs(t, err, interfaces.ErrReadOnly)
	assert.Zero(t, owner.sets)
}

func Test_FlagFile_Decodes_Integers_To_Booleans(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "zero is false", raw: "0", want: false},
		{name: "one is true", raw: "1", want: true},
		{name: "any nonzero is true", raw: "3", want: true},
		{name: "trailing newline ignored", raw: "1\n", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			owner := newFakeOwner(map[string]string{"notify_on_release": tc.raw})
			flag := interfaces.Must(interfaces.NewFlagFile("notify_on_release"))

			got, err := flag.Read(owner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_FlagFile_RoundTrips_Booleans(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	flag := interfaces.Must(interfaces.NewFlagFile("cgroup.clone_children"))

	for _, v := range []bool{true, false} {
		require.NoError(t, flag.Write(owner, v))

		got, err := flag.Read(owner)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	require.NoError(t, flag.Write(owner, false))
	assert.Equal(t, "0", owner.props["cgroup.clone_children"])
}

func Test_FlagFile_Fails_When_ContentsNotNumeric(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"notify_on_release": "yes"})
	flag := interfaces.Must(interfaces.NewFlagFile("notify_on_release"))

	_, err := flag.Read(owner)
	require.ErrorIs(t, err, interfaces.ErrDecode)
}

func Test_IntegerFile_Treats_MinusOne_As_Absent(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"cpu.cfs_quota_us": "-1"})
	num := interfaces.Must(interfaces.NewIntegerFile("cpu.cfs_quota_us"))

	got, err := num.Read(owner)
	require.NoError(t, err)
	assert.Nil(t, got, "-1 decodes as absent")

	require.NoError(t, num.Write(owner, nil))
	assert.Equal(t, "-1", owner.props["cpu.cfs_quota_us"], "absent encodes as -1")
}

func Test_IntegerFile_RoundTrips_Values(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(nil)
	num := interfaces.Must(interfaces.NewIntegerFile("memory.limit_in_bytes"))

	for _, v := range []int64{0, 1024, 9223372036854771712, -2} {
		require.NoError(t, num.Write(owner, &v))

		got, err := num.Read(owner)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, v, *got)
	}
}

func Test_IntegerFile_Fails_When_ContentsNotNumeric(t *testing.T) {
	t.Parallel()

	owner := newFakeOwner(map[string]string{"pids.max": "max"})
	num := interfaces.Must(interfaces.NewIntegerFile("pids.max"))

	_, err := num.Read(owner)
	require.ErrorIs(t, err, interfaces.ErrDecode)
}
