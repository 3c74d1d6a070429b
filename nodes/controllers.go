package nodes

import (
	"github.com/luominghao/cgroupspy/contenttypes"
	"github.com/luominghao/cgroupspy/interfaces"
)

// Accessor declarations, one per control file. Accessors are stateless, so
// a single declaration serves every node in every hierarchy.
var (
	tasksFile       = interfaces.Must(interfaces.NewMultiLineIntegerFile("tasks"))
	procsFile       = interfaces.Must(interfaces.NewMultiLineIntegerFile("cgroup.procs"))
	notifyFile      = interfaces.Must(interfaces.NewFlagFile("notify_on_release"))
	cloneFile       = interfaces.Must(interfaces.NewFlagFile("cgroup.clone_children"))
	cpuShares       = interfaces.Must(interfaces.NewIntegerFile("cpu.shares"))
	cpuCfsPeriod    = interfaces.Must(interfaces.NewIntegerFile("cpu.cfs_period_us"))
	cpuCfsQuota     = interfaces.Must(interfaces.NewIntegerFile("cpu.cfs_quota_us"))
	cpuStat         = interfaces.Must(interfaces.NewDictFile("cpu.stat", interfaces.ReadOnly()))
	acctUsage       = interfaces.Must(interfaces.NewIntegerFile("cpuacct.usage"))
	acctUsagePerCPU = interfaces.Must(interfaces.NewIntegerListFile("cpuacct.usage_percpu"))
	acctStat        = interfaces.Must(interfaces.NewDictFile("cpuacct.stat", interfaces.ReadOnly()))
	cpusetCpus      = interfaces.Must(interfaces.NewCommaDashSetFile("cpuset.cpus"))
	cpusetMems      = interfaces.Must(interfaces.NewCommaDashSetFile("cpuset.mems"))
	cpusetCPUExcl   = interfaces.Must(interfaces.NewFlagFile("cpuset.cpu_exclusive"))
	cpusetMemExcl   = interfaces.Must(interfaces.NewFlagFile("cpuset.mem_exclusive"))
	memLimit        = interfaces.Must(interfaces.NewIntegerFile("memory.limit_in_bytes"))
	memSoftLimit    = interfaces.Must(interfaces.NewIntegerFile("memory.soft_limit_in_bytes"))
	memUsage        = interfaces.Must(interfaces.NewIntegerFile("memory.usage_in_bytes", interfaces.ReadOnly()))
	memMaxUsage     = interfaces.Must(interfaces.NewIntegerFile("memory.max_usage_in_bytes"))
	memFailcnt      = interfaces.Must(interfaces.NewIntegerFile("memory.failcnt"))
	memSwappiness   = interfaces.Must(interfaces.NewIntegerFile("memory.swappiness"))
	memStat         = interfaces.Must(interfaces.NewDictFile("memory.stat", interfaces.ReadOnly()))
	memOOMControl   = interfaces.Must(interfaces.NewDictAndFlagFile("memory.oom_control"))
	memMoveCharge   = interfaces.Must(interfaces.NewBitFieldFile("memory.move_charge_at_immigrate"))
	devicesAllow    = interfaces.Must(interfaces.NewTypedFile("devices.allow", contenttypes.ParseDeviceAccess, interfaces.WriteOnly()))
	devicesDeny     = interfaces.Must(interfaces.NewTypedFile("devices.deny", contenttypes.ParseDeviceAccess, interfaces.WriteOnly()))
	devicesList     = interfaces.Must(interfaces.NewTypedFile("devices.list", contenttypes.ParseDeviceAccess, interfaces.ReadOnly()))
	blkioWeight     = interfaces.Must(interfaces.NewIntegerFile("blkio.weight"))
	blkioReadBps    = interfaces.Must(interfaces.NewTypedFile("blkio.throttle.read_bps_device", contenttypes.ParseDeviceThrottle))
	blkioWriteBps   = interfaces.Must(interfaces.NewTypedFile("blkio.throttle.write_bps_device", contenttypes.ParseDeviceThrottle))
	blkioReadIops   = interfaces.Must(interfaces.NewTypedFile("blkio.throttle.read_iops_device", contenttypes.ParseDeviceThrottle))
	blkioWriteIops  = interfaces.Must(interfaces.NewTypedFile("blkio.throttle.write_iops_device", contenttypes.ParseDeviceThrottle))
	blkioQueued     = interfaces.Must(interfaces.NewIntSplitValueFile("blkio.io_queued", 1))
	freezerState    = interfaces.Must(interfaces.NewStrFile("freezer.state"))
	freezerSelf     = interfaces.Must(interfaces.NewFlagFile("freezer.self_freezing", interfaces.ReadOnly()))
	netClsClassID   = interfaces.Must(interfaces.NewIntegerFile("net_cls.classid"))
	pidsCurrent     = interfaces.Must(interfaces.NewIntegerFile("pids.current", interfaces.ReadOnly()))
	pidsMax         = interfaces.Must(interfaces.NewStrFile("pids.max"))
	v2Controllers   = interfaces.Must(interfaces.NewListFile("cgroup.controllers"))
	v2Subtree       = interfaces.Must(interfaces.NewListFile("cgroup.subtree_control"))
	v2Freeze        = interfaces.Must(interfaces.NewFlagFile("cgroup.freeze"))
	v2Type          = interfaces.Must(interfaces.NewStrFile("cgroup.type"))
)

// Controller exposes the control files every v1 subsystem directory has.
type Controller struct {
	node *Node
}

// Controller returns the common-file view of the node.
func (n *Node) Controller() Controller { return Controller{node: n} }

// Tasks returns the thread ids attached to the group.
func (c Controller) Tasks() ([]int64, error) { return tasksFile.Read(c.node) }

// AttachTask moves one thread into the group.
func (c Controller) AttachTask(tid int64) error { return tasksFile.Write(c.node, &tid) }

// Procs returns the process ids attached to the group.
func (c Controller) Procs() ([]int64, error) { return procsFile.Read(c.node) }

// AttachProc moves one process (all its threads) into the group.
func (c Controller) AttachProc(pid int64) error { return procsFile.Write(c.node, &pid) }

func (c Controller) NotifyOnRelease() (bool, error) { return notifyFile.Read(c.node) }

func (c Controller) SetNotifyOnRelease(v bool) error { return notifyFile.Write(c.node, v) }

func (c Controller) CloneChildren() (bool, error) { return cloneFile.Read(c.node) }

func (c Controller) SetCloneChildren(v bool) error { return cloneFile.Write(c.node, v) }

// CPU is the cpu subsystem view.
type CPU struct {
	node *Node
}

func (n *Node) CPU() CPU { return CPU{node: n} }

func (c CPU) Shares() (*int64, error) { return cpuShares.Read(c.node) }

func (c CPU) SetShares(v int64) error { return cpuShares.Write(c.node, &v) }

func (c CPU) CfsPeriodUs() (*int64, error) { return cpuCfsPeriod.Read(c.node) }

func (c CPU) SetCfsPeriodUs(v int64) error { return cpuCfsPeriod.Write(c.node, &v) }

// CfsQuotaUs returns the group's quota, nil when unlimited (-1).
func (c CPU) CfsQuotaUs() (*int64, error) { return cpuCfsQuota.Read(c.node) }

// SetCfsQuotaUs sets the group's quota; nil removes the limit.
func (c CPU) SetCfsQuotaUs(v *int64) error { return cpuCfsQuota.Write(c.node, v) }

func (c CPU) Stat() (map[string]int64, error) { return cpuStat.Read(c.node) }

// CPUAcct is the cpuacct subsystem view.
type CPUAcct struct {
	node *Node
}

func (n *Node) CPUAcct() CPUAcct { return CPUAcct{node: n} }

func (c CPUAcct) Usage() (*int64, error) { return acctUsage.Read(c.node) }

// ResetUsage writes 0, which is how the kernel clears the counter.
func (c CPUAcct) ResetUsage() error {
	zero := int64(0)

	return acctUsage.Write(c.node, &zero)
}

func (c CPUAcct) UsagePerCPU() ([]int64, error) { return acctUsagePerCPU.Read(c.node) }

func (c CPUAcct) Stat() (map[string]int64, error) { return acctStat.Read(c.node) }

// Cpuset is the cpuset subsystem view.
type Cpuset struct {
	node *Node
}

func (n *Node) Cpuset() Cpuset { return Cpuset{node: n} }

func (c Cpuset) Cpus() (map[int64]struct{}, error) { return cpusetCpus.Read(c.node) }

func (c Cpuset) SetCpus(v map[int64]struct{}) error { return cpusetCpus.Write(c.node, v) }

func (c Cpuset) Mems() (map[int64]struct{}, error) { return cpusetMems.Read(c.node) }

func (c Cpuset) SetMems(v map[int64]struct{}) error { return cpusetMems.Write(c.node, v) }

func (c Cpuset) CPUExclusive() (bool, error) { return cpusetCPUExcl.Read(c.node) }

func (c Cpuset) SetCPUExclusive(v bool) error { return cpusetCPUExcl.Write(c.node, v) }

func (c Cpuset) MemExclusive() (bool, error) { return cpusetMemExcl.Read(c.node) }

func (c Cpuset) SetMemExclusive(v bool) error { return cpusetMemExcl.Write(c.node, v) }

// Memory is the memory subsystem view.
type Memory struct {
	node *Node
}

func (n *Node) Memory() Memory { return Memory{node: n} }

// LimitInBytes returns the hard limit, nil when unlimited.
func (m Memory) LimitInBytes() (*int64, error) { return memLimit.Read(m.node) }

// SetLimitInBytes sets the hard limit; nil removes it.
func (m Memory) SetLimitInBytes(v *int64) error { return memLimit.Write(m.node, v) }

func (m Memory) SoftLimitInBytes() (*int64, error) { return memSoftLimit.Read(m.node) }

func (m Memory) SetSoftLimitInBytes(v *int64) error { return memSoftLimit.Write(m.node, v) }

func (m Memory) UsageInBytes() (*int64, error) { return memUsage.Read(m.node) }

func (m Memory) MaxUsageInBytes() (*int64, error) { return memMaxUsage.Read(m.node) }

// ResetMaxUsage writes 0 to clear the high-water mark.
func (m Memory) ResetMaxUsage() error {
	zero := int64(0)

	return memMaxUsage.Write(m.node, &zero)
}

func (m Memory) Failcnt() (*int64, error) { return memFailcnt.Read(m.node) }

func (m Memory) Swappiness() (*int64, error) { return memSwappiness.Read(m.node) }

func (m Memory) SetSwappiness(v int64) error { return memSwappiness.Write(m.node, &v) }

func (m Memory) Stat() (map[string]int64, error) { return memStat.Read(m.node) }

// OOMControl returns the oom_control table (oom_kill_disable,
// under_oom, ...).
func (m Memory) OOMControl() (map[string]int64, error) { return memOOMControl.Read(m.node) }

// SetOOMKillDisable toggles the OOM killer for the group; the write side of
// memory.oom_control takes only this flag.
func (m Memory) SetOOMKillDisable(v bool) error { return memOOMControl.Write(m.node, v) }

// MoveChargeAtImmigrate returns the charge-migration bits, LSB first.
func (m Memory) MoveChargeAtImmigrate() ([]bool, error) { return memMoveCharge.Read(m.node) }

func (m Memory) SetMoveChargeAtImmigrate(bits []bool) error { return memMoveCharge.Write(m.node, bits) }

// Devices is the devices subsystem view.
type Devices struct {
	node *Node
}

func (n *Node) Devices() Devices { return Devices{node: n} }

// List returns the group's device whitelist.
func (d Devices) List() ([]contenttypes.DeviceAccess, error) { return devicesList.ReadAll(d.node) }

// Allow adds one entry to the whitelist.
func (d Devices) Allow(entry contenttypes.DeviceAccess) error { return devicesAllow.Write(d.node, entry) }

// Deny removes one entry from the whitelist.
func (d Devices) Deny(entry contenttypes.DeviceAccess) error { return devicesDeny.Write(d.node, entry) }

// Blkio is the blkio subsystem view.
type Blkio struct {
	node *Node
}

func (n *Node) Blkio() Blkio { return Blkio{node: n} }

func (b Blkio) Weight() (*int64, error) { return blkioWeight.Read(b.node) }

func (b Blkio) SetWeight(v int64) error { return blkioWeight.Write(b.node, &v) }

func (b Blkio) ThrottleReadBps() ([]contenttypes.DeviceThrottle, error) {
	return blkioReadBps.ReadAll(b.node)
}

func (b Blkio) SetThrottleReadBps(t contenttypes.DeviceThrottle) error {
	return blkioReadBps.Write(b.node, t)
}

func (b Blkio) ThrottleWriteBps() ([]contenttypes.DeviceThrottle, error) {
	return blkioWriteBps.ReadAll(b.node)
}

func (b Blkio) SetThrottleWriteBps(t contenttypes.DeviceThrottle) error {
	return blkioWriteBps.Write(b.node, t)
}

func (b Blkio) ThrottleReadIops() ([]contenttypes.DeviceThrottle, error) {
	return blkioReadIops.ReadAll(b.node)
}

func (b Blkio) SetThrottleReadIops(t contenttypes.DeviceThrottle) error {
	return blkioReadIops.Write(b.node, t)
}

func (b Blkio) ThrottleWriteIops() ([]contenttypes.DeviceThrottle, error) {
	return blkioWriteIops.ReadAll(b.node)
}

func (b Blkio) SetThrottleWriteIops(t contenttypes.DeviceThrottle) error {
	return blkioWriteIops.Write(b.node, t)
}

// QueuedTotal reads the trailing counter of blkio.io_queued. The position
// addresses the "Total N" line, so it is meaningful when the group has no
// per-device rows.
func (b Blkio) QueuedTotal() (int64, error) { return blkioQueued.Read(b.node) }

// Freezer is the freezer subsystem view.
type Freezer struct {
	node *Node
}

func (n *Node) Freezer() Freezer { return Freezer{node: n} }

// Freezer states accepted by the kernel.
const (
	Frozen = "FROZEN"
	Thawed = "THAWED"
)

func (f Freezer) State() (string, error) { return freezerState.Read(f.node) }

func (f Freezer) SetState(state string) error { return freezerState.Write(f.node, &state) }

func (f Freezer) SelfFreezing() (bool, error) { return freezerSelf.Read(f.node) }

// NetCls is the net_cls subsystem view.
type NetCls struct {
	node *Node
}

func (n *Node) NetCls() NetCls { return NetCls{node: n} }

func (c NetCls) ClassID() (*int64, error) { return netClsClassID.Read(c.node) }

func (c NetCls) SetClassID(v int64) error { return netClsClassID.Write(c.node, &v) }

// Pids is the pids subsystem view.
type Pids struct {
	node *Node
}

func (n *Node) Pids() Pids { return Pids{node: n} }

func (p Pids) Current() (*int64, error) { return pidsCurrent.Read(p.node) }

// Max returns the raw pids.max contents, a number or the literal "max".
func (p Pids) Max() (string, error) { return pidsMax.Read(p.node) }

func (p Pids) SetMax(v string) error { return pidsMax.Write(p.node, &v) }

// Unified is the cgroup v2 view of a node.
type Unified struct {
	node *Node
}

func (n *Node) Unified() Unified { return Unified{node: n} }

// Controllers returns the controllers available to the group.
func (u Unified) Controllers() ([]string, error) { return v2Controllers.Read(u.node) }

// SubtreeControl returns the controllers enabled for child groups.
func (u Unified) SubtreeControl() ([]string, error) { return v2Subtree.Read(u.node) }

func (u Unified) Frozen() (bool, error) { return v2Freeze.Read(u.node) }

func (u Unified) SetFrozen(v bool) error { return v2Freeze.Write(u.node, v) }

func (u Unified) Type() (string, error) { return v2Type.Read(u.node) }
