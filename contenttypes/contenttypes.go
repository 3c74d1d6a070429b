// Package contenttypes defines the structured record types that appear as
// single lines inside cgroup control files.
//
// Each type parses one line of a control file and serializes back to the
// exact text the kernel accepts. The [ContentType] interface is closed: only
// types in this package satisfy it, which lets accessor code require "a
// cgroup record type" at compile time.
package contenttypes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ContentType is implemented by every record type in this package.
//
// The unexported method keeps the set of implementations closed.
type ContentType interface {
	fmt.Stringer
	contentType()
}

// Wildcard is the device number meaning "any major" or "any minor",
// written as '*' in device files.
const Wildcard int64 = -1

// ErrMalformed reports a line that does not match the record's format.
var ErrMalformed = errors.New("malformed content line")

// AccessMask holds the device permission bits from a devices cgroup entry.
type AccessMask uint8

// Permission bits in the order the kernel prints them.
const (
	AccessRead AccessMask = 1 << iota
	AccessWrite
	AccessMknod
)

// String renders the mask in the kernel's "rwm" notation.
// An empty mask renders as an empty string.
func (m AccessMask) String() string {
	var b strings.Builder

	if m&AccessRead != 0 {
		b.WriteByte('r')
	}

	if m&AccessWrite != 0 {
		b.WriteByte('w')
	}

	if m&AccessMknod != 0 {
		b.WriteByte('m')
	}

	return b.String()
}

// ParseAccessMask parses the "rwm" permission notation.
func ParseAccessMask(s string) (AccessMask, error) {
	var m AccessMask

	for _, r := range s {
		switch r {
		case 'r':
			m |= AccessRead
		case 'w':
			m |= AccessWrite
		case 'm':
			m |= AccessMknod
		default:
			return 0, fmt.Errorf("%w: unknown permission %q", ErrMalformed, string(r))
		}
	}

	return m, nil
}

// DeviceAccess is one entry of a devices cgroup file, for example
// "b 8:1 rwm" in devices.list, devices.allow or devices.deny.
type DeviceAccess struct {
	DevType string // "a" (all), "b" (block) or "c" (character)
	Major   int64  // Wildcard for '*'
	Minor   int64  // Wildcard for '*'
	Access  AccessMask
}

// ParseDeviceAccess parses a single devices cgroup line such as "c 1:3 rwm".
func ParseDeviceAccess(line string) (DeviceAccess, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return DeviceAccess{}, fmt.Errorf("%w: device access needs type, numbers and permissions: %q", ErrMalformed, line)
	}

	devType := fields[0]
	if devType != "a" && devType != "b" && devType != "c" {
		return DeviceAccess{}, fmt.Errorf("%w: unknown device type %q", ErrMalformed, devType)
	}

	major, minor, err := parseDeviceNumbers(fields[1])
	if err != nil {
		return DeviceAccess{}, err
	}

	access, err := ParseAccessMask(fields[2])
	if err != nil {
		return DeviceAccess{}, err
	}

	return DeviceAccess{DevType: devType, Major: major, Minor: minor, Access: access}, nil
}

// String renders the entry in the kernel's "type major:minor perms" form.
func (d DeviceAccess) String() string {
	return fmt.Sprintf("%s %s:%s %s", d.DevType, deviceNumber(d.Major), deviceNumber(d.Minor), d.Access)
}

func (DeviceAccess) contentType() {}

// DeviceThrottle is one entry of a blkio throttle file, for example
// "8:1 200" in blkio.throttle.read_bps_device.
type DeviceThrottle struct {
	Major int64 // Wildcard for '*'
	Minor int64 // Wildcard for '*'
	Limit int64
}

// ParseDeviceThrottle parses a single throttle line such as "8:1 200".
func ParseDeviceThrottle(line string) (DeviceThrottle, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return DeviceThrottle{}, fmt.Errorf("%w: throttle entry needs device numbers and a limit: %q", ErrMalformed, line)
	}

	major, minor, err := parseDeviceNumbers(fields[0])
	if err != nil {
		return DeviceThrottle{}, err
	}

	limit, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return DeviceThrottle{}, fmt.Errorf("%w: limit %q is not an integer", ErrMalformed, fields[1])
	}

	return DeviceThrottle{Major: major, Minor: minor, Limit: limit}, nil
}

// String renders the entry in the kernel's "major:minor limit" form.
func (d DeviceThrottle) String() string {
	return fmt.Sprintf("%s:%s %d", deviceNumber(d.Major), deviceNumber(d.Minor), d.Limit)
}

func (DeviceThrottle) contentType() {}

func parseDeviceNumbers(s string) (major, minor int64, err error) {
	majorRaw, minorRaw, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: device numbers %q need a major:minor pair", ErrMalformed, s)
	}

	major, err = parseDeviceNumber(majorRaw)
	if err != nil {
		return 0, 0, err
	}

	minor, err = parseDeviceNumber(minorRaw)
	if err != nil {
		return 0, 0, err
	}

	return major, minor, nil
}

func parseDeviceNumber(s string) (int64, error) {
	if s == "*" {
		return Wildcard, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: device number %q is not a number or '*'", ErrMalformed, s)
	}

	return n, nil
}

func deviceNumber(n int64) string {
	if n == Wildcard {
		return "*"
	}

	return strconv.FormatInt(n, 10)
}
