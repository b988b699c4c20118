// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import "fmt"

type Command uint16

const (
	CommandIOEnable Command = 1 << iota
	CommandMemoryEnable
	CommandBusMaster
	CommandSpecialCycles
	CommandWriteInvalidate
	CommandVGAPaletteSnoop
	CommandParityErrorResponse
	_
	CommandSERR
	CommandFastBackToBack
	CommandINTxDisable
)

func (c Command) Has(bits Command) bool {
	return c&bits == bits
}

type Status uint16

const (
	StatusInterrupt           Status = 1 << 3
	StatusCapabilitiesList    Status = 1 << 4
	Status66MHz               Status = 1 << 5
	StatusFastBackToBack      Status = 1 << 7
	StatusMasterParityError   Status = 1 << 8
	StatusSignaledTargetAbort Status = 1 << 11
	StatusReceivedTargetAbort Status = 1 << 12
	StatusReceivedMasterAbort Status = 1 << 13
	StatusSignaledSystemError Status = 1 << 14
	StatusDetectedParityError Status = 1 << 15

	statusDevselMask  Status = 0x3 << 9
	statusDevselShift        = 9
)

func (s Status) Has(bits Status) bool {
	return s&bits == bits
}

// DevselTiming returns the 2 bit DEVSEL# timing: 0 fast, 1 medium, 2 slow.
func (s Status) DevselTiming() uint8 {
	return uint8((s & statusDevselMask) >> statusDevselShift)
}

// BaseAddress is the raw value of a base address register.
type BaseAddress uint32

const (
	barIOSpace      BaseAddress = 1 << 0
	barTypeMask     BaseAddress = 0x3 << 1
	barType64       BaseAddress = 0x2 << 1
	barPrefetchable BaseAddress = 1 << 3
)

func (b BaseAddress) IsIO() bool {
	return b&barIOSpace != 0
}

func (b BaseAddress) IsMemory() bool {
	return !b.IsIO()
}

// Is64Bit reports whether the register holds the low half of a 64 bit memory
// address. The following register then holds the upper half.
func (b BaseAddress) Is64Bit() bool {
	return b.IsMemory() && b&barTypeMask == barType64
}

func (b BaseAddress) Prefetchable() bool {
	return b.IsMemory() && b&barPrefetchable != 0
}

func (b BaseAddress) Addr() uint32 {
	if b.IsIO() {
		return uint32(b &^ 0x3)
	}
	return uint32(b &^ 0xf)
}

func (b BaseAddress) String() string {
	if b == 0 {
		return "{}"
	}
	if b.IsIO() {
		return fmt.Sprintf("{i/o: 0x%08x}", b.Addr())
	}

	loc := "32-bit "
	if b.Is64Bit() {
		loc = "64-bit "
	}
	if b.Prefetchable() {
		loc += "prefetchable "
	}
	return fmt.Sprintf("{mem: %s0x%08x}", loc, b.Addr())
}

// Window is an address range forwarded by a bridge. A bridge disables a
// window by programming a base above its limit.
type Window struct {
	Base  uint64
	Limit uint64
}

func (w Window) Enabled() bool {
	return w.Base <= w.Limit
}

func (w Window) String() string {
	if !w.Enabled() {
		return "disabled"
	}
	return fmt.Sprintf("0x%x-0x%x", w.Base, w.Limit)
}
