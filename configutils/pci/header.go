// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

// Header is a decoded configuration space header. It is either a
// GeneralHeader or a BridgeHeader, selected by the header type layout alone.
type Header interface {
	Common() CommonHeader
	Layout() HeaderType

	header()
}

// CommonHeader holds the fields at 0x00-0x0f which share their layout across
// all header types.
type CommonHeader struct {
	VendorID      uint16
	DeviceID      uint16
	Command       Command
	Status        Status
	Revision      uint8
	Interface     uint8
	Subclass      uint8
	Class         Class
	CacheLineSize uint8
	LatencyTimer  uint8
	HeaderType    HeaderType
	BIST          uint8
}

func (c CommonHeader) Common() CommonHeader {
	return c
}

func (c CommonHeader) Layout() HeaderType {
	return c.HeaderType.Layout()
}

func (c CommonHeader) IsMultifunction() bool {
	return c.HeaderType.IsMultifunction()
}

// GeneralHeader is the type 0 header of endpoints.
type GeneralHeader struct {
	CommonHeader

	BARs                [6]BaseAddress
	CardBusCISPointer   uint32
	SubsystemVendorID   uint16
	SubsystemID         uint16
	ExpansionROM        uint32
	CapabilitiesPointer uint8
	InterruptLine       uint8
	InterruptPin        uint8
	MinGrant            uint8
	MaxLatency          uint8
}

func (GeneralHeader) header() {}

// BridgeHeader is the type 1 header of PCI-to-PCI bridges.
type BridgeHeader struct {
	CommonHeader

	BARs                  [2]BaseAddress
	PrimaryBus            uint8
	SecondaryBus          uint8
	SubordinateBus        uint8
	SecondaryLatencyTimer uint8
	IOBase                uint8
	IOLimit               uint8
	SecondaryStatus       Status
	MemoryBase            uint16
	MemoryLimit           uint16
	PrefetchBase          uint16
	PrefetchLimit         uint16
	PrefetchBaseUpper     uint32
	PrefetchLimitUpper    uint32
	IOBaseUpper           uint16
	IOLimitUpper          uint16
	CapabilitiesPointer   uint8
	ExpansionROM          uint32
	InterruptLine         uint8
	InterruptPin          uint8
	BridgeControl         uint16
}

func (BridgeHeader) header() {}

const (
	bridgeDecodeWide  = 0x1
	bridgeDecodeMask  = 0xf
	bridgeIOGranule   = 0xfff
	bridgeMemGranule  = 0xfffff
	bridgeMemAddrMask = 0xfff0
)

// IOWindow returns the I/O range forwarded to the secondary bus. The upper
// 16 bits only apply when the bridge reports 32 bit I/O decoding.
func (b BridgeHeader) IOWindow() Window {
	base := uint64(b.IOBase&0xf0) << 8
	limit := uint64(b.IOLimit&0xf0)<<8 | bridgeIOGranule
	if b.IOBase&bridgeDecodeMask == bridgeDecodeWide {
		base |= uint64(b.IOBaseUpper) << 16
		limit |= uint64(b.IOLimitUpper) << 16
	}
	return Window{Base: base, Limit: limit}
}

func (b BridgeHeader) MemoryWindow() Window {
	return Window{
		Base:  uint64(b.MemoryBase&bridgeMemAddrMask) << 16,
		Limit: uint64(b.MemoryLimit&bridgeMemAddrMask)<<16 | bridgeMemGranule,
	}
}

// PrefetchableWindow returns the prefetchable memory range, using the upper
// 32 bits when the bridge reports 64 bit decoding.
func (b BridgeHeader) PrefetchableWindow() Window {
	base := uint64(b.PrefetchBase&bridgeMemAddrMask) << 16
	limit := uint64(b.PrefetchLimit&bridgeMemAddrMask)<<16 | bridgeMemGranule
	if b.PrefetchBase&bridgeDecodeMask == bridgeDecodeWide {
		base |= uint64(b.PrefetchBaseUpper) << 32
		limit |= uint64(b.PrefetchLimitUpper) << 32
	}
	return Window{Base: base, Limit: limit}
}
