// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrUnsupportedHeaderType = errors.New("unsupported header type")
	ErrOutOfRange            = errors.New("out of config space range")
)

// Register offsets of the common region.
const (
	regVendorID      Offset = 0x00
	regDeviceID      Offset = 0x02
	regCommand       Offset = 0x04
	regStatus        Offset = 0x06
	regRevision      Offset = 0x08
	regInterface     Offset = 0x09
	regSubclass      Offset = 0x0a
	regClass         Offset = 0x0b
	regCacheLineSize Offset = 0x0c
	regLatencyTimer  Offset = 0x0d
	regHeaderType    Offset = 0x0e
	regBIST          Offset = 0x0f
	regBAR0          Offset = 0x10

	// first register past the common region
	regTail = regBAR0
)

// Type 0 registers.
const (
	regCardBusCIS        Offset = 0x28
	regSubsystemVendorID Offset = 0x2c
	regSubsystemID       Offset = 0x2e
	regExpansionROM      Offset = 0x30
	regCapabilities      Offset = 0x34
	regInterruptLine     Offset = 0x3c
	regInterruptPin      Offset = 0x3d
	regMinGrant          Offset = 0x3e
	regMaxLatency        Offset = 0x3f
)

// Type 1 registers.
const (
	regPrimaryBus          Offset = 0x18
	regSecondaryBus        Offset = 0x19
	regSubordinateBus      Offset = 0x1a
	regSecondaryLatency    Offset = 0x1b
	regIOBase              Offset = 0x1c
	regIOLimit             Offset = 0x1d
	regSecondaryStatus     Offset = 0x1e
	regMemoryBase          Offset = 0x20
	regMemoryLimit         Offset = 0x22
	regPrefetchBase        Offset = 0x24
	regPrefetchLimit       Offset = 0x26
	regPrefetchBaseUpper   Offset = 0x28
	regPrefetchLimitUpper  Offset = 0x2c
	regIOBaseUpper         Offset = 0x30
	regIOLimitUpper        Offset = 0x32
	regBridgeCapabilities  Offset = 0x34
	regBridgeExpansionROM  Offset = 0x38
	regBridgeInterruptLine Offset = 0x3c
	regBridgeInterruptPin  Offset = 0x3d
	regBridgeControl       Offset = 0x3e
)

// headerWords is the 64 byte header as read, one dword per entry. Sub-dword
// fields are extracted by shifting within the owning dword.
type headerWords [HeaderSize / 4]uint32

func (w *headerWords) u8(o Offset) uint8 {
	return uint8(w[o>>2] >> (8 * (o & 0x3)))
}

func (w *headerWords) u16(o Offset) uint16 {
	return uint16(w[o>>2] >> (8 * (o & 0x2)))
}

func (w *headerWords) u32(o Offset) uint32 {
	return w[o>>2]
}

func (w *headerWords) bars(n int) []BaseAddress {
	bars := make([]BaseAddress, n)
	for i := range bars {
		bars[i] = BaseAddress(w.u32(regBAR0 + Offset(4*i)))
	}
	return bars
}

// dwordReader returns the dword at an aligned offset.
type dwordReader func(offset Offset) (uint32, error)

// decodeHeader reads the header through read in increasing offset order,
// each dword once. It returns nil without error when the function is absent.
// The tail is only read once the layout is known to be supported.
func decodeHeader(read dwordReader) (Header, error) {
	var w headerWords

	first, err := read(regVendorID)
	if err != nil {
		return nil, err
	}
	if first == AbsentSentinel {
		return nil, nil
	}
	w[0] = first

	if err := readWords(read, &w, regCommand, int(regTail)); err != nil {
		return nil, err
	}

	layout, _ := ClassifyHeaderType(w.u8(regHeaderType))
	switch layout {
	case HeaderTypeGeneral, HeaderTypePCIToPCI:
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedHeaderType, w.u8(regHeaderType))
	}

	if err := readWords(read, &w, regTail, HeaderSize); err != nil {
		return nil, err
	}

	if layout == HeaderTypePCIToPCI {
		return decodeBridge(&w), nil
	}
	return decodeGeneral(&w), nil
}

func readWords(read dwordReader, w *headerWords, from Offset, to int) error {
	for o := int(from); o < to; o += 4 {
		v, err := read(Offset(o))
		if err != nil {
			return err
		}
		w[o>>2] = v
	}
	return nil
}

func decodeCommon(w *headerWords) CommonHeader {
	return CommonHeader{
		VendorID:      w.u16(regVendorID),
		DeviceID:      w.u16(regDeviceID),
		Command:       Command(w.u16(regCommand)),
		Status:        Status(w.u16(regStatus)),
		Revision:      w.u8(regRevision),
		Interface:     w.u8(regInterface),
		Subclass:      w.u8(regSubclass),
		Class:         ResolveClass(w.u8(regClass), w.u8(regSubclass), w.u8(regInterface)),
		CacheLineSize: w.u8(regCacheLineSize),
		LatencyTimer:  w.u8(regLatencyTimer),
		HeaderType:    HeaderType(w.u8(regHeaderType)),
		BIST:          w.u8(regBIST),
	}
}

func decodeGeneral(w *headerWords) GeneralHeader {
	h := GeneralHeader{
		CommonHeader:        decodeCommon(w),
		CardBusCISPointer:   w.u32(regCardBusCIS),
		SubsystemVendorID:   w.u16(regSubsystemVendorID),
		SubsystemID:         w.u16(regSubsystemID),
		ExpansionROM:        w.u32(regExpansionROM),
		CapabilitiesPointer: w.u8(regCapabilities),
		InterruptLine:       w.u8(regInterruptLine),
		InterruptPin:        w.u8(regInterruptPin),
		MinGrant:            w.u8(regMinGrant),
		MaxLatency:          w.u8(regMaxLatency),
	}
	copy(h.BARs[:], w.bars(len(h.BARs)))
	return h
}

func decodeBridge(w *headerWords) BridgeHeader {
	h := BridgeHeader{
		CommonHeader:          decodeCommon(w),
		PrimaryBus:            w.u8(regPrimaryBus),
		SecondaryBus:          w.u8(regSecondaryBus),
		SubordinateBus:        w.u8(regSubordinateBus),
		SecondaryLatencyTimer: w.u8(regSecondaryLatency),
		IOBase:                w.u8(regIOBase),
		IOLimit:               w.u8(regIOLimit),
		SecondaryStatus:       Status(w.u16(regSecondaryStatus)),
		MemoryBase:            w.u16(regMemoryBase),
		MemoryLimit:           w.u16(regMemoryLimit),
		PrefetchBase:          w.u16(regPrefetchBase),
		PrefetchLimit:         w.u16(regPrefetchLimit),
		PrefetchBaseUpper:     w.u32(regPrefetchBaseUpper),
		PrefetchLimitUpper:    w.u32(regPrefetchLimitUpper),
		IOBaseUpper:           w.u16(regIOBaseUpper),
		IOLimitUpper:          w.u16(regIOLimitUpper),
		CapabilitiesPointer:   w.u8(regBridgeCapabilities),
		ExpansionROM:          w.u32(regBridgeExpansionROM),
		InterruptLine:         w.u8(regBridgeInterruptLine),
		InterruptPin:          w.u8(regBridgeInterruptPin),
		BridgeControl:         w.u16(regBridgeControl),
	}
	copy(h.BARs[:], w.bars(len(h.BARs)))
	return h
}

// ParseHeader decodes a header from a byte image of configuration space,
// starting at offset 0. An image reading as absent yields a nil Header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: need %d header bytes, got %d", ErrOutOfRange, HeaderSize, len(b))
	}
	return decodeHeader(func(o Offset) (uint32, error) {
		i := int(o)
		return binary.LittleEndian.Uint32(b[i : i+4]), nil
	})
}
