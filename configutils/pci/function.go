// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// Function is a handle on one bus function. It holds nothing but its address
// and the accessor, every call reads the hardware again.
type Function struct {
	log      logr.Logger
	accessor Accessor
	addr     Address
}

func NewFunction(log logr.Logger, accessor Accessor, addr Address) *Function {
	return &Function{
		log:      log.WithValues("pciAddress", addr),
		accessor: accessor,
		addr:     addr,
	}
}

func (f *Function) Address() Address {
	return f.addr
}

// ReadDword reads the dword at an aligned offset.
func (f *Function) ReadDword(offset Offset) (uint32, error) {
	if !offset.Aligned() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrMisalignedOffset, uint8(offset))
	}

	v, err := f.accessor.ReadDword(f.addr, offset)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s at 0x%02x: %w", f.addr, uint8(offset), err)
	}
	f.log.V(3).Info("Read config dword", "offset", uint8(offset), "value", v)
	return v, nil
}

// Probe reports whether a function responds at the address.
func (f *Function) Probe() (bool, error) {
	v, err := f.ReadDword(regVendorID)
	if err != nil {
		return false, err
	}

	present := v != AbsentSentinel
	f.log.V(1).Info("Probed function", "present", present)
	return present, nil
}

// Header decodes the configuration header. It returns a nil Header and no
// error when the function is absent, and ErrUnsupportedHeaderType for layouts
// other than general and PCI-to-PCI.
func (f *Function) Header() (Header, error) {
	h, err := decodeHeader(f.ReadDword)
	switch {
	case errors.Is(err, ErrUnsupportedHeaderType):
		f.log.V(1).Info("Skipping function with unsupported header", "error", err.Error())
		return nil, fmt.Errorf("failed to decode header of %s: %w", f.addr, err)
	case err != nil:
		return nil, err
	case h == nil:
		f.log.V(1).Info("Function not present")
		return nil, nil
	}

	common := h.Common()
	f.log.V(2).Info("Decoded header",
		"layout", common.HeaderType,
		"vendor", fmt.Sprintf("0x%04x", common.VendorID),
		"device", fmt.Sprintf("0x%04x", common.DeviceID),
		"class", common.Class,
	)
	return h, nil
}

// ReadRange returns length bytes starting at start. Whole dwords covering the
// window are read and trimmed to it.
func (f *Function) ReadRange(start Offset, length uint8) ([]byte, error) {
	end := int(start) + int(length)
	if end > ConfigSpaceSize {
		return nil, fmt.Errorf("%w: 0x%02x+%d exceeds %d bytes", ErrOutOfRange, uint8(start), length, ConfigSpaceSize)
	}
	if length == 0 {
		return []byte{}, nil
	}

	first := int(start) &^ 0x3
	last := (end + 0x3) &^ 0x3

	buf := make([]byte, 0, last-first)
	for o := first; o < last; o += 4 {
		v, err := f.ReadDword(Offset(o))
		if err != nil {
			return nil, err
		}
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}

	return buf[int(start)-first : end-first], nil
}
