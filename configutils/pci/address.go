// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAddress = errors.New("invalid pci address")

const (
	maxSlot     = 31
	maxFunction = 7
)

type Vendor uint32

var (
	VendorIntel  Vendor = 0x8086
	VendorNvidia Vendor = 0x10de
)

// Address identifies a single function on the bus.
type Address struct {
	Domain   uint
	Bus      uint
	Slot     uint
	Function uint
}

func (p Address) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%1x", p.Domain, p.Bus, p.Slot, p.Function)
}

// ParseAddress parses the sysfs notation dddd:bb:ss.f. The domain may be omitted.
func ParseAddress(s string) (Address, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		parts = append([]string{"0000"}, parts...)
	case 3:
	default:
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	slot, function, ok := strings.Cut(parts[2], ".")
	if !ok {
		return Address{}, fmt.Errorf("%w: %q: missing function", ErrInvalidAddress, s)
	}

	fields := []struct {
		text string
		bits int
		max  uint64
	}{
		{parts[0], 16, 0xffff},
		{parts[1], 8, 0xff},
		{slot, 8, maxSlot},
		{function, 8, maxFunction},
	}

	var values [4]uint
	for i, f := range fields {
		v, err := strconv.ParseUint(f.text, 16, f.bits)
		if err != nil {
			return Address{}, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, s, err)
		}
		if v > f.max {
			return Address{}, fmt.Errorf("%w: %q: %q out of range", ErrInvalidAddress, s, f.text)
		}
		values[i] = uint(v)
	}

	return Address{
		Domain:   values[0],
		Bus:      values[1],
		Slot:     values[2],
		Function: values[3],
	}, nil
}

// Reader lists the functions present on the host.
type Reader interface {
	Read() ([]Address, error)
}
