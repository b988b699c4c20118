// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import "fmt"

// HeaderType is the bit set found at offset 0x0e.
type HeaderType uint8

const (
	HeaderTypeGeneral       HeaderType = 0b0000_0000
	HeaderTypePCIToPCI      HeaderType = 0b0000_0001
	HeaderTypeCardBusBridge HeaderType = 0b0000_0010
	HeaderTypeMultifunction HeaderType = 0b0100_0000

	// HeaderTypeMask isolates the layout field from the multifunction bit.
	HeaderTypeMask HeaderType = 0b0000_0011
)

// Layout returns the header layout with every other bit cleared.
func (t HeaderType) Layout() HeaderType {
	return t & HeaderTypeMask
}

func (t HeaderType) IsMultifunction() bool {
	return t&HeaderTypeMultifunction != 0
}

func (t HeaderType) String() string {
	var name string
	switch t.Layout() {
	case HeaderTypeGeneral:
		name = "general"
	case HeaderTypePCIToPCI:
		name = "pci-to-pci"
	case HeaderTypeCardBusBridge:
		name = "cardbus-bridge"
	default:
		name = fmt.Sprintf("reserved(%d)", uint8(t.Layout()))
	}
	if t.IsMultifunction() {
		name += ",multifunction"
	}
	return name
}

// ClassifyHeaderType splits the raw header type byte into the layout selector
// and the multifunction flag.
func ClassifyHeaderType(b uint8) (HeaderType, bool) {
	t := HeaderType(b)
	return t.Layout(), t.IsMultifunction()
}
