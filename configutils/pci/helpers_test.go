// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci_test

import (
	"encoding/binary"
	"sync"

	"github.com/ironcore-dev/pci-utils/configutils/pci"
)

type image [pci.ConfigSpaceSize]byte

func (i *image) put8(o int, v uint8) *image {
	i[o] = v
	return i
}

func (i *image) put16(o int, v uint16) *image {
	binary.LittleEndian.PutUint16(i[o:], v)
	return i
}

func (i *image) put32(o int, v uint32) *image {
	binary.LittleEndian.PutUint32(i[o:], v)
	return i
}

// patternImage fills every byte with its own offset.
func patternImage() *image {
	img := &image{}
	for o := range img {
		img[o] = byte(o)
	}
	return img
}

func deviceImage(vendor, device uint16, headerType uint8) *image {
	img := &image{}
	return img.put16(0x00, vendor).put16(0x02, device).put8(0x0e, headerType)
}

// recordingAccessor remembers every offset read, in order.
type recordingAccessor struct {
	pci.Accessor

	mu      sync.Mutex
	offsets []pci.Offset
}

func (r *recordingAccessor) ReadDword(addr pci.Address, offset pci.Offset) (uint32, error) {
	r.mu.Lock()
	r.offsets = append(r.offsets, offset)
	r.mu.Unlock()
	return r.Accessor.ReadDword(addr, offset)
}

func (r *recordingAccessor) Offsets() []pci.Offset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pci.Offset(nil), r.offsets...)
}

// failingAccessor fails every read at or above failAt.
type failingAccessor struct {
	pci.Accessor

	failAt pci.Offset
	err    error
}

func (f *failingAccessor) ReadDword(addr pci.Address, offset pci.Offset) (uint32, error) {
	if offset >= f.failAt {
		return 0, f.err
	}
	return f.Accessor.ReadDword(addr, offset)
}

func dwordOffsets(from, to int) []pci.Offset {
	var offsets []pci.Offset
	for o := from; o < to; o += 4 {
		offsets = append(offsets, pci.Offset(o))
	}
	return offsets
}
