// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrMisalignedOffset = errors.New("config space offset is not dword aligned")
	ErrShortRead        = errors.New("short config space read")
)

// Offset addresses a byte in the legacy 256 byte configuration space.
type Offset uint8

const (
	// ConfigSpaceSize is the size of the legacy configuration space. Extended
	// PCIe space is not addressed.
	ConfigSpaceSize = 256
	// HeaderSize covers the standardized header shared by all layouts.
	HeaderSize = 64

	// AbsentSentinel is read from dword 0 when no function responds.
	AbsentSentinel uint32 = 0xffffffff
)

func (o Offset) Aligned() bool {
	return o&0x3 == 0
}

// Accessor performs single dword reads of a function's configuration space.
// Implementations backed by a shared select-then-read mechanism must make each
// ReadDword call atomic, see LockedAccessor.
type Accessor interface {
	ReadDword(addr Address, offset Offset) (uint32, error)
}

// LockedAccessor serializes every dword transaction of the wrapped accessor.
type LockedAccessor struct {
	mu       sync.Mutex
	accessor Accessor
}

func NewLockedAccessor(accessor Accessor) *LockedAccessor {
	return &LockedAccessor{accessor: accessor}
}

func (l *LockedAccessor) ReadDword(addr Address, offset Offset) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.accessor.ReadDword(addr, offset)
}

// MemoryAccessor serves configuration space images held in memory. Addresses
// without an image read as all ones, like an empty slot.
type MemoryAccessor struct {
	mu     sync.RWMutex
	images map[Address]*[ConfigSpaceSize]byte
}

func NewMemoryAccessor() *MemoryAccessor {
	return &MemoryAccessor{
		images: map[Address]*[ConfigSpaceSize]byte{},
	}
}

// Set stores data as the image of addr. Data shorter than the configuration
// space is zero padded, longer data is rejected.
func (m *MemoryAccessor) Set(addr Address, data []byte) error {
	if len(data) > ConfigSpaceSize {
		return fmt.Errorf("%w: image of %d bytes", ErrOutOfRange, len(data))
	}

	image := &[ConfigSpaceSize]byte{}
	copy(image[:], data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[addr] = image
	return nil
}

func (m *MemoryAccessor) Remove(addr Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, addr)
}

func (m *MemoryAccessor) ReadDword(addr Address, offset Offset) (uint32, error) {
	if !offset.Aligned() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrMisalignedOffset, uint8(offset))
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	image, ok := m.images[addr]
	if !ok {
		return AbsentSentinel, nil
	}
	o := int(offset)
	return binary.LittleEndian.Uint32(image[o : o+4]), nil
}
