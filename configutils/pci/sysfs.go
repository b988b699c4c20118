// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

// SysfsAccessor reads configuration space through the kernel's per device
// config file. Without privileges the kernel exposes the first 64 bytes only.
type SysfsAccessor struct {
	log        logr.Logger
	mountPoint string
}

func NewSysfsAccessor(log logr.Logger, opts SysfsOptions) *SysfsAccessor {
	opts.Defaults()
	return &SysfsAccessor{
		log:        log,
		mountPoint: opts.MountPoint,
	}
}

func (s *SysfsAccessor) ConfigPath(addr Address) string {
	return filepath.Join(s.mountPoint, "bus", "pci", "devices", addr.String(), "config")
}

func (s *SysfsAccessor) ReadDword(addr Address, offset Offset) (uint32, error) {
	if !offset.Aligned() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrMisalignedOffset, uint8(offset))
	}

	path := s.ConfigPath(addr)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.V(3).Info("No config file, reporting empty slot", "path", path)
		return AbsentSentinel, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open config space: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Error(err, "failed to close config space", "path", path)
		}
	}()

	var buf [4]byte
	n, err := f.ReadAt(buf[:], int64(offset))
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: %d bytes at 0x%02x of %s", ErrShortRead, n, uint8(offset), path)
		}
		return 0, fmt.Errorf("failed to read config space: %w", err)
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}
