// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	"github.com/prometheus/procfs/sysfs"
)

type reader struct {
	log    logr.Logger
	fs     sysfs.FS
	filter Filter
}

func NewReader(log logr.Logger, filter Filter) (*reader, error) {
	return NewReaderWithMount(log, DefaultSysfsMountPoint, filter)
}

func NewReaderWithMount(log logr.Logger, mountPoint string, filter Filter) (*reader, error) {
	fs, err := sysfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("failed to open sysfs: %w", err)
	}

	return &reader{
		log:    log,
		fs:     fs,
		filter: filter,
	}, nil
}

// Read lists the functions the kernel enumerated, sorted by address.
func (r *reader) Read() ([]Address, error) {
	devices, err := r.fs.PciDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to read pci devices: %w", err)
	}

	var addresses []Address
	for _, device := range devices {
		vendor, class := Vendor(device.Vendor), Class(device.Class)
		if !r.filter.Match(vendor, class) {
			r.log.V(3).Info(
				"Skipping device, filter not matching",
				"device", device.Name(),
				"vendor", vendor, "class", class,
			)
			continue
		}

		r.log.V(1).Info("Found matching pci device", "device", device.Name())
		addresses = append(addresses, Address{
			Domain:   uint(device.Location.Segment),
			Bus:      uint(device.Location.Bus),
			Slot:     uint(device.Location.Device),
			Function: uint(device.Location.Function),
		})
	}

	slices.SortFunc(addresses, compareAddress)
	return addresses, nil
}

func compareAddress(a, b Address) int {
	return cmp.Or(
		cmp.Compare(a.Domain, b.Domain),
		cmp.Compare(a.Bus, b.Bus),
		cmp.Compare(a.Slot, b.Slot),
		cmp.Compare(a.Function, b.Function),
	)
}
