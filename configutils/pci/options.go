// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import "k8s.io/apimachinery/pkg/util/sets"

const DefaultSysfsMountPoint = "/sys"

// SysfsOptions configures the sysfs backed accessor and reader.
type SysfsOptions struct {
	MountPoint string
}

func (o *SysfsOptions) Defaults() {
	if o.MountPoint == "" {
		o.MountPoint = DefaultSysfsMountPoint
	}
}

// Filter selects functions by the vendor and class the kernel reports. An
// empty set matches everything.
type Filter struct {
	Vendors sets.Set[Vendor]
	Classes sets.Set[Class]
}

func (f Filter) Match(vendor Vendor, class Class) bool {
	if f.Vendors.Len() > 0 && !f.Vendors.Has(vendor) {
		return false
	}
	if f.Classes.Len() > 0 && !f.Classes.Has(class) {
		return false
	}
	return true
}
