// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import "fmt"

// Class is the 24 bit class code 0xBBSSII: base class, subclass and
// programming interface.
type Class uint32

var (
	ClassPCIBridge          Class = 0x060400
	ClassNVMeController     Class = 0x010802
	ClassEthernetController Class = 0x020000
	ClassVGAController      Class = 0x030000
	Class3DController       Class = 0x030200
)

// ResolveClass maps the raw class bytes to a Class. It never fails, unknown
// base classes resolve to BaseClassUnknown through Base.
func ResolveClass(base, subclass, iface uint8) Class {
	return Class(uint32(base)<<16 | uint32(subclass)<<8 | uint32(iface))
}

func (c Class) Base() BaseClass {
	b := BaseClass(c >> 16)
	if _, ok := baseClassNames[b]; !ok {
		return BaseClassUnknown
	}
	return b
}

func (c Class) Subclass() uint8 {
	return uint8(c >> 8)
}

func (c Class) Interface() uint8 {
	return uint8(c)
}

func (c Class) String() string {
	return fmt.Sprintf("0x%06x (%s)", uint32(c)&0xffffff, c.Base())
}

type BaseClass uint8

const (
	BaseClassUnclassified BaseClass = iota
	BaseClassMassStorage
	BaseClassNetwork
	BaseClassDisplay
	BaseClassMultimedia
	BaseClassMemory
	BaseClassBridge
	BaseClassSimpleCommunication
	BaseClassBaseSystemPeripheral
	BaseClassInputDevice
	BaseClassDockingStation
	BaseClassProcessor
	BaseClassSerialBus
	BaseClassWireless
	BaseClassIntelligent
	BaseClassSatelliteCommunication
	BaseClassEncryption
	BaseClassSignalProcessing
	BaseClassProcessingAccelerator
	BaseClassNonEssentialInstrumentation

	BaseClassCoprocessor BaseClass = 0x40
	BaseClassUnassigned  BaseClass = 0xff

	// BaseClassUnknown is reported for reserved base class values. It shares
	// its value with no defined class.
	BaseClassUnknown BaseClass = 0xfe
)

var baseClassNames = map[BaseClass]string{
	BaseClassUnclassified:                "unclassified",
	BaseClassMassStorage:                 "mass storage controller",
	BaseClassNetwork:                     "network controller",
	BaseClassDisplay:                     "display controller",
	BaseClassMultimedia:                  "multimedia controller",
	BaseClassMemory:                      "memory controller",
	BaseClassBridge:                      "bridge",
	BaseClassSimpleCommunication:         "communication controller",
	BaseClassBaseSystemPeripheral:        "generic system peripheral",
	BaseClassInputDevice:                 "input device controller",
	BaseClassDockingStation:              "docking station",
	BaseClassProcessor:                   "processor",
	BaseClassSerialBus:                   "serial bus controller",
	BaseClassWireless:                    "wireless controller",
	BaseClassIntelligent:                 "intelligent controller",
	BaseClassSatelliteCommunication:      "satellite communications controller",
	BaseClassEncryption:                  "encryption controller",
	BaseClassSignalProcessing:            "signal processing controller",
	BaseClassProcessingAccelerator:       "processing accelerator",
	BaseClassNonEssentialInstrumentation: "non-essential instrumentation",
	BaseClassCoprocessor:                 "coprocessor",
	BaseClassUnassigned:                  "unassigned class",
}

func (b BaseClass) String() string {
	if name, ok := baseClassNames[b]; ok {
		return name
	}
	return "unknown"
}
