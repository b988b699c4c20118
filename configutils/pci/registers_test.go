// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci_test

import (
	"github.com/ironcore-dev/pci-utils/configutils/pci"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registers", func() {
	It("should decode base address registers", func() {
		io := pci.BaseAddress(0x0000e001)
		Expect(io.IsIO()).To(BeTrue())
		Expect(io.Addr()).To(Equal(uint32(0xe000)))
		Expect(io.Prefetchable()).To(BeFalse())
		Expect(io.String()).To(Equal("{i/o: 0x0000e000}"))

		mem64 := pci.BaseAddress(0xfb00000c)
		Expect(mem64.IsMemory()).To(BeTrue())
		Expect(mem64.Is64Bit()).To(BeTrue())
		Expect(mem64.Prefetchable()).To(BeTrue())
		Expect(mem64.Addr()).To(Equal(uint32(0xfb000000)))
		Expect(mem64.String()).To(Equal("{mem: 64-bit prefetchable 0xfb000000}"))

		mem32 := pci.BaseAddress(0xfc000000)
		Expect(mem32.Is64Bit()).To(BeFalse())
		Expect(mem32.String()).To(Equal("{mem: 32-bit 0xfc000000}"))

		Expect(pci.BaseAddress(0).String()).To(Equal("{}"))
	})

	It("should test command and status bits", func() {
		cmd := pci.CommandMemoryEnable | pci.CommandBusMaster
		Expect(cmd.Has(pci.CommandMemoryEnable)).To(BeTrue())
		Expect(cmd.Has(pci.CommandMemoryEnable | pci.CommandIOEnable)).To(BeFalse())
		Expect(pci.CommandINTxDisable).To(Equal(pci.Command(1 << 10)))

		status := pci.StatusCapabilitiesList | pci.Status(0x2<<9)
		Expect(status.Has(pci.StatusCapabilitiesList)).To(BeTrue())
		Expect(status.DevselTiming()).To(Equal(uint8(2)))
	})

	It("should compute bridge windows", func() {
		bridge := pci.BridgeHeader{
			IOBase:             0x21,
			IOLimit:            0x31,
			IOBaseUpper:        0x0001,
			IOLimitUpper:       0x0001,
			MemoryBase:         0xde00,
			MemoryLimit:        0xdef0,
			PrefetchBase:       0x0001,
			PrefetchLimit:      0x0ff1,
			PrefetchBaseUpper:  0x40,
			PrefetchLimitUpper: 0x40,
		}

		Expect(bridge.IOWindow()).To(Equal(pci.Window{Base: 0x12000, Limit: 0x13fff}))
		Expect(bridge.MemoryWindow()).To(Equal(pci.Window{Base: 0xde000000, Limit: 0xdeffffff}))
		Expect(bridge.PrefetchableWindow()).To(Equal(pci.Window{Base: 0x4000000000, Limit: 0x400fffffff}))

		By("ignoring the upper halves for 16 bit i/o and 32 bit prefetchable decoding")
		bridge.IOBase, bridge.IOLimit = 0x20, 0x30
		bridge.PrefetchBase, bridge.PrefetchLimit = 0x0000, 0x0ff0
		Expect(bridge.IOWindow()).To(Equal(pci.Window{Base: 0x2000, Limit: 0x3fff}))
		Expect(bridge.PrefetchableWindow()).To(Equal(pci.Window{Base: 0x0, Limit: 0x0fffffff}))

		By("reporting a base above the limit as disabled")
		bridge.MemoryBase, bridge.MemoryLimit = 0xfff0, 0x0000
		Expect(bridge.MemoryWindow().Enabled()).To(BeFalse())
		Expect(bridge.MemoryWindow().String()).To(Equal("disabled"))
	})
})
