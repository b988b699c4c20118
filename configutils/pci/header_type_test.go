// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci_test

import (
	"github.com/ironcore-dev/pci-utils/configutils/pci"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HeaderType", func() {
	DescribeTable("classifying the header type byte",
		func(b uint8, layout pci.HeaderType, multifunction bool) {
			gotLayout, gotMultifunction := pci.ClassifyHeaderType(b)
			Expect(gotLayout).To(Equal(layout))
			Expect(gotMultifunction).To(Equal(multifunction))
		},
		Entry("general", uint8(0x00), pci.HeaderTypeGeneral, false),
		Entry("pci-to-pci", uint8(0x01), pci.HeaderTypePCIToPCI, false),
		Entry("cardbus", uint8(0x02), pci.HeaderTypeCardBusBridge, false),
		Entry("reserved", uint8(0x03), pci.HeaderType(0x03), false),
		Entry("multifunction general", uint8(0x40), pci.HeaderTypeGeneral, true),
		Entry("multifunction pci-to-pci", uint8(0x41), pci.HeaderTypePCIToPCI, true),
		Entry("multifunction cardbus", uint8(0x42), pci.HeaderTypeCardBusBridge, true),
		Entry("multifunction reserved", uint8(0x43), pci.HeaderType(0x03), true),
		Entry("bits outside the mask", uint8(0x3d), pci.HeaderTypePCIToPCI, false),
	)

	It("should name the layout", func() {
		Expect(pci.HeaderTypeGeneral.String()).To(Equal("general"))
		Expect((pci.HeaderTypePCIToPCI | pci.HeaderTypeMultifunction).String()).To(Equal("pci-to-pci,multifunction"))
		Expect(pci.HeaderTypeCardBusBridge.String()).To(Equal("cardbus-bridge"))
		Expect(pci.HeaderType(0x03).String()).To(Equal("reserved(3)"))
	})
})
