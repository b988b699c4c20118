// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci_test

import (
	"sync"
	"sync/atomic"

	"github.com/ironcore-dev/pci-utils/configutils/pci"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	log "sigs.k8s.io/controller-runtime/pkg/log"
)

// portAccessor models a shared select-address/read-data mechanism and records
// whether two transactions ever overlapped.
type portAccessor struct {
	inner      pci.Accessor
	inFlight   atomic.Int32
	overlapped atomic.Bool
}

func (p *portAccessor) ReadDword(addr pci.Address, offset pci.Offset) (uint32, error) {
	if p.inFlight.Add(1) > 1 {
		p.overlapped.Store(true)
	}
	defer p.inFlight.Add(-1)
	return p.inner.ReadDword(addr, offset)
}

var _ = Describe("Accessor", func() {
	It("should serve memory images and report empty slots", func() {
		accessor := pci.NewMemoryAccessor()
		addr := pci.Address{Bus: 2}

		v, err := accessor.ReadDword(addr, 0x00)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(pci.AbsentSentinel))

		Expect(accessor.Set(addr, []byte{0x86, 0x80, 0x72, 0x15})).To(Succeed())
		v, err = accessor.ReadDword(addr, 0x00)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0x15728086)))

		By("reading the zero padded remainder")
		v, err = accessor.ReadDword(addr, 0xfc)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeZero())

		By("rejecting misaligned offsets")
		_, err = accessor.ReadDword(addr, 0x01)
		Expect(err).To(MatchError(pci.ErrMisalignedOffset))

		By("rejecting images larger than the configuration space")
		Expect(accessor.Set(addr, make([]byte, pci.ConfigSpaceSize+1))).To(MatchError(pci.ErrOutOfRange))
	})

	It("should serialize concurrent header decoding", func(ctx SpecContext) {
		memory := pci.NewMemoryAccessor()
		var addrs []pci.Address
		for slot := uint(0); slot < 8; slot++ {
			addr := pci.Address{Bus: 1, Slot: slot}
			Expect(memory.Set(addr, deviceImage(0x8086, uint16(slot), 0x00)[:])).To(Succeed())
			addrs = append(addrs, addr)
		}

		port := &portAccessor{inner: memory}
		locked := pci.NewLockedAccessor(port)

		var wg sync.WaitGroup
		for _, addr := range addrs {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				fn := pci.NewFunction(log.FromContext(ctx), locked, addr)
				for range 50 {
					hdr, err := fn.Header()
					Expect(err).NotTo(HaveOccurred())
					Expect(hdr.Common().DeviceID).To(Equal(uint16(addr.Slot)))
				}
			}()
		}
		wg.Wait()

		Expect(port.overlapped.Load()).To(BeFalse())
	})
})
