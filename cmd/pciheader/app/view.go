// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ironcore-dev/pci-utils/configutils/pci"
	"sigs.k8s.io/yaml"
)

type FunctionView struct {
	Address       string         `json:"address"`
	Present       bool           `json:"present"`
	Layout        string         `json:"layout,omitempty"`
	Multifunction bool           `json:"multifunction,omitempty"`
	VendorID      string         `json:"vendorID,omitempty"`
	DeviceID      string         `json:"deviceID,omitempty"`
	Revision      string         `json:"revision,omitempty"`
	Class         string         `json:"class,omitempty"`
	Command       string         `json:"command,omitempty"`
	Status        string         `json:"status,omitempty"`
	BARs          []string       `json:"bars,omitempty"`
	Capabilities  string         `json:"capabilitiesPointer,omitempty"`
	InterruptLine uint8          `json:"interruptLine,omitempty"`
	InterruptPin  uint8          `json:"interruptPin,omitempty"`
	Subsystem     *SubsystemView `json:"subsystem,omitempty"`
	Bridge        *BridgeView    `json:"bridge,omitempty"`
}

type SubsystemView struct {
	VendorID string `json:"vendorID"`
	ID       string `json:"id"`
}

type BridgeView struct {
	PrimaryBus         uint8  `json:"primaryBus"`
	SecondaryBus       uint8  `json:"secondaryBus"`
	SubordinateBus     uint8  `json:"subordinateBus"`
	IOWindow           string `json:"ioWindow"`
	MemoryWindow       string `json:"memoryWindow"`
	PrefetchableWindow string `json:"prefetchableWindow"`
	BridgeControl      string `json:"bridgeControl"`
}

func NewFunctionView(addr pci.Address, hdr pci.Header) FunctionView {
	view := FunctionView{
		Address: addr.String(),
		Present: hdr != nil,
	}
	if hdr == nil {
		return view
	}

	common := hdr.Common()
	view.Layout = common.HeaderType.Layout().String()
	view.Multifunction = common.IsMultifunction()
	view.VendorID = fmt.Sprintf("0x%04x", common.VendorID)
	view.DeviceID = fmt.Sprintf("0x%04x", common.DeviceID)
	view.Revision = fmt.Sprintf("0x%02x", common.Revision)
	view.Class = common.Class.String()
	view.Command = fmt.Sprintf("0x%04x", uint16(common.Command))
	view.Status = fmt.Sprintf("0x%04x", uint16(common.Status))

	switch h := hdr.(type) {
	case pci.GeneralHeader:
		view.BARs = barViews(h.BARs[:])
		view.Capabilities = fmt.Sprintf("0x%02x", h.CapabilitiesPointer)
		view.InterruptLine, view.InterruptPin = h.InterruptLine, h.InterruptPin
		view.Subsystem = &SubsystemView{
			VendorID: fmt.Sprintf("0x%04x", h.SubsystemVendorID),
			ID:       fmt.Sprintf("0x%04x", h.SubsystemID),
		}
	case pci.BridgeHeader:
		view.BARs = barViews(h.BARs[:])
		view.Capabilities = fmt.Sprintf("0x%02x", h.CapabilitiesPointer)
		view.InterruptLine, view.InterruptPin = h.InterruptLine, h.InterruptPin
		view.Bridge = &BridgeView{
			PrimaryBus:         h.PrimaryBus,
			SecondaryBus:       h.SecondaryBus,
			SubordinateBus:     h.SubordinateBus,
			IOWindow:           h.IOWindow().String(),
			MemoryWindow:       h.MemoryWindow().String(),
			PrefetchableWindow: h.PrefetchableWindow().String(),
			BridgeControl:      fmt.Sprintf("0x%04x", h.BridgeControl),
		}
	}
	return view
}

func barViews(bars []pci.BaseAddress) []string {
	views := make([]string, 0, len(bars))
	for _, bar := range bars {
		views = append(views, bar.String())
	}
	return views
}

func render(w io.Writer, output string, views []FunctionView) error {
	var (
		data []byte
		err  error
	)
	switch output {
	case OutputYAML:
		data, err = yaml.Marshal(views)
	case OutputJSON:
		data, err = json.MarshalIndent(views, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	if err != nil {
		return fmt.Errorf("failed to render headers: %w", err)
	}

	_, err = w.Write(data)
	return err
}
