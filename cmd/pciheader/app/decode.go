// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/ironcore-dev/pci-utils/configutils/pci"
	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

func NewDecodeCommand(opts *Options) *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode [ADDRESS...]",
		Short: "Decode the configuration header of the given or all enumerated functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, opts, args)
		},
	}

	decodeCmd.Flags().StringSliceVar(&opts.Vendors, "vendor", nil, "Only decode enumerated functions of these vendor ids (hex).")
	decodeCmd.Flags().StringSliceVar(&opts.Classes, "class", nil, "Only decode enumerated functions of these class codes (hex).")
	decodeCmd.Flags().StringVarP(&opts.Output, "output", "o", OutputYAML, "Output format, yaml or json.")

	return decodeCmd
}

func runDecode(cmd *cobra.Command, opts *Options, args []string) error {
	log := logf.Log.WithName("decode")

	addrs, err := parseAddresses(args)
	if err != nil {
		return err
	}

	if len(addrs) == 0 {
		filter, err := opts.filter()
		if err != nil {
			return err
		}
		reader, err := pci.NewReaderWithMount(log, opts.SysfsRoot, filter)
		if err != nil {
			return err
		}
		if addrs, err = reader.Read(); err != nil {
			return err
		}
	}

	accessor := pci.NewSysfsAccessor(log, pci.SysfsOptions{MountPoint: opts.SysfsRoot})
	return DecodeFunctions(log, accessor, addrs, cmd.OutOrStdout(), opts.Output)
}

// DecodeFunctions decodes and renders every address. Functions failing to
// decode are left out of the output and their errors joined.
func DecodeFunctions(log logr.Logger, accessor pci.Accessor, addrs []pci.Address, w io.Writer, output string) error {
	var (
		views []FunctionView
		errs  []error
	)
	for _, addr := range addrs {
		hdr, err := pci.NewFunction(log, accessor, addr).Header()
		if err != nil {
			log.Error(err, "Failed to decode header", "pciAddress", addr)
			errs = append(errs, err)
			continue
		}
		views = append(views, NewFunctionView(addr, hdr))
	}

	if err := render(w, output, views); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to decode %d of %d functions: %w", len(errs), len(addrs), errors.Join(errs...))
	}
	return nil
}
