// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/ironcore-dev/pci-utils/configutils/pci"
	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

func NewDumpCommand(opts *Options) *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump ADDRESS",
		Short: "Hex dump a byte range of a function's configuration space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := pci.ParseAddress(args[0])
			if err != nil {
				return err
			}
			log := logf.Log.WithName("dump")
			accessor := pci.NewSysfsAccessor(log, pci.SysfsOptions{MountPoint: opts.SysfsRoot})
			return DumpRange(log, accessor, addr, pci.Offset(opts.Start), opts.Length, cmd.OutOrStdout())
		},
	}

	dumpCmd.Flags().Uint8Var(&opts.Start, "start", 0, "First byte offset.")
	dumpCmd.Flags().Uint8Var(&opts.Length, "length", pci.HeaderSize, "Number of bytes.")

	return dumpCmd
}

func DumpRange(log logr.Logger, accessor pci.Accessor, addr pci.Address, start pci.Offset, length uint8, w io.Writer) error {
	b, err := pci.NewFunction(log, accessor, addr).ReadRange(start, length)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", addr, err)
	}

	dumper := hex.Dumper(w)
	if _, err := dumper.Write(b); err != nil {
		return err
	}
	return dumper.Close()
}
