// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/ironcore-dev/pci-utils/configutils/pci"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const Name string = "pciheader"

const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

type Options struct {
	SysfsRoot string
	Vendors   []string
	Classes   []string
	Output    string
	Start     uint8
	Length    uint8
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	zapOpts := zap.Options{
		Development: true,
	}

	root := &cobra.Command{
		Use:          Name,
		Short:        "Decode PCI configuration space headers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logf.SetLogger(zap.New(zap.UseFlagOptions(&zapOpts)))
		},
	}

	goFlags := flag.NewFlagSet(Name, flag.ContinueOnError)
	zapOpts.BindFlags(goFlags)
	root.PersistentFlags().AddGoFlagSet(goFlags)
	root.PersistentFlags().StringVar(&opts.SysfsRoot, "sysfs-root", pci.DefaultSysfsMountPoint, "Mount point of sysfs.")

	root.AddCommand(NewDecodeCommand(opts))
	root.AddCommand(NewDumpCommand(opts))
	return root
}

func (o *Options) filter() (pci.Filter, error) {
	filter := pci.Filter{
		Vendors: sets.New[pci.Vendor](),
		Classes: sets.New[pci.Class](),
	}
	for _, v := range o.Vendors {
		id, err := parseHex(v, 16)
		if err != nil {
			return pci.Filter{}, fmt.Errorf("invalid vendor %q: %w", v, err)
		}
		filter.Vendors.Insert(pci.Vendor(id))
	}
	for _, c := range o.Classes {
		code, err := parseHex(c, 24)
		if err != nil {
			return pci.Filter{}, fmt.Errorf("invalid class %q: %w", c, err)
		}
		filter.Classes.Insert(pci.Class(code))
	}
	return filter, nil
}

func parseHex(s string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, bits)
}

// parseAddresses parses the arguments, keeping the first occurrence of each.
func parseAddresses(args []string) ([]pci.Address, error) {
	seen := sets.New[pci.Address]()
	var addrs []pci.Address
	for _, arg := range args {
		addr, err := pci.ParseAddress(arg)
		if err != nil {
			return nil, err
		}
		if seen.Has(addr) {
			continue
		}
		seen.Insert(addr)
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
