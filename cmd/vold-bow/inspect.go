package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-vold-bow/internal/blockio"
	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [block-device-or-image]",
	Short: "Decode and print the bow log header at sector 0",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	dev, err := blockio.Open(path)
	if err != nil {
		return err
	}
	defer dev.Close()

	buf := make([]byte, types.SectorSize)
	if err := dev.ReadAt(buf, 0); err != nil {
		return err
	}
	header := types.DecodeBowLogSectorHeader(buf)

	fmt.Printf("magic:    %#08x (want %#08x)\n", header.Magic, types.BowMagic)
	fmt.Printf("count:    %d\n", header.Count)
	fmt.Printf("sequence: %d\n", header.Sequence)
	fmt.Printf("sector0:  %d\n", header.Sector0)

	span := types.SectorSpanForCount(header.Count)
	full := make([]byte, int(span)*types.SectorSize)
	for i := uint32(0); i < span; i++ {
		if err := dev.ReadAt(full[i*types.SectorSize:(i+1)*types.SectorSize], uint64(i)); err != nil {
			return err
		}
	}
	for i, e := range types.DecodeBowLogEntries(full, header.Count) {
		fmt.Printf("entry[%d]: source=%d dest=%d size=%d checksum=%#08x\n", i, e.Source, e.Dest, e.Size, e.Checksum)
	}
	return nil
}
