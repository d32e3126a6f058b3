package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-vold-bow/internal/checkpoint"
	"github.com/deploymenttheory/go-vold-bow/internal/interfaces"
)

var (
	simulateBootMetadataPath string
	simulateBootDaemon       string
)

var simulateBootCmd = &cobra.Command{
	Use:   "simulate-boot",
	Short: "Run needsCheckpoint/needsRollback/markBootAttempt once against the metadata file",
	Long: `simulate-boot exercises the three read-mostly lifecycle operations a
host daemon calls at boot, without touching any block device or boot-control
HAL. It is meant for inspecting what a real boot would decide given the
metadata file as it stands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulateBoot(simulateBootDaemon, simulateBootMetadataPath)
	},
}

func init() {
	rootCmd.AddCommand(simulateBootCmd)
	simulateBootCmd.Flags().StringVar(&simulateBootMetadataPath, "metadata-path", "/metadata/vold/checkpoint", "path to the checkpoint metadata file")
	simulateBootCmd.Flags().StringVar(&simulateBootDaemon, "daemon", "vold", "daemon name used for the committed property key")
}

func runSimulateBoot(daemon, metadataPath string) error {
	lm := checkpoint.NewLifecycleManager(checkpoint.Config{
		Daemon:       daemon,
		MetadataPath: metadataPath,
		Fstab:        interfaces.StaticFstabLoader{},
	})

	needsCheckpoint, err := lm.NeedsCheckpoint()
	if err != nil {
		return err
	}
	fmt.Printf("needsCheckpoint: %v\n", needsCheckpoint)

	needsRollback, err := lm.NeedsRollback()
	if err != nil {
		return err
	}
	fmt.Printf("needsRollback:   %v\n", needsRollback)

	if err := lm.MarkBootAttempt(); err != nil {
		return err
	}
	fmt.Println("markBootAttempt: done")
	return nil
}
