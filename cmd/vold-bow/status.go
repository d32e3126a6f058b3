package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-vold-bow/internal/types"
)

var statusMetadataPath string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current checkpoint metadata state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(statusMetadataPath)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusMetadataPath, "metadata-path", "/metadata/vold/checkpoint", "path to the checkpoint metadata file")
}

func runStatus(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("state: idle (no metadata file)")
			return nil
		}
		return err
	}

	meta, err := types.ParseCheckpointMetadata(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	switch meta.State {
	case types.Armed:
		fmt.Printf("state: armed, retry_remaining=%d\n", meta.Retry)
	case types.RollbackArmed:
		fmt.Printf("state: rollback-armed, slot_suffix=%s\n", meta.SlotSuffix)
	default:
		fmt.Println("state: idle")
	}
	return nil
}
