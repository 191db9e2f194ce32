package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/mercado/internal/state"
)

var transferDisk string

// mercado state:export <path>
var stateExportCmd = &cobra.Command{
	Use:   "state:export <path>",
	Short: "Write the saved state as a JSON snapshot to a storage disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(a *app) error {
			disk, err := a.disks.Disk(transferDisk)
			if err != nil {
				return err
			}
			if err := state.Export(cmd.Context(), a.store, disk, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "State from %s exported to %s:%s\n", a.store.Describe(), disk.Name(), args[0])
			return nil
		})
	},
}

// mercado state:import <path>
var stateImportCmd = &cobra.Command{
	Use:   "state:import <path>",
	Short: "Replace the saved state with a JSON snapshot from a storage disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(a *app) error {
			disk, err := a.disks.Disk(transferDisk)
			if err != nil {
				return err
			}
			if err := state.Import(cmd.Context(), disk, args[0], a.store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "State in %s replaced from %s:%s\n", a.store.Describe(), disk.Name(), args[0])
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{stateExportCmd, stateImportCmd} {
		c.Flags().StringVar(&transferDisk, "disk", "", "storage disk (default STORAGE_DISK)")
	}
}
