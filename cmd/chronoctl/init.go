package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronodb/chronodb/config"
	"github.com/chronodb/chronodb/engine"
	"github.com/chronodb/chronodb/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new chronodb database, or open an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer gw.Close()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if _, err := engine.New(gw, cfg); err != nil {
			return err
		}
		if err := gw.Commit(); err != nil {
			return err
		}

		fmt.Printf("initialized %s\n", dbPath)
		return nil
	},
}
