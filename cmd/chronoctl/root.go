package main

import (
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "chronoctl",
	Short: "Administer a chronodb database",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "chronodb.sqlite", "path to the sqlite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an optional config file")
	rootCmd.AddCommand(initCmd, branchesCmd, dumpCmd)
}
