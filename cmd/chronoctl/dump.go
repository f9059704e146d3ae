package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronodb/chronodb/store"
)

var dumpTable string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump one history table as JSON",
	Long:  "Dump one of: nodes, edges, graph_vals, node_vals, edge_vals, turns, graphs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer gw.Close()

		var rows any
		switch dumpTable {
		case "nodes":
			rows, err = gw.NodesDump()
		case "edges":
			rows, err = gw.EdgesDump()
		case "graph_vals":
			rows, err = gw.GraphValDump()
		case "node_vals":
			rows, err = gw.NodeValDump()
		case "edge_vals":
			rows, err = gw.EdgeValDump()
		case "turns":
			rows, err = gw.TurnsDump()
		case "graphs":
			rows, err = gw.GraphsTypes()
		default:
			return fmt.Errorf("unknown table %q", dumpTable)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpTable, "table", "nodes", "table to dump")
}
