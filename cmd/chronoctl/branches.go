package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chronodb/chronodb/store"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List every branch recorded in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer gw.Close()

		rows, err := gw.AllBranches()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "BRANCH\tPARENT\tFORK_TURN\tFORK_TICK\tEND_TURN\tEND_TICK")
		for _, b := range rows {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n", b.Branch, b.Parent, b.ParentTurn, b.ParentTick, b.EndTurn, b.EndTick)
		}
		return w.Flush()
	},
}
