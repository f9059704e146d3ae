// Command chronoctl is an administrative CLI over a chronodb database:
// creating it, listing its branches, and dumping its history tables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
