package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xylem",
	Short: "A CLI for the xylem geometry kernel",
	Long: `xylem evaluates geometry scripts, reports measurements on scene
documents and extrudes closed planar polylines into STL solids.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
