package main

import (
	"fmt"
	"os"

	"github.com/chazu/xylem/pkg/scene"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene.json]",
	Short: "Display measurements for a scene document",
	Long:  "Report length, area, planarity and bounding box for every object in a scene.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	s, err := scene.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if errs := s.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], e)
		}
		os.Exit(1)
	}

	for _, st := range s.Stats() {
		fmt.Printf("%s (%s)\n", st.Name, st.Kind)
		switch st.Kind {
		case "polyline":
			fmt.Printf("  Length: %.6f\n", st.Length)
			fmt.Printf("  Closed: %v  Planar: %v\n", st.Closed, st.Planar)
			if st.Closed && st.Planar {
				fmt.Printf("  Area: %.6f\n", st.Area)
			}
		case "line":
			fmt.Printf("  Length: %.6f\n", st.Length)
		}
		if st.Bounds.IsValid() {
			fmt.Printf("  Bounds: min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
				st.Bounds.Min.X, st.Bounds.Min.Y, st.Bounds.Min.Z,
				st.Bounds.Max.X, st.Bounds.Max.Y, st.Bounds.Max.Z)
		}
		fmt.Println()
	}
}
