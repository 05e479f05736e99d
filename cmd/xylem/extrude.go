package main

import (
	"fmt"
	"os"

	"github.com/chazu/xylem/pkg/scene"
	"github.com/chazu/xylem/pkg/solid"
	"github.com/spf13/cobra"
)

var extrudeCmd = &cobra.Command{
	Use:   "extrude [scene.json]",
	Short: "Extrude a closed planar polyline into an STL solid",
	Args:  cobra.ExactArgs(1),
	Run:   runExtrude,
}

var (
	extrudeName   string
	extrudeHeight float64
	extrudeCells  int
	extrudeOut    string
)

func init() {
	extrudeCmd.Flags().StringVar(&extrudeName, "name", "", "polyline to extrude (required)")
	extrudeCmd.Flags().Float64Var(&extrudeHeight, "height", 1, "extrusion height")
	extrudeCmd.Flags().IntVar(&extrudeCells, "cells", 0, "marching cubes resolution (0 = default)")
	extrudeCmd.Flags().StringVarP(&extrudeOut, "output", "o", "out.stl", "output STL path")
	_ = extrudeCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(extrudeCmd)
}

func runExtrude(cmd *cobra.Command, args []string) {
	s, err := scene.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pl, ok := s.Polyline(extrudeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no polyline named %q in %s\n", extrudeName, args[0])
		os.Exit(1)
	}

	sd, err := solid.ExtrudePolyline(pl, extrudeHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := solid.SaveSTL(sd, extrudeCells, extrudeOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bb := solid.Bounds(sd)
	fmt.Printf("Wrote %s\n", extrudeOut)
	fmt.Printf("Bounds: min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
		bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
}
