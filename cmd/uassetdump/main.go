// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	wantHeader   bool
	wantNames    bool
	wantImports  bool
	wantExports  bool
	wantProps    bool
	wantWorldTile bool
	wantAll      bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "uassetdump",
		Short: "A cooked Unreal Engine package (uasset/uexp) parser",
		Long:  "A uasset/uexp parser built for speed and asset-pipeline tooling, by Saferwall",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps a package",
		Long:  "Dumps the header, name table, import/export tables and property tree of a cooked package",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&wantHeader, "header", "", false, "Dump header scalars")
	dumpCmd.Flags().BoolVarP(&wantNames, "names", "", false, "Dump the name table")
	dumpCmd.Flags().BoolVarP(&wantImports, "imports", "", false, "Dump the import table")
	dumpCmd.Flags().BoolVarP(&wantExports, "exports", "", false, "Dump the export table")
	dumpCmd.Flags().BoolVarP(&wantProps, "properties", "", false, "Dump decoded export bodies")
	dumpCmd.Flags().BoolVarP(&wantWorldTile, "worldtile", "", false, "Dump world-tile metadata")
	dumpCmd.Flags().BoolVarP(&wantAll, "all", "", false, "Dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
