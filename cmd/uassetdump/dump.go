// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cookedpak/uasset"
	"github.com/cookedpak/uasset/log"
)

func prettyPrint(v interface{}) string {
	buff, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<marshal error: %v>", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		return string(buff)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func parseOne(filename string, logger *log.Helper) {
	logger.Infof("parsing %s", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Errorf("reading %s: %v", filename, err)
		return
	}

	pkg, err := uasset.ReadPackage(data, uasset.ObjectVersionUnknown, false)
	if err != nil {
		logger.Errorf("parsing %s: %v", filename, err)
		return
	}

	if wantHeader || wantAll {
		fmt.Printf("\n---[ %s: header ]---\n", filename)
		fmt.Println(prettyPrint(struct {
			ObjectVersion   uasset.ObjectVersion
			Unversioned     bool
			PackageFlags    uint32
			NameCount       int32
			ImportCount     int32
			ExportCount     int32
			Guid            uasset.Guid
			TotalHeaderSize int32
		}{
			pkg.ObjectVersion, pkg.Unversioned, pkg.PackageFlags,
			pkg.NameCount, pkg.ImportCount, pkg.ExportCount, pkg.Guid, pkg.TotalHeaderSize,
		}))
	}

	if wantNames || wantAll {
		fmt.Printf("\n---[ %s: names ]---\n", filename)
		fmt.Println(prettyPrint(pkg.Names.Entries()))
	}

	if wantImports || wantAll {
		fmt.Printf("\n---[ %s: imports ]---\n", filename)
		fmt.Println(prettyPrint(pkg.Imports))
	}

	if wantExports || wantAll {
		fmt.Printf("\n---[ %s: exports ]---\n", filename)
		for i, e := range pkg.Exports {
			fmt.Printf("%d: %s (class %s) size=%d offset=%d\n",
				i, resolveExportName(pkg, &e), pkg.GetExportClassType(&e), e.SerialSize, e.SerialOffset)
		}
	}

	if wantProps || wantAll {
		fmt.Printf("\n---[ %s: export bodies ]---\n", filename)
		for i, e := range pkg.Exports {
			fmt.Printf("\n-- export %d: %s --\n", i, resolveExportName(pkg, &e))
			fmt.Println(prettyPrint(e.Body))
		}
	}

	if wantWorldTile || wantAll {
		if pkg.WorldTileInfo != nil {
			fmt.Printf("\n---[ %s: world tile ]---\n", filename)
			fmt.Println(prettyPrint(pkg.WorldTileInfo))
		}
	}

	if len(pkg.Anomalies) > 0 {
		fmt.Printf("\n---[ %s: anomalies ]---\n", filename)
		for _, a := range pkg.Anomalies {
			fmt.Println(a)
		}
	}
}

func resolveExportName(pkg *uasset.Package, e *uasset.Export) string {
	s, err := pkg.Names.Content(e.ObjectName)
	if err != nil {
		return "<unresolved>"
	}
	return s
}

func dump(cmd *cobra.Command, args []string) {
	logger := log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelInfo)))

	filePath := args[0]
	if !isDirectory(filePath) {
		parseOne(filePath, logger)
		return
	}

	var files []string
	filepath.Walk(filePath, func(path string, f os.FileInfo, err error) error {
		if err == nil && !f.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	for _, f := range files {
		parseOne(f, logger)
	}
}
