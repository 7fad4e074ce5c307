package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/apkren/cmd/apkren"
	"github.com/arthur-debert/apkren/internal/version"
)

func main() {
	rootCmd := apkren.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "APKREN",
		Section: "1",
		Source:  "apkren " + version.Version,
		Manual:  "apkren manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
