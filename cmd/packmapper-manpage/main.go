package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/packmapper/cmd/packmapper"
	"github.com/arthur-debert/packmapper/internal/version"
)

func main() {
	rootCmd := packmapper.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PACKMAPPER",
		Section: "1",
		Source:  "packmapper " + version.Version,
		Manual:  "packmapper manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
