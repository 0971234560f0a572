package main

import (
	"os"

	"github.com/arthur-debert/packmapper/cmd/packmapper"
)

func main() {
	os.Exit(packmapper.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
