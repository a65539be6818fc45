package main

import (
	"os"

	"github.com/Gobot1234/blacken-docs/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
