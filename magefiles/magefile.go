//go:build mage

// Package main contains Mage build targets for genpics developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a render run expects.
var projectDirs = []string{
	"graphs",
	"pics",
}

const (
	binDir  = "bin"
	binName = "genpics"
	cmdPkg  = "./cmd/genpics"
)

// Init creates the graphs/ and pics/ directories. The renderer never
// creates its output directory itself.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Render builds the CLI and renders graphs/ into pics/.
func Render() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "render")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
