//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// HDF5 is linked through cgo, CGO_CFLAGS and CGO_LDFLAGS are passed on
// to point to a non-system installation.
func goCommand(args ...string) *exec.Cmd {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

func Build() error {
	mg.Deps(BuildEdepsum)
	fmt.Println("Compilation finished")
	return nil
}

func BuildEdepsum() error {
	fmt.Println("Building edepsum executable...")
	return goCommand("build", "-o", "./bin/edepsum", "./edepsum").Run()
}

// Test runs the unit tests of all packages.
func Test() error {
	fmt.Println("Running tests...")
	return goCommand("test", "./...").Run()
}

func Vet() error {
	fmt.Println("Running go vet...")
	return goCommand("vet", "./...").Run()
}
