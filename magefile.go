//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles all packages.
func Build() error {
	return sh.RunV("go", "build", "./...")
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet over the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// All runs lint and the tests.
func All() {
	mg.SerialDeps(Lint, Test)
}
