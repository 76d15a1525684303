//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target runs when mage is invoked without arguments
var Default = Build

const binDir = "bin"

var binaries = []string{"pinyin-anki", "pinyin-syllables"}

// Build compiles both binaries into bin/
func Build() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	for _, name := range binaries {
		fmt.Println("Building", name)
		if err := sh.RunV("go", "build", "-o", filepath.Join(binDir, name), "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the test suite
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Cover runs the tests with a coverage profile
func Cover() error {
	return sh.RunV("go", "test", "-coverprofile=coverage.out", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.Deps(Vet, Test)
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}
