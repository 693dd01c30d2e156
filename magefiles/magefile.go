//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the scenepack CLI into bin/.
func (Build) CLI() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/scenepack", "./cmd/scenepack"), withStream())
	return err
}

// Runs every package's tests. The renderer tests link the native WebGPU library.
func Test() error {
	mg.Deps(Vet)
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the planner packages' tests with the race detector.
func Race() error {
	_, err := executeCmd("go",
		withArgs("test", "-race", "./engine/planner/...", "./engine/loader/...", "./cmd/..."),
		withEnv("CGO_ENABLED=1"),
		withStream(),
	)
	return err
}

// Runs go vet.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."))
	return err
}

// Prints the built-in config.
func DefaultConfig() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/scenepack", "-print-config"), withStream())
	return err
}
