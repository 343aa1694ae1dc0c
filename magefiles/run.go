//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer. SCENE overrides the scene named in threeview.toml.
func (Run) Viewer() error {
	args := []string{"run", "main.go"}
	if scene := os.Getenv("SCENE"); scene != "" {
		args = append(args, "-scene", scene)
	}
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
