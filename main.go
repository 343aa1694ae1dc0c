/*
Headless viewer for three.js style JSON scenes. It loads the configured
scene, reports what a renderer would draw and reloads the scene whenever
the file changes.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/threeview/engine"
	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer"
)

func main() {
	configPath := flag.String("config", engine.DefaultConfigPath, "path of the TOML configuration")
	scenePath := flag.String("scene", "", "scene document to load, overrides viewer.scene")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if *scenePath != "" {
		cfg.Viewer.Scene = *scenePath
	}

	engine, err := engine.New(cfg, renderer.NewHeadlessHost())
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := engine.Initialize(); err != nil {
		_ = engine.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// run engine
	if err := engine.Run(ctx); err != nil {
		core.LogError(err.Error())
	}
	if err := engine.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
}
