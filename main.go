package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"chiptune/emu"
)

func main() {
	args := parseArgs(os.Args[1:])

	cfg, err := emu.LoadConfigOrDefault(args.Config)
	checkf(err, "failed to load configuration")
	checkf(enableLogs(cfg.General.Log), "invalid log modules in configuration")

	switch args.mode {
	case renderMode:
		renderMain(args.Render, cfg)
	case playMode:
		playMain(args.Play, cfg)
	case disasmMode:
		disasmMain(args.Disasm, cfg)
	case infosMode:
		infosMain(args.Infos, cfg)
	case versionMode:
		printVersion()
	}
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("chiptune", version)
}
