// mymesh converts YAML scene documents into .my_mesh GPU buffers.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/mymesh/internal/config"
	"github.com/Faultbox/mymesh/internal/exporter"
	"github.com/Faultbox/mymesh/internal/logger"
	"github.com/Faultbox/mymesh/internal/scene"
	"github.com/Faultbox/mymesh/pkg/formats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "export", "x":
		return cmdExport(args, stdout, stderr)
	case "inspect", "info":
		return cmdInspect(args, stdout, stderr)
	case "config":
		return cmdConfig(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `mymesh - scene to .my_mesh exporter

Usage:
  mymesh <command> [options]

Commands:
  export [flags] <scene.yaml> [out.my_mesh]   Export all mesh objects of a scene
  inspect [-n N] <file.my_mesh>               Show header, counts and bounds
  config [flags] [-o path]                    Save the effective config (default: user config dir)

Export flags:
  -config <path>      Config file (default ./mymesh.yaml or the user config dir)
  -debug              Debug logging
  -include-hidden     Export hidden mesh objects
  -log-file <path>    Also write logs to a rotating file
  -output-dir <dir>   Where to put the output when no path is given

Examples:
  mymesh export level.yaml
  mymesh export -include-hidden level.yaml build/level.my_mesh
  mymesh inspect build/level.my_mesh
  mymesh config -include-hidden -output-dir build`)
}

func cmdExport(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Usage: mymesh export [flags] <scene.yaml> [out.my_mesh]")
		return 1
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	scenePath := fs.Arg(0)
	outputPath := outputPathFor(scenePath, fs.Arg(1), cfg.Export.OutputDir)

	src, err := scene.Load(scenePath)
	if err != nil {
		logger.Log.Error("loading scene failed", zap.String("scene", scenePath), zap.Error(err))
		return 1
	}

	stats, err := exporter.ExportFile(src, outputPath, exporter.Options{
		IncludeHidden: cfg.Export.IncludeHidden,
		FileMode:      cfg.Export.FileMode,
		Reporter:      exporter.LogReporter{Log: logger.Log},
		Log:           logger.Log,
	})
	if err != nil {
		return 1
	}

	fmt.Fprintf(stdout, "Exported: %s (%d meshes, %d triangles, %d vertices)\n",
		outputPath, stats.Meshes, stats.Triangles, stats.Vertices)
	return 0
}

// outputPathFor picks the explicit path, or the scene's base name with the
// .my_mesh extension in outputDir (the scene's directory when empty).
func outputPathFor(scenePath, explicit, outputDir string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath)) + formats.MyMeshExt
	if outputDir == "" {
		outputDir = filepath.Dir(scenePath)
	}
	return filepath.Join(outputDir, base)
}

func cmdConfig(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	out := fs.String("o", "", "Write the config here instead of the user config dir")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	path := *out
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.FileName)
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: saving config: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved config: %s\n", path)
	return 0
}

func cmdInspect(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("n", 0, "Also print the first N triangles and vertices")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Usage: mymesh inspect [-n N] <file.my_mesh>")
		return 1
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	m, err := formats.ParseMyMesh(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "File:      %s\n", fs.Arg(0))
	fmt.Fprintf(stdout, "Size:      %d bytes\n", len(data))
	fmt.Fprintf(stdout, "Indices:   %d\n", len(m.Indices))
	fmt.Fprintf(stdout, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(stdout, "Vertices:  %d\n", len(m.Vertices))
	if lo, hi, ok := m.Bounds(); ok {
		fmt.Fprintf(stdout, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}

	if *limit <= 0 {
		return 0
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Triangles:")
	for i := 0; i < m.TriangleCount() && i < *limit; i++ {
		fmt.Fprintf(stdout, "  %-6d %d %d %d\n", i, m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2])
	}
	fmt.Fprintln(stdout, "Vertices:")
	for i := 0; i < len(m.Vertices) && i < *limit; i++ {
		v := m.Vertices[i]
		fmt.Fprintf(stdout, "  %-6d pos=(%g, %g, %g) uv=(%g, %g)\n",
			i, v.Position[0], v.Position[1], v.Position[2], v.UV[0], v.UV[1])
	}
	return 0
}
