// Package main is the entry point for the mtl2gl converter.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mtl2gl/internal/config"
	"github.com/Faultbox/mtl2gl/internal/convert"
	"github.com/Faultbox/mtl2gl/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if config.ObjFile() == "" || config.MtlFile() == "" {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	opts, err := buildOptions(cfg)
	if err != nil {
		logger.Error("invalid options", zap.Error(err))
		os.Exit(1)
	}

	if _, err := convert.Run(opts); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mtl2gl - converts OBJ and MTL files to C arrays for OpenGL ES

Usage:
  mtl2gl -objfile <model.obj> -mtlfile <model.mtl> [options]

Options:
  -objfile <path>   Input OBJ file (required)
  -mtlfile <path>   Input MTL file (required)
  -outdir <path>    Output directory (default: next to each input)
  -scale <float>    Explicit scale factor (default: fit longest side to 1 unit)
  -center <X/Y/Z>   Explicit center point (default: vertex centroid)
  -noScale          Keep the original size (scale factor 1)
  -noMove           Keep the original position (center 0/0/0)
  -verbose          Log inputs, options, and statistics
  -debug            Log debug details
  -config <path>    Config file (default: ./mtl2gl.yaml)

Examples:
  mtl2gl -objfile cube.obj -mtlfile cube.mtl
  mtl2gl -objfile cube.obj -mtlfile cube.mtl -noScale -noMove
  mtl2gl -objfile cube.obj -mtlfile cube.mtl -center 0/1/0 -scale 0.5`)
}

// buildOptions maps the layered configuration onto pipeline options.
// noScale forces scale factor 1 and noMove forces center 0/0/0, each
// winning over an explicit -scale or -center value.
func buildOptions(cfg *config.Config) (convert.Options, error) {
	opts := convert.Options{
		ObjPath: config.ObjFile(),
		MtlPath: config.MtlFile(),
		OutDir:  cfg.Output.Dir,
	}

	center := cfg.Convert.Center
	if cfg.Convert.NoMove {
		center = "0/0/0"
	}
	if center != "" {
		c, err := convert.ParseCenter(center)
		if err != nil {
			return convert.Options{}, err
		}
		opts.Center = c
	}

	if cfg.Convert.NoScale {
		one := 1.0
		opts.Scale = &one
	} else if cfg.Convert.Scale != 0 {
		scale := cfg.Convert.Scale
		opts.Scale = &scale
	}

	return opts, nil
}
