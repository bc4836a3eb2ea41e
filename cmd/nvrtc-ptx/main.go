/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	cli "github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	spec "github.com/CIuliusC/jit/api/config/v1"
	"github.com/CIuliusC/jit/internal/info"
	"github.com/CIuliusC/jit/internal/nvrtc"
	"github.com/CIuliusC/jit/pkg/ptx"
)

// newLibrary is a function variable that can be overridden for testing.
var newLibrary = func(path string) nvrtc.Interface {
	return nvrtc.New(nvrtc.WithLibraryPath(path))
}

func main() {
	var config *spec.Config

	c := cli.NewApp()
	c.Name = "nvrtc-ptx"
	c.Usage = "compile CUDA device code to PTX using NVRTC"
	c.UsageText = "nvrtc-ptx [options] <file.cu|-> [<file.cu> ...]"
	c.Version = info.Get().String()
	c.Before = func(ctx *cli.Context) error {
		if err := setVerbosity(ctx.Int("verbosity")); err != nil {
			return err
		}
		cfg, err := loadConfig(ctx, c.Flags)
		if err != nil {
			return err
		}
		config = cfg
		return nil
	}
	c.Action = func(ctx *cli.Context) error {
		return start(ctx, config)
	}

	c.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    spec.FlagArch,
			Value:   ptx.DefaultArchitecture,
			Usage:   "the GPU architecture to compile for, passed as --gpu-architecture (e.g. compute_75, sm_80)",
			EnvVars: []string{"NVRTC_ARCH"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagFMAD,
			Value:   false,
			Usage:   "contract floating-point multiplies and adds into fused multiply-add operations",
			EnvVars: []string{"NVRTC_FMAD"},
		},
		&cli.StringSliceFlag{
			Name:    spec.FlagOption,
			Usage:   "an additional option passed verbatim to NVRTC; may be repeated",
			EnvVars: []string{"NVRTC_OPTIONS"},
		},
		&cli.StringFlag{
			Name:  spec.FlagProgramName,
			Usage: "the program name reported in diagnostics; defaults to the source file name",
		},
		&cli.StringFlag{
			Name:    spec.FlagOutputDir,
			Aliases: []string{"o"},
			Usage:   "the directory to write <name>.ptx files to; if unset PTX is written to stdout",
			EnvVars: []string{"NVRTC_OUTPUT_DIR"},
		},
		&cli.BoolFlag{
			Name:  spec.FlagPrintPTX,
			Value: false,
			Usage: "also print the PTX to stdout when writing it to --output-dir",
		},
		&cli.IntFlag{
			Name:    spec.FlagParallelism,
			Value:   spec.DefaultParallelism,
			Usage:   "the maximum number of source files compiled concurrently",
			EnvVars: []string{"NVRTC_PARALLELISM"},
		},
		&cli.StringFlag{
			Name:    spec.FlagNvrtcLibrary,
			Value:   spec.DefaultNvrtcLibrary,
			Usage:   "the name or path of the NVRTC shared library",
			EnvVars: []string{"NVRTC_LIBRARY"},
		},
		&cli.BoolFlag{
			Name:  spec.FlagWatch,
			Value: false,
			Usage: "recompile the source files whenever they change",
		},
		&cli.DurationFlag{
			Name:  spec.FlagWatchDebounce,
			Value: spec.DefaultWatchDebounce,
			Usage: "the time to wait for further changes before recompiling in --watch mode",
		},
		&cli.StringFlag{
			Name:    spec.FlagConfigFile,
			Usage:   "the path to a config file as an alternative to command line options or environment variables",
			EnvVars: []string{"CONFIG_FILE"},
		},
		&cli.IntFlag{
			Name:    "verbosity",
			Value:   0,
			Usage:   "the klog verbosity level",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}

	c.Commands = []*cli.Command{
		{
			Name:  "info",
			Usage: "print the NVRTC version and the architectures it supports",
			Action: func(ctx *cli.Context) error {
				return printInfo(ctx, config)
			},
		},
	}

	if err := c.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(1)
	}
}

// setVerbosity applies the requested verbosity to klog.
func setVerbosity(level int) error {
	flags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(flags)
	if err := flags.Set("v", strconv.Itoa(level)); err != nil {
		return fmt.Errorf("unable to set log verbosity: %v", err)
	}
	return nil
}

// loadConfig loads the config from the spec file and validates it.
func loadConfig(c *cli.Context, flags []cli.Flag) (*spec.Config, error) {
	config, err := spec.NewConfig(c, flags)
	if err != nil {
		return nil, fmt.Errorf("unable to finalize config: %v", err)
	}
	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate flags: %v", err)
	}
	return config, nil
}

func start(c *cli.Context, config *spec.Config) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no source files specified")
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %v", err)
	}
	klog.V(2).Infof("Running with config:\n%v", string(configJSON))

	lib := newLibrary(*config.Flags.NvrtcLibrary)
	if err := lib.Init(); err != nil {
		return fmt.Errorf("failed to initialize NVRTC: %v", err)
	}
	defer func() {
		if err := lib.Shutdown(); err != nil {
			klog.Warningf("Failed to shutdown NVRTC: %v", err)
		}
	}()

	r := newRunner(lib, config, os.Stdout)
	if *config.Flags.Output.Watch {
		return r.watch(c.Args().Slice())
	}

	sources, err := readSources(c.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}
	return r.compileAll(sources)
}

func printInfo(c *cli.Context, config *spec.Config) error {
	lib := newLibrary(*config.Flags.NvrtcLibrary)
	if err := lib.Init(); err != nil {
		return fmt.Errorf("failed to initialize NVRTC: %v", err)
	}
	defer func() {
		if err := lib.Shutdown(); err != nil {
			klog.Warningf("Failed to shutdown NVRTC: %v", err)
		}
	}()

	fmt.Fprintf(c.App.Writer, "nvrtc-ptx version: %v\n", info.Get().Version)
	fmt.Fprintf(c.App.Writer, "NVRTC library: %v\n", *config.Flags.NvrtcLibrary)

	major, minor, r := lib.Version()
	if r != nvrtc.SUCCESS {
		return fmt.Errorf("failed to get NVRTC version: %v", lib.ErrorString(r))
	}
	fmt.Fprintf(c.App.Writer, "NVRTC version: %d.%d\n", major, minor)

	archs, r := lib.GetSupportedArchs()
	switch r {
	case nvrtc.SUCCESS:
		fmt.Fprintf(c.App.Writer, "Supported architectures: %v\n", formatArchs(archs))
	case nvrtc.ERROR_FUNCTION_NOT_FOUND:
		klog.Warning("The loaded NVRTC does not report its supported architectures")
	default:
		return fmt.Errorf("failed to get supported architectures: %v", lib.ErrorString(r))
	}
	return nil
}

func formatArchs(archs []int) string {
	var s string
	for i, a := range archs {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("sm_%d", a)
	}
	return s
}
