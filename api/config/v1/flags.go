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

package v1

import (
	"encoding/json"
	"fmt"

	cli "github.com/urfave/cli/v2"
)

// prt returns a reference to whatever type is passed into it
func ptr[T any](x T) *T {
	return &x
}

// updateFromCLIFlag conditionally updates the config flag at 'pflag' to the value of the CLI flag with name 'flagName'
func updateFromCLIFlag[T any](pflag **T, c *cli.Context, flagName string) {
	if c.IsSet(flagName) || *pflag == (*T)(nil) {
		switch flag := any(pflag).(type) {
		case **string:
			*flag = ptr(c.String(flagName))
		case **bool:
			*flag = ptr(c.Bool(flagName))
		case **int:
			*flag = ptr(c.Int(flagName))
		case **Duration:
			*flag = ptr(Duration(c.Duration(flagName)))
		case **optionsFlag:
			*flag = ptr((optionsFlag)(c.StringSlice(flagName)))
		default:
			panic(fmt.Errorf("unsupported flag type for %v: %T", flagName, flag))
		}
	}
}

// Flags holds the full list of flags used to configure nvrtc-ptx.
type Flags struct {
	CommandLineFlags
}

// CommandLineFlags holds the list of command line flags used to configure nvrtc-ptx.
type CommandLineFlags struct {
	NvrtcLibrary *string                   `json:"nvrtcLibrary"       yaml:"nvrtcLibrary"`
	Parallelism  *int                      `json:"parallelism"        yaml:"parallelism"`
	Compiler     *CompilerCommandLineFlags `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Output       *OutputCommandLineFlags   `json:"output,omitempty"   yaml:"output,omitempty"`
}

// CompilerCommandLineFlags holds the options passed to NVRTC.
type CompilerCommandLineFlags struct {
	Arch        *string      `json:"arch"        yaml:"arch"`
	FMAD        *bool        `json:"fmad"        yaml:"fmad"`
	Options     *optionsFlag `json:"options"     yaml:"options"`
	ProgramName *string      `json:"programName" yaml:"programName"`
}

// OutputCommandLineFlags holds the flags controlling where results are written.
type OutputCommandLineFlags struct {
	OutputDir     *string   `json:"outputDir"     yaml:"outputDir"`
	PrintPTX      *bool     `json:"printPTX"      yaml:"printPTX"`
	Watch         *bool     `json:"watch"         yaml:"watch"`
	WatchDebounce *Duration `json:"watchDebounce" yaml:"watchDebounce"`
}

// optionsFlag is a custom type for parsing the compiler options flag.
type optionsFlag []string

// UnmarshalJSON implements the custom unmarshaler for the optionsFlag type.
// Since this option allows a single string or a list of strings to be specified,
// we need to handle both cases.
func (f *optionsFlag) UnmarshalJSON(b []byte) error {
	var single string
	err := json.Unmarshal(b, &single)
	if err == nil {
		*f = []string{single}
		return nil
	}

	var multi []string
	if err := json.Unmarshal(b, &multi); err == nil {
		*f = multi
		return nil
	}

	return fmt.Errorf("invalid options: %v", string(b))
}

// UpdateFromCLIFlags updates Flags from settings in the cli Flags if they are set.
func (f *Flags) UpdateFromCLIFlags(c *cli.Context, flags []cli.Flag) {
	for _, flag := range flags {
		for _, n := range flag.Names() {
			// Common flags
			switch n {
			case FlagNvrtcLibrary:
				updateFromCLIFlag(&f.NvrtcLibrary, c, n)
			case FlagParallelism:
				updateFromCLIFlag(&f.Parallelism, c, n)
			}
			// Compiler flags
			if f.Compiler == nil {
				f.Compiler = &CompilerCommandLineFlags{}
			}
			switch n {
			case FlagArch:
				updateFromCLIFlag(&f.Compiler.Arch, c, n)
			case FlagFMAD:
				updateFromCLIFlag(&f.Compiler.FMAD, c, n)
			case FlagOption:
				updateFromCLIFlag(&f.Compiler.Options, c, n)
			case FlagProgramName:
				updateFromCLIFlag(&f.Compiler.ProgramName, c, n)
			}
			// Output flags
			if f.Output == nil {
				f.Output = &OutputCommandLineFlags{}
			}
			switch n {
			case FlagOutputDir:
				updateFromCLIFlag(&f.Output.OutputDir, c, n)
			case FlagPrintPTX:
				updateFromCLIFlag(&f.Output.PrintPTX, c, n)
			case FlagWatch:
				updateFromCLIFlag(&f.Output.Watch, c, n)
			case FlagWatchDebounce:
				updateFromCLIFlag(&f.Output.WatchDebounce, c, n)
			}
		}
	}
}
