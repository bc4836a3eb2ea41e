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

import "time"

// Defaults for the command line flags.
const (
	DefaultNvrtcLibrary  = "libnvrtc.so"
	DefaultParallelism   = 1
	DefaultWatchDebounce = 100 * time.Millisecond
)

// Command line flag names - Common flags
const (
	FlagNvrtcLibrary = "nvrtc-library"
	FlagParallelism  = "parallelism"
	FlagConfigFile   = "config-file"
)

// Command line flag names - Compiler flags
const (
	FlagArch        = "arch"
	FlagFMAD        = "fmad"
	FlagOption      = "option"
	FlagProgramName = "program-name"
)

// Command line flag names - Output flags
const (
	FlagOutputDir     = "output-dir"
	FlagPrintPTX      = "print-ptx"
	FlagWatch         = "watch"
	FlagWatchDebounce = "watch-debounce"
)
