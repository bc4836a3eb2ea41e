/**
# Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package ptx

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultArchitecture is the virtual architecture targeted when none is configured.
const DefaultArchitecture = "compute_75"

var architecturePattern = regexp.MustCompile(`^(compute|sm|lto)_[0-9]{2,3}[af]?$`)

// Config holds the options passed to NVRTC on every compilation.
type Config struct {
	// Architecture is passed as --gpu-architecture, for example compute_75 or sm_80.
	Architecture string
	// FMAD controls whether multiply and add are contracted into a single
	// fused multiply-add. It is disabled by default.
	FMAD bool
	// Options are appended verbatim after the architecture and fmad options.
	Options []string
	// ProgramName is the name NVRTC reports in diagnostics.
	// If empty NVRTC uses "default_program".
	ProgramName string
}

// DefaultConfig returns the configuration used when none is specified.
func DefaultConfig() Config {
	return Config{
		Architecture: DefaultArchitecture,
		FMAD:         false,
	}
}

// Validate checks that the configured architecture is well formed.
func (c Config) Validate() error {
	if !architecturePattern.MatchString(c.Architecture) {
		return fmt.Errorf("invalid GPU architecture %q: expected compute_XX, sm_XX or lto_XX", c.Architecture)
	}
	for _, o := range c.Options {
		if o == "" {
			return fmt.Errorf("empty compiler option")
		}
	}
	return nil
}

// CompileOptions returns the option list passed to nvrtcCompileProgram.
func (c Config) CompileOptions() []string {
	options := []string{
		"--gpu-architecture=" + c.Architecture,
		"--fmad=" + strconv.FormatBool(c.FMAD),
	}
	return append(options, c.Options...)
}
