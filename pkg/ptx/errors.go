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
	"errors"
	"fmt"

	"github.com/CIuliusC/jit/internal/nvrtc"
)

// Step identifies the NVRTC call that failed.
type Step string

const (
	StepCreateProgram     Step = "create program"
	StepCompileProgram    Step = "compile program"
	StepGetProgramLogSize Step = "get program log size"
	StepGetProgramLog     Step = "get program log"
	StepGetPTXSize        Step = "get PTX size"
	StepGetPTX            Step = "get PTX"
	StepDestroyProgram    Step = "destroy program"
)

// Error is returned when any call into NVRTC does not succeed.
// All failures share this shape regardless of the step that produced them.
type Error struct {
	Step    Step
	Result  nvrtc.Result
	Message string
	// Log holds the compilation log when it could still be retrieved after a
	// failed compile step.
	Log string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed with error %s", e.Step, e.Message)
}

// Unwrap allows errors.Is to match against a specific nvrtc.Result.
func (e *Error) Unwrap() error {
	return e.Result
}

// IsCompilerServiceFailure reports whether err is, or wraps, an *Error.
func IsCompilerServiceFailure(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
