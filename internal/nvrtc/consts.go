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

package nvrtc

import (
	"fmt"
	"unsafe"
)

// Result represents the nvrtcResult return type.
type Result int32

const (
	SUCCESS                                     Result = 0
	ERROR_OUT_OF_MEMORY                         Result = 1
	ERROR_PROGRAM_CREATION_FAILURE              Result = 2
	ERROR_INVALID_INPUT                         Result = 3
	ERROR_INVALID_PROGRAM                       Result = 4
	ERROR_INVALID_OPTION                        Result = 5
	ERROR_COMPILATION                           Result = 6
	ERROR_BUILTIN_OPERATION_FAILURE             Result = 7
	ERROR_NO_NAME_EXPRESSIONS_AFTER_COMPILATION Result = 8
	ERROR_NO_LOWERED_NAMES_BEFORE_COMPILATION   Result = 9
	ERROR_NAME_EXPRESSION_NOT_VALID             Result = 10
	ERROR_INTERNAL_ERROR                        Result = 11
	ERROR_TIME_FILE_WRITE_FAILED                Result = 12
)

// The following results are never returned by libnvrtc itself. They report
// problems loading the library or resolving its symbols.
const (
	ERROR_LIBRARY_NOT_LOADED Result = 1000
	ERROR_FUNCTION_NOT_FOUND Result = 1001
)

var resultNames = map[Result]string{
	SUCCESS:                                     "NVRTC_SUCCESS",
	ERROR_OUT_OF_MEMORY:                         "NVRTC_ERROR_OUT_OF_MEMORY",
	ERROR_PROGRAM_CREATION_FAILURE:              "NVRTC_ERROR_PROGRAM_CREATION_FAILURE",
	ERROR_INVALID_INPUT:                         "NVRTC_ERROR_INVALID_INPUT",
	ERROR_INVALID_PROGRAM:                       "NVRTC_ERROR_INVALID_PROGRAM",
	ERROR_INVALID_OPTION:                        "NVRTC_ERROR_INVALID_OPTION",
	ERROR_COMPILATION:                           "NVRTC_ERROR_COMPILATION",
	ERROR_BUILTIN_OPERATION_FAILURE:             "NVRTC_ERROR_BUILTIN_OPERATION_FAILURE",
	ERROR_NO_NAME_EXPRESSIONS_AFTER_COMPILATION: "NVRTC_ERROR_NO_NAME_EXPRESSIONS_AFTER_COMPILATION",
	ERROR_NO_LOWERED_NAMES_BEFORE_COMPILATION:   "NVRTC_ERROR_NO_LOWERED_NAMES_BEFORE_COMPILATION",
	ERROR_NAME_EXPRESSION_NOT_VALID:             "NVRTC_ERROR_NAME_EXPRESSION_NOT_VALID",
	ERROR_INTERNAL_ERROR:                        "NVRTC_ERROR_INTERNAL_ERROR",
	ERROR_TIME_FILE_WRITE_FAILED:                "NVRTC_ERROR_TIME_FILE_WRITE_FAILED",
	ERROR_LIBRARY_NOT_LOADED:                    "NVRTC library not loaded",
	ERROR_FUNCTION_NOT_FOUND:                    "NVRTC function not found",
}

// String returns the name of the result as spelled by nvrtcGetErrorString.
// It does not require the library to be loaded.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("NVRTC_ERROR unknown (%d)", int32(r))
}

// Error allows a Result to be used as an error.
func (r Result) Error() string {
	return r.String()
}

// Program is an opaque handle to an nvrtcProgram.
// The zero value does not refer to a program.
type Program struct {
	handle unsafe.Pointer
}

// IsNil reports whether p refers to a program.
func (p Program) IsNil() bool {
	return p.handle == nil
}
