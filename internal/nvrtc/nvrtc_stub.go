//go:build !cgo

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

import "errors"

// RTLD_LAZY | RTLD_GLOBAL as defined by glibc.
const defaultLibraryLoadFlags = 0x00001 | 0x00100

var errCgoDisabled = errors.New("dynamic loading requires cgo")

type unsupportedLibrary struct{}

func (unsupportedLibrary) Open() error         { return errCgoDisabled }
func (unsupportedLibrary) Close() error        { return nil }
func (unsupportedLibrary) Lookup(string) error { return errCgoDisabled }

func init() {
	newDynamicLibrary = func(string, int) dynamicLibrary {
		return unsupportedLibrary{}
	}
}

func nvrtcGetErrorString(result Result) string { return result.String() }

func nvrtcVersion(*int32, *int32) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetNumSupportedArchs(*int32) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetSupportedArchs([]int32) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcCreateProgram(*Program, string, string, []string, []string) Result {
	return ERROR_LIBRARY_NOT_LOADED
}

func nvrtcDestroyProgram(*Program) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcCompileProgram(Program, []string) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetPTXSize(Program, *uint64) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetPTX(Program, []byte) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetProgramLogSize(Program, *uint64) Result { return ERROR_LIBRARY_NOT_LOADED }

func nvrtcGetProgramLog(Program, []byte) Result { return ERROR_LIBRARY_NOT_LOADED }
