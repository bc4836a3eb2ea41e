//go:build cgo

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
	"unsafe"

	"github.com/NVIDIA/go-nvml/pkg/dl"
)

/*
#cgo LDFLAGS: -Wl,--unresolved-symbols=ignore-in-object-files

#include <stddef.h>
#include <stdlib.h>

typedef enum {
    NVRTC_SUCCESS = 0,
    NVRTC_ERROR_OUT_OF_MEMORY = 1,
    NVRTC_ERROR_PROGRAM_CREATION_FAILURE = 2,
    NVRTC_ERROR_INVALID_INPUT = 3,
    NVRTC_ERROR_INVALID_PROGRAM = 4,
    NVRTC_ERROR_INVALID_OPTION = 5,
    NVRTC_ERROR_COMPILATION = 6,
    NVRTC_ERROR_BUILTIN_OPERATION_FAILURE = 7,
    NVRTC_ERROR_NO_NAME_EXPRESSIONS_AFTER_COMPILATION = 8,
    NVRTC_ERROR_NO_LOWERED_NAMES_BEFORE_COMPILATION = 9,
    NVRTC_ERROR_NAME_EXPRESSION_NOT_VALID = 10,
    NVRTC_ERROR_INTERNAL_ERROR = 11,
    NVRTC_ERROR_TIME_FILE_WRITE_FAILED = 12
} nvrtcResult;

typedef struct _nvrtcProgram *nvrtcProgram;

const char *nvrtcGetErrorString(nvrtcResult result);
nvrtcResult nvrtcVersion(int *major, int *minor);
nvrtcResult nvrtcGetNumSupportedArchs(int *numArchs);
nvrtcResult nvrtcGetSupportedArchs(int *supportedArchs);
nvrtcResult nvrtcCreateProgram(nvrtcProgram *prog, const char *src, const char *name, int numHeaders, const char * const *headers, const char * const *includeNames);
nvrtcResult nvrtcDestroyProgram(nvrtcProgram *prog);
nvrtcResult nvrtcCompileProgram(nvrtcProgram prog, int numOptions, const char * const *options);
nvrtcResult nvrtcGetPTXSize(nvrtcProgram prog, size_t *ptxSizeRet);
nvrtcResult nvrtcGetPTX(nvrtcProgram prog, char *ptx);
nvrtcResult nvrtcGetProgramLogSize(nvrtcProgram prog, size_t *logSizeRet);
nvrtcResult nvrtcGetProgramLog(nvrtcProgram prog, char *log);
*/
import "C"

const defaultLibraryLoadFlags = dl.RTLD_LAZY | dl.RTLD_GLOBAL

func init() {
	newDynamicLibrary = func(path string, flags int) dynamicLibrary {
		return dl.New(path, flags)
	}
}

// cStringArray copies strs into a C array of C strings.
// The returned function releases the array and must always be called.
func cStringArray(strs []string) (**C.char, func()) {
	if len(strs) == 0 {
		return nil, func() {}
	}
	array := C.malloc(C.size_t(len(strs)) * C.size_t(unsafe.Sizeof(uintptr(0))))
	view := unsafe.Slice((**C.char)(array), len(strs))
	for i, s := range strs {
		view[i] = C.CString(s)
	}
	return (**C.char)(array), func() {
		for _, p := range view {
			C.free(unsafe.Pointer(p))
		}
		C.free(array)
	}
}

// nvrtcGetErrorString function as declared in nvrtc.h
func nvrtcGetErrorString(result Result) string {
	return C.GoString(C.nvrtcGetErrorString(C.nvrtcResult(result)))
}

// nvrtcVersion function as declared in nvrtc.h
func nvrtcVersion(major *int32, minor *int32) Result {
	cMajor := (*C.int)(unsafe.Pointer(major))
	cMinor := (*C.int)(unsafe.Pointer(minor))
	_ret := C.nvrtcVersion(cMajor, cMinor)

	return Result(_ret)
}

// nvrtcGetNumSupportedArchs function as declared in nvrtc.h
func nvrtcGetNumSupportedArchs(numArchs *int32) Result {
	cNumArchs := (*C.int)(unsafe.Pointer(numArchs))
	_ret := C.nvrtcGetNumSupportedArchs(cNumArchs)

	return Result(_ret)
}

// nvrtcGetSupportedArchs function as declared in nvrtc.h
func nvrtcGetSupportedArchs(archs []int32) Result {
	cArchs := (*C.int)(unsafe.Pointer(&archs[0]))
	_ret := C.nvrtcGetSupportedArchs(cArchs)

	return Result(_ret)
}

// nvrtcCreateProgram function as declared in nvrtc.h
func nvrtcCreateProgram(prog *Program, src string, name string, headers []string, includeNames []string) Result {
	cSrc := C.CString(src)
	defer C.free(unsafe.Pointer(cSrc))

	var cName *C.char
	if name != "" {
		cName = C.CString(name)
		defer C.free(unsafe.Pointer(cName))
	}

	cHeaders, freeHeaders := cStringArray(headers)
	defer freeHeaders()
	cIncludeNames, freeIncludeNames := cStringArray(includeNames)
	defer freeIncludeNames()

	var cProg C.nvrtcProgram
	_ret := C.nvrtcCreateProgram(&cProg, cSrc, cName, C.int(len(headers)), cHeaders, cIncludeNames)
	prog.handle = unsafe.Pointer(cProg)

	return Result(_ret)
}

// nvrtcDestroyProgram function as declared in nvrtc.h
func nvrtcDestroyProgram(prog *Program) Result {
	cProg := C.nvrtcProgram(prog.handle)
	_ret := C.nvrtcDestroyProgram(&cProg)
	prog.handle = unsafe.Pointer(cProg)

	return Result(_ret)
}

// nvrtcCompileProgram function as declared in nvrtc.h
func nvrtcCompileProgram(prog Program, options []string) Result {
	cOptions, freeOptions := cStringArray(options)
	defer freeOptions()

	_ret := C.nvrtcCompileProgram(C.nvrtcProgram(prog.handle), C.int(len(options)), cOptions)

	return Result(_ret)
}

// nvrtcGetPTXSize function as declared in nvrtc.h
func nvrtcGetPTXSize(prog Program, size *uint64) Result {
	cSize := (*C.size_t)(unsafe.Pointer(size))
	_ret := C.nvrtcGetPTXSize(C.nvrtcProgram(prog.handle), cSize)

	return Result(_ret)
}

// nvrtcGetPTX function as declared in nvrtc.h
func nvrtcGetPTX(prog Program, ptx []byte) Result {
	cPTX := (*C.char)(unsafe.Pointer(&ptx[0]))
	_ret := C.nvrtcGetPTX(C.nvrtcProgram(prog.handle), cPTX)

	return Result(_ret)
}

// nvrtcGetProgramLogSize function as declared in nvrtc.h
func nvrtcGetProgramLogSize(prog Program, size *uint64) Result {
	cSize := (*C.size_t)(unsafe.Pointer(size))
	_ret := C.nvrtcGetProgramLogSize(C.nvrtcProgram(prog.handle), cSize)

	return Result(_ret)
}

// nvrtcGetProgramLog function as declared in nvrtc.h
func nvrtcGetProgramLog(prog Program, log []byte) Result {
	cLog := (*C.char)(unsafe.Pointer(&log[0]))
	_ret := C.nvrtcGetProgramLog(C.nvrtcProgram(prog.handle), cLog)

	return Result(_ret)
}
