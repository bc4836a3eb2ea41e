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
	"sync"

	"github.com/pkg/errors"
)

const defaultLibraryName = "libnvrtc.so"

var errLibraryNotLoaded = errors.New("library not loaded")

// requiredSymbols are looked up when the library is loaded. The remaining
// entry points are optional and are checked on use.
var requiredSymbols = []string{
	"nvrtcGetErrorString",
	"nvrtcCreateProgram",
	"nvrtcCompileProgram",
	"nvrtcGetProgramLogSize",
	"nvrtcGetProgramLog",
	"nvrtcGetPTXSize",
	"nvrtcGetPTX",
	"nvrtcDestroyProgram",
}

//go:generate moq -rm -fmt=goimports -out mock/nvrtc.go -pkg mock . Interface:Interface

// Interface defines the subset of the NVRTC API used to compile device code.
type Interface interface {
	Init() error
	Shutdown() error
	Version() (int, int, Result)
	GetSupportedArchs() ([]int, Result)
	CreateProgram(src string, name string, headers []string, includeNames []string) (Program, Result)
	CompileProgram(prog Program, options []string) Result
	GetProgramLogSize(prog Program) (int, Result)
	GetProgramLog(prog Program, log []byte) Result
	GetPTXSize(prog Program) (int, Result)
	GetPTX(prog Program, ptx []byte) Result
	DestroyProgram(prog *Program) Result
	ErrorString(r Result) string
}

type dynamicLibrary interface {
	Open() error
	Close() error
	Lookup(string) error
}

// newDynamicLibrary is a function variable that can be overridden for testing.
var newDynamicLibrary func(path string, flags int) dynamicLibrary

// library represents a loaded libnvrtc.
type library struct {
	sync.Mutex
	path     string
	flags    int
	refcount int
	dl       dynamicLibrary
}

var _ Interface = (*library)(nil)

// Option defines a function for passing options to the New() call
type Option func(*library)

// WithLibraryPath sets the path to the libnvrtc shared library.
func WithLibraryPath(path string) Option {
	return func(l *library) {
		l.path = path
	}
}

// New creates a new instance of the NVRTC interface.
// The library is loaded on the first call to Init.
func New(opts ...Option) Interface {
	l := &library{
		path:  defaultLibraryName,
		flags: defaultLibraryLoadFlags,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Init loads the library and checks that the required symbols are present.
// Calls to Init are reference counted and must be balanced by calls to Shutdown.
func (l *library) Init() error {
	l.Lock()
	defer l.Unlock()

	if l.refcount > 0 {
		l.refcount++
		return nil
	}

	lib := newDynamicLibrary(l.path, l.flags)
	if err := lib.Open(); err != nil {
		return errors.Wrapf(err, "error opening %s", l.path)
	}
	for _, symbol := range requiredSymbols {
		if err := lib.Lookup(symbol); err != nil {
			_ = lib.Close()
			return errors.Wrapf(err, "error looking up %s in %s", symbol, l.path)
		}
	}

	l.dl = lib
	l.refcount = 1
	return nil
}

// Shutdown releases a reference to the library, unloading it when the last
// reference is released.
func (l *library) Shutdown() error {
	l.Lock()
	defer l.Unlock()

	if l.refcount == 0 {
		return errLibraryNotLoaded
	}
	l.refcount--
	if l.refcount > 0 {
		return nil
	}
	if err := l.dl.Close(); err != nil {
		return errors.Wrapf(err, "error closing %s", l.path)
	}
	l.dl = nil
	return nil
}

func (l *library) loaded() bool {
	l.Lock()
	defer l.Unlock()
	return l.dl != nil
}

func (l *library) has(symbol string) bool {
	l.Lock()
	defer l.Unlock()
	return l.dl != nil && l.dl.Lookup(symbol) == nil
}

// Version returns the major and minor version of the loaded NVRTC.
func (l *library) Version() (int, int, Result) {
	if !l.loaded() {
		return 0, 0, ERROR_LIBRARY_NOT_LOADED
	}
	if !l.has("nvrtcVersion") {
		return 0, 0, ERROR_FUNCTION_NOT_FOUND
	}
	var major, minor int32
	r := nvrtcVersion(&major, &minor)
	return int(major), int(minor), r
}

// GetSupportedArchs returns the SM architectures the loaded NVRTC can target,
// for example 75 for sm_75.
func (l *library) GetSupportedArchs() ([]int, Result) {
	if !l.loaded() {
		return nil, ERROR_LIBRARY_NOT_LOADED
	}
	if !l.has("nvrtcGetNumSupportedArchs") || !l.has("nvrtcGetSupportedArchs") {
		return nil, ERROR_FUNCTION_NOT_FOUND
	}

	var count int32
	if r := nvrtcGetNumSupportedArchs(&count); r != SUCCESS {
		return nil, r
	}
	if count == 0 {
		return nil, SUCCESS
	}

	archs := make([]int32, count)
	if r := nvrtcGetSupportedArchs(archs); r != SUCCESS {
		return nil, r
	}

	supported := make([]int, len(archs))
	for i, a := range archs {
		supported[i] = int(a)
	}
	return supported, SUCCESS
}

// CreateProgram creates a program from the specified source.
func (l *library) CreateProgram(src string, name string, headers []string, includeNames []string) (Program, Result) {
	if !l.loaded() {
		return Program{}, ERROR_LIBRARY_NOT_LOADED
	}
	if len(headers) != len(includeNames) {
		return Program{}, ERROR_INVALID_INPUT
	}
	var prog Program
	r := nvrtcCreateProgram(&prog, src, name, headers, includeNames)
	return prog, r
}

// CompileProgram compiles the program with the specified options.
func (l *library) CompileProgram(prog Program, options []string) Result {
	if !l.loaded() {
		return ERROR_LIBRARY_NOT_LOADED
	}
	return nvrtcCompileProgram(prog, options)
}

// GetProgramLogSize returns the size of the compilation log including the trailing NUL.
func (l *library) GetProgramLogSize(prog Program) (int, Result) {
	if !l.loaded() {
		return 0, ERROR_LIBRARY_NOT_LOADED
	}
	var size uint64
	r := nvrtcGetProgramLogSize(prog, &size)
	return int(size), r
}

// GetProgramLog copies the compilation log into log, which must be at least
// GetProgramLogSize bytes long. A zero-length buffer is left untouched.
func (l *library) GetProgramLog(prog Program, log []byte) Result {
	if !l.loaded() {
		return ERROR_LIBRARY_NOT_LOADED
	}
	if len(log) == 0 {
		return SUCCESS
	}
	return nvrtcGetProgramLog(prog, log)
}

// GetPTXSize returns the size of the generated PTX including the trailing NUL.
func (l *library) GetPTXSize(prog Program) (int, Result) {
	if !l.loaded() {
		return 0, ERROR_LIBRARY_NOT_LOADED
	}
	var size uint64
	r := nvrtcGetPTXSize(prog, &size)
	return int(size), r
}

// GetPTX copies the generated PTX into ptx, which must be at least GetPTXSize
// bytes long. A zero-length buffer is left untouched.
func (l *library) GetPTX(prog Program, ptx []byte) Result {
	if !l.loaded() {
		return ERROR_LIBRARY_NOT_LOADED
	}
	if len(ptx) == 0 {
		return SUCCESS
	}
	return nvrtcGetPTX(prog, ptx)
}

// DestroyProgram destroys the program and clears the handle.
func (l *library) DestroyProgram(prog *Program) Result {
	if !l.loaded() {
		return ERROR_LIBRARY_NOT_LOADED
	}
	return nvrtcDestroyProgram(prog)
}

// ErrorString returns the description NVRTC associates with r.
func (l *library) ErrorString(r Result) string {
	if r >= ERROR_LIBRARY_NOT_LOADED || !l.loaded() {
		return r.String()
	}
	return nvrtcGetErrorString(r)
}
