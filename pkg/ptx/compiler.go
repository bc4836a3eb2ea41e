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
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/CIuliusC/jit/internal/logger"
	"github.com/CIuliusC/jit/internal/nvrtc"
)

// exit and stderr are variables so that MustCompile can be tested.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Compiler compiles CUDA device source to PTX using NVRTC.
//
// A Compiler holds no per-compilation state. It may be used from multiple
// goroutines provided the underlying NVRTC library is safe for concurrent use
// on distinct programs, which libnvrtc is.
type Compiler struct {
	lib    nvrtc.Interface
	config Config
	logger logger.Interface

	outputLock sync.Mutex
	logOutput  io.Writer
	ptxTrace   io.Writer
}

// Option defines a function for passing options to the New() call.
type Option func(*Compiler)

// New creates a Compiler backed by the specified NVRTC library.
// The library must be initialized by the caller.
func New(lib nvrtc.Interface, opts ...Option) *Compiler {
	c := &Compiler{
		lib:       lib,
		config:    DefaultConfig(),
		logger:    logger.ToKlog,
		logOutput: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithConfig sets the compilation options.
func WithConfig(config Config) Option {
	return func(c *Compiler) {
		c.config = config
	}
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger logger.Interface) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithLogOutput sets where the NVRTC compilation log is written.
// It defaults to os.Stdout. A nil writer discards the log.
func WithLogOutput(w io.Writer) Option {
	return func(c *Compiler) {
		c.logOutput = w
	}
}

// WithPTXTrace enables writing every compiled PTX to w in addition to
// returning it.
func WithPTXTrace(w io.Writer) Option {
	return func(c *Compiler) {
		c.ptxTrace = w
	}
}

// Config returns the compilation options used by the Compiler.
func (c *Compiler) Config() Config {
	return c.config
}

// Compile compiles source to PTX.
//
// The program created for source is always destroyed before Compile returns.
// The compilation log is written to the log output whether or not compilation
// succeeded. Any NVRTC failure is returned as an *Error and no PTX is returned.
// Empty source and source containing a NUL byte are rejected as invalid input
// before a program is created.
func (c *Compiler) Compile(source string) (result PTX, rerr error) {
	if source == "" || strings.ContainsRune(source, 0) {
		return nil, c.failure(StepCreateProgram, nvrtc.ERROR_INVALID_INPUT)
	}

	prog, r := c.lib.CreateProgram(source, c.config.ProgramName, nil, nil)
	if r != nvrtc.SUCCESS {
		return nil, c.failure(StepCreateProgram, r)
	}
	c.logger.Debugf("Created program %q", c.config.ProgramName)

	defer func() {
		r := c.lib.DestroyProgram(&prog)
		if r == nvrtc.SUCCESS {
			c.logger.Debugf("Destroyed program %q", c.config.ProgramName)
			return
		}
		err := c.failure(StepDestroyProgram, r)
		if rerr != nil {
			c.logger.Warningf("%v", err)
			return
		}
		result, rerr = nil, err
	}()

	options := c.config.CompileOptions()
	c.logger.Debugf("Compiling program %q with options %v", c.config.ProgramName, options)
	compileResult := c.lib.CompileProgram(prog, options)

	log, err := c.programLog(prog)
	if compileResult != nvrtc.SUCCESS {
		compileErr := c.failure(StepCompileProgram, compileResult)
		if err == nil {
			compileErr.Log = log
			c.writeLog(log)
		}
		return nil, compileErr
	}
	if err != nil {
		return nil, err
	}
	c.writeLog(log)

	ptx, err := c.ptx(prog)
	if err != nil {
		return nil, err
	}
	c.trace(ptx)

	return ptx, nil
}

// MustCompile compiles source and terminates the process if compilation
// fails. The failure is reported on stderr and the exit code is 1.
func (c *Compiler) MustCompile(source string) PTX {
	ptx, err := c.Compile(source)
	if err != nil {
		fmt.Fprintf(stderr, "\nerror: %v\n", err)
		exit(1)
		return nil
	}
	return ptx
}

// programLog retrieves the compilation log into a buffer of exactly the
// reported size.
func (c *Compiler) programLog(prog nvrtc.Program) (string, error) {
	size, r := c.lib.GetProgramLogSize(prog)
	if r != nvrtc.SUCCESS {
		return "", c.failure(StepGetProgramLogSize, r)
	}
	log := make([]byte, size)
	if r := c.lib.GetProgramLog(prog, log); r != nvrtc.SUCCESS {
		return "", c.failure(StepGetProgramLog, r)
	}
	return string(bytes.TrimRight(log, "\x00")), nil
}

// ptx retrieves the generated PTX into a buffer of exactly the reported size.
func (c *Compiler) ptx(prog nvrtc.Program) (PTX, error) {
	size, r := c.lib.GetPTXSize(prog)
	if r != nvrtc.SUCCESS {
		return nil, c.failure(StepGetPTXSize, r)
	}
	ptx := make(PTX, size)
	if r := c.lib.GetPTX(prog, ptx); r != nvrtc.SUCCESS {
		return nil, c.failure(StepGetPTX, r)
	}
	return ptx, nil
}

func (c *Compiler) failure(step Step, r nvrtc.Result) *Error {
	return &Error{
		Step:    step,
		Result:  r,
		Message: c.lib.ErrorString(r),
	}
}

// writeLog writes non-empty compilation logs to the log output.
func (c *Compiler) writeLog(log string) {
	if c.logOutput == nil || strings.TrimSpace(log) == "" {
		return
	}
	c.outputLock.Lock()
	defer c.outputLock.Unlock()
	if _, err := fmt.Fprintln(c.logOutput, strings.TrimRight(log, "\n")); err != nil {
		c.logger.Warningf("Failed to write compilation log: %v", err)
	}
}

func (c *Compiler) trace(ptx PTX) {
	if c.ptxTrace == nil {
		return
	}
	c.outputLock.Lock()
	defer c.outputLock.Unlock()
	if _, err := fmt.Fprintln(c.ptxTrace, ptx.String()); err != nil {
		c.logger.Warningf("Failed to write PTX trace: %v", err)
	}
}
