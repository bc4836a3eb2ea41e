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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CIuliusC/jit/internal/logger"
	"github.com/CIuliusC/jit/internal/nvrtc"
	"github.com/CIuliusC/jit/internal/nvrtc/mock"
)

const emptyKernelPTX = `//
// Generated by NVIDIA NVVM Compiler
//
// Compiler Build ID: CL-32267302
// Cuda compilation tools, release 12.0, V12.0.140
// Based on NVVM 7.0.1
//

.version 8.0
.target sm_75
.address_size 64

	// .globl	_Z1kv

.visible .entry _Z1kv()
{

	ret;

}
`

// service is a fake NVRTC that serves a fixed log and PTX for every program.
type service struct {
	*mock.Interface
	log        string
	ptx        string
	compile    nvrtc.Result
	failures   map[Step]nvrtc.Result
	logBuffers [][]byte
}

func newService(log string, ptx string) *service {
	s := &service{
		log:      log,
		ptx:      ptx,
		compile:  nvrtc.SUCCESS,
		failures: make(map[Step]nvrtc.Result),
	}
	s.Interface = &mock.Interface{
		CreateProgramFunc: func(src string, name string, headers []string, includeNames []string) (nvrtc.Program, nvrtc.Result) {
			return nvrtc.Program{}, s.result(StepCreateProgram)
		},
		CompileProgramFunc: func(prog nvrtc.Program, options []string) nvrtc.Result {
			if r := s.result(StepCompileProgram); r != nvrtc.SUCCESS {
				return r
			}
			return s.compile
		},
		GetProgramLogSizeFunc: func(prog nvrtc.Program) (int, nvrtc.Result) {
			return len(s.log) + 1, s.result(StepGetProgramLogSize)
		},
		GetProgramLogFunc: func(prog nvrtc.Program, log []byte) nvrtc.Result {
			s.logBuffers = append(s.logBuffers, log)
			copy(log, s.log)
			return s.result(StepGetProgramLog)
		},
		GetPTXSizeFunc: func(prog nvrtc.Program) (int, nvrtc.Result) {
			return len(s.ptx) + 1, s.result(StepGetPTXSize)
		},
		GetPTXFunc: func(prog nvrtc.Program, ptx []byte) nvrtc.Result {
			copy(ptx, s.ptx)
			return s.result(StepGetPTX)
		},
		DestroyProgramFunc: func(prog *nvrtc.Program) nvrtc.Result {
			return s.result(StepDestroyProgram)
		},
		ErrorStringFunc: func(r nvrtc.Result) string {
			return r.String()
		},
	}
	return s
}

func (s *service) result(step Step) nvrtc.Result {
	if r, ok := s.failures[step]; ok {
		return r
	}
	return nvrtc.SUCCESS
}

func TestCompile(t *testing.T) {
	s := newService("", emptyKernelPTX)
	var logOutput bytes.Buffer
	c := New(s, WithLogger(logger.Discard), WithLogOutput(&logOutput))

	ptx, err := c.Compile("__global__ void k(){}")
	require.NoError(t, err)
	require.NotNil(t, ptx)
	require.Len(t, ptx, len(emptyKernelPTX)+1)
	require.Equal(t, emptyKernelPTX, ptx.String())
	require.Equal(t, "8.0", ptx.Version())
	require.Equal(t, "sm_75", ptx.Target())
	require.Equal(t, "64", ptx.AddressSize())
	require.Equal(t, []string{"_Z1kv"}, ptx.Entries())
	require.Empty(t, logOutput.String())

	require.Len(t, s.CreateProgramCalls(), 1)
	require.Equal(t, "__global__ void k(){}", s.CreateProgramCalls()[0].Src)
	require.Empty(t, s.CreateProgramCalls()[0].Headers)
	require.Empty(t, s.CreateProgramCalls()[0].IncludeNames)

	require.Len(t, s.CompileProgramCalls(), 1)
	require.Equal(t,
		[]string{"--gpu-architecture=compute_75", "--fmad=false"},
		s.CompileProgramCalls()[0].Options,
	)
	require.Len(t, s.DestroyProgramCalls(), 1)

	require.Len(t, s.logBuffers, 1)
	require.NotSame(t, &s.logBuffers[0][0], &ptx[0])
}

func TestCompileIsIdempotent(t *testing.T) {
	s := newService("", emptyKernelPTX)
	c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))

	first, err := c.Compile("__global__ void k(){}")
	require.NoError(t, err)
	second, err := c.Compile("__global__ void k(){}")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, second, len(first))
	require.NotSame(t, &first[0], &second[0])
	require.Len(t, s.DestroyProgramCalls(), 2)
}

func TestCompileWritesWarningsOnSuccess(t *testing.T) {
	warning := "default_program(1): warning #177-D: variable \"x\" was declared but never referenced\n"
	s := newService(warning, emptyKernelPTX)
	var logOutput bytes.Buffer
	c := New(s, WithLogger(logger.Discard), WithLogOutput(&logOutput))

	_, err := c.Compile("__global__ void k(){ int x; }")
	require.NoError(t, err)
	require.Contains(t, logOutput.String(), "warning #177-D")
}

func TestCompileFailure(t *testing.T) {
	compileLog := "default_program(1): error: expected an expression\n\n1 error detected in the compilation of \"default_program\".\n"
	s := newService(compileLog, "")
	s.compile = nvrtc.ERROR_COMPILATION
	var logOutput bytes.Buffer
	c := New(s, WithLogger(logger.Discard), WithLogOutput(&logOutput))

	ptx, err := c.Compile("__global__ void k(){ int x = ; }")
	require.Error(t, err)
	require.Nil(t, ptx)
	require.True(t, IsCompilerServiceFailure(err))
	require.True(t, errors.Is(err, nvrtc.ERROR_COMPILATION))
	require.Equal(t, "compile program failed with error NVRTC_ERROR_COMPILATION", err.Error())

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, StepCompileProgram, e.Step)
	require.Contains(t, e.Log, "expected an expression")
	require.Contains(t, logOutput.String(), "expected an expression")

	require.Empty(t, s.GetPTXSizeCalls())
	require.Len(t, s.DestroyProgramCalls(), 1)
}

func TestCompileInvalidSource(t *testing.T) {
	testCases := []struct {
		description string
		source      string
	}{
		{
			description: "empty source",
			source:      "",
		},
		{
			description: "embedded NUL",
			source:      "__global__ void k(){}\x00__global__ void j(){ int x = ; }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := newService("", emptyKernelPTX)
			c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))

			ptx, err := c.Compile(tc.source)
			require.Nil(t, ptx)

			var e *Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, StepCreateProgram, e.Step)
			require.Equal(t, nvrtc.ERROR_INVALID_INPUT, e.Result)
			require.Empty(t, s.CreateProgramCalls())
		})
	}
}

func TestCompileStepFailures(t *testing.T) {
	testCases := []struct {
		step           Step
		destroyCalls   int
		expectedResult nvrtc.Result
	}{
		{StepCreateProgram, 0, nvrtc.ERROR_OUT_OF_MEMORY},
		{StepCompileProgram, 1, nvrtc.ERROR_INVALID_OPTION},
		{StepGetProgramLogSize, 1, nvrtc.ERROR_INVALID_PROGRAM},
		{StepGetProgramLog, 1, nvrtc.ERROR_INVALID_INPUT},
		{StepGetPTXSize, 1, nvrtc.ERROR_INVALID_PROGRAM},
		{StepGetPTX, 1, nvrtc.ERROR_INTERNAL_ERROR},
		{StepDestroyProgram, 1, nvrtc.ERROR_INVALID_PROGRAM},
	}

	for _, tc := range testCases {
		t.Run(string(tc.step), func(t *testing.T) {
			s := newService("", emptyKernelPTX)
			s.failures[tc.step] = tc.expectedResult
			c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))

			ptx, err := c.Compile("__global__ void k(){}")
			require.Nil(t, ptx)

			var e *Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, tc.step, e.Step)
			require.Equal(t, tc.expectedResult, e.Result)
			require.Equal(t, tc.expectedResult.String(), e.Message)
			require.Equal(t, fmt.Sprintf("%s failed with error %s", tc.step, tc.expectedResult), err.Error())
			require.Len(t, s.DestroyProgramCalls(), tc.destroyCalls)
		})
	}
}

func TestCompileKeepsFirstFailure(t *testing.T) {
	s := newService("", emptyKernelPTX)
	s.failures[StepGetPTX] = nvrtc.ERROR_INTERNAL_ERROR
	s.failures[StepDestroyProgram] = nvrtc.ERROR_INVALID_PROGRAM
	c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))

	_, err := c.Compile("__global__ void k(){}")

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, StepGetPTX, e.Step)
}

func TestCompileOptions(t *testing.T) {
	s := newService("", emptyKernelPTX)
	config := Config{
		Architecture: "sm_80",
		FMAD:         true,
		Options:      []string{"-default-device", "--std=c++17"},
		ProgramName:  "saxpy.cu",
	}
	c := New(s, WithConfig(config), WithLogger(logger.Discard), WithLogOutput(nil))
	require.Equal(t, config, c.Config())

	_, err := c.Compile("__global__ void k(){}")
	require.NoError(t, err)
	require.Equal(t, "saxpy.cu", s.CreateProgramCalls()[0].Name)
	require.Equal(t,
		[]string{"--gpu-architecture=sm_80", "--fmad=true", "-default-device", "--std=c++17"},
		s.CompileProgramCalls()[0].Options,
	)
}

func TestPTXTrace(t *testing.T) {
	s := newService("", emptyKernelPTX)
	var trace bytes.Buffer

	c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))
	_, err := c.Compile("__global__ void k(){}")
	require.NoError(t, err)
	require.Empty(t, trace.String())

	c = New(s, WithLogger(logger.Discard), WithLogOutput(nil), WithPTXTrace(&trace))
	_, err = c.Compile("__global__ void k(){}")
	require.NoError(t, err)
	require.Contains(t, trace.String(), ".version 8.0")
}

func TestMustCompile(t *testing.T) {
	var exitCode int
	var errOutput bytes.Buffer
	originalExit, originalStderr := exit, stderr
	exit = func(code int) { exitCode = code }
	stderr = &errOutput
	defer func() {
		exit = originalExit
		stderr = originalStderr
	}()

	s := newService("", emptyKernelPTX)
	c := New(s, WithLogger(logger.Discard), WithLogOutput(nil))

	ptx := c.MustCompile("__global__ void k(){}")
	require.NotNil(t, ptx)
	require.Equal(t, 0, exitCode)
	require.Empty(t, errOutput.String())

	s.compile = nvrtc.ERROR_COMPILATION
	ptx = c.MustCompile("__global__ void k(){ int x = ; }")
	require.Nil(t, ptx)
	require.Equal(t, 1, exitCode)
	require.Contains(t, errOutput.String(), "error: compile program failed with error NVRTC_ERROR_COMPILATION")
}
