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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"

	spec "github.com/CIuliusC/jit/api/config/v1"
	"github.com/CIuliusC/jit/internal/nvrtc"
	"github.com/CIuliusC/jit/internal/nvrtc/mock"
	"github.com/CIuliusC/jit/pkg/ptx"
)

const kernelPTX = ".version 8.0\n.target sm_75\n.address_size 64\n\n.visible .entry _Z1kv()\n{\n\tret;\n}\n"

func ptr[T any](x T) *T {
	return &x
}

func newTestConfig(outputDir string, parallelism int) *spec.Config {
	return &spec.Config{
		Version: spec.Version,
		Flags: spec.Flags{
			CommandLineFlags: spec.CommandLineFlags{
				NvrtcLibrary: ptr(spec.DefaultNvrtcLibrary),
				Parallelism:  ptr(parallelism),
				Compiler: &spec.CompilerCommandLineFlags{
					Arch: ptr(ptx.DefaultArchitecture),
					FMAD: ptr(false),
				},
				Output: &spec.OutputCommandLineFlags{
					OutputDir: ptr(outputDir),
					PrintPTX:  ptr(false),
					Watch:     ptr(false),
				},
			},
		},
	}
}

// newTestLibrary returns an NVRTC mock that fails to compile any source
// containing "= ;" and reports a warning for sources containing "unused".
// Programs are not distinguishable, so sources must be compiled one at a time.
func newTestLibrary() *mock.Interface {
	var current string
	logFor := func() string {
		switch {
		case strings.Contains(current, "= ;"):
			return "error: expected an expression\n"
		case strings.Contains(current, "unused"):
			return "warning #177-D: variable \"unused\" was declared but never referenced\n"
		}
		return ""
	}

	return &mock.Interface{
		CreateProgramFunc: func(src string, name string, headers []string, includeNames []string) (nvrtc.Program, nvrtc.Result) {
			current = src
			return nvrtc.Program{}, nvrtc.SUCCESS
		},
		CompileProgramFunc: func(prog nvrtc.Program, options []string) nvrtc.Result {
			if strings.Contains(current, "= ;") {
				return nvrtc.ERROR_COMPILATION
			}
			return nvrtc.SUCCESS
		},
		GetProgramLogSizeFunc: func(prog nvrtc.Program) (int, nvrtc.Result) {
			return len(logFor()) + 1, nvrtc.SUCCESS
		},
		GetProgramLogFunc: func(prog nvrtc.Program, log []byte) nvrtc.Result {
			copy(log, logFor())
			return nvrtc.SUCCESS
		},
		GetPTXSizeFunc: func(prog nvrtc.Program) (int, nvrtc.Result) {
			return len(kernelPTX) + 1, nvrtc.SUCCESS
		},
		GetPTXFunc: func(prog nvrtc.Program, ptx []byte) nvrtc.Result {
			copy(ptx, kernelPTX)
			return nvrtc.SUCCESS
		},
		DestroyProgramFunc: func(prog *nvrtc.Program) nvrtc.Result {
			return nvrtc.SUCCESS
		},
		ErrorStringFunc: func(r nvrtc.Result) string {
			return r.String()
		},
	}
}

func writeSource(t *testing.T, dir string, name string, text string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	kernel := writeSource(t, dir, "kernel.cu", "__global__ void k(){}")

	sources, err := readSources([]string{kernel, "-"}, strings.NewReader("__global__ void s(){}"))
	require.NoError(t, err)
	require.Equal(t, []source{
		{path: kernel, name: "kernel", text: "__global__ void k(){}"},
		{path: "-", name: "stdin", text: "__global__ void s(){}"},
	}, sources)

	_, err = readSources([]string{"-", "-"}, strings.NewReader(""))
	require.Error(t, err)

	_, err = readSources([]string{filepath.Join(dir, "missing.cu")}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.cu")
}

func TestCompileAllToStdout(t *testing.T) {
	dir := t.TempDir()
	sources, err := readSources([]string{
		writeSource(t, dir, "a.cu", "__global__ void a(){}"),
		writeSource(t, dir, "b.cu", "__global__ void b(){ int unused; }"),
	}, nil)
	require.NoError(t, err)

	lib := newTestLibrary()
	var stdout bytes.Buffer
	r := newRunner(lib, newTestConfig("", 1), &stdout)

	require.NoError(t, r.compileAll(sources))
	require.Equal(t, 2, strings.Count(stdout.String(), ".version 8.0"))
	require.Contains(t, stdout.String(), "warning #177-D")

	require.Len(t, lib.CompileProgramCalls(), 2)
	require.Equal(t,
		[]string{"--gpu-architecture=compute_75", "--fmad=false"},
		lib.CompileProgramCalls()[0].Options,
	)
	require.Equal(t, "a.cu", lib.CreateProgramCalls()[0].Name)
	require.Equal(t, "b.cu", lib.CreateProgramCalls()[1].Name)
}

func TestCompileAllToOutputDir(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	sources, err := readSources([]string{
		writeSource(t, dir, "saxpy.cu", "__global__ void saxpy(){}"),
	}, nil)
	require.NoError(t, err)

	var stdout bytes.Buffer
	r := newRunner(newTestLibrary(), newTestConfig(outputDir, 1), &stdout)

	require.NoError(t, r.compileAll(sources))
	require.Empty(t, stdout.String())

	contents, err := os.ReadFile(filepath.Join(outputDir, "saxpy.ptx"))
	require.NoError(t, err)
	require.Equal(t, kernelPTX, string(contents))
}

func TestCompileAllRejectsDuplicateOutputNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0700))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0700))

	testCases := []struct {
		description   string
		outputDir     string
		expectedError bool
	}{
		{
			description:   "output directory",
			outputDir:     filepath.Join(dir, "out"),
			expectedError: true,
		},
		{
			description: "stdout",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			sources, err := readSources([]string{
				writeSource(t, dir, "a/k.cu", "__global__ void a(){}"),
				writeSource(t, dir, "b/k.cu", "__global__ void b(){}"),
			}, nil)
			require.NoError(t, err)

			lib := newTestLibrary()
			r := newRunner(lib, newTestConfig(tc.outputDir, 1), &bytes.Buffer{})

			err = r.compileAll(sources)
			if !tc.expectedError {
				require.NoError(t, err)
				require.Len(t, lib.CreateProgramCalls(), 2)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), "k.ptx")
			require.Empty(t, lib.CreateProgramCalls())
			require.NoDirExists(t, tc.outputDir)
		})
	}
}

func TestCompileAllFailure(t *testing.T) {
	dir := t.TempDir()
	broken := writeSource(t, dir, "broken.cu", "__global__ void k(){ int x = ; }")
	sources, err := readSources([]string{broken}, nil)
	require.NoError(t, err)

	var stdout bytes.Buffer
	r := newRunner(newTestLibrary(), newTestConfig("", 1), &stdout)

	err = r.compileAll(sources)
	require.Error(t, err)
	require.True(t, ptx.IsCompilerServiceFailure(err))
	require.Equal(t, broken+": compile program failed with error NVRTC_ERROR_COMPILATION", err.Error())
	require.Contains(t, stdout.String(), "expected an expression")
	require.NotContains(t, stdout.String(), ".version")
}

func TestCompileAllSkipsAfterFailure(t *testing.T) {
	dir := t.TempDir()
	sources, err := readSources([]string{
		writeSource(t, dir, "broken.cu", "__global__ void k(){ int x = ; }"),
		writeSource(t, dir, "ok.cu", "__global__ void k(){}"),
	}, nil)
	require.NoError(t, err)

	lib := newTestLibrary()
	var stdout bytes.Buffer
	r := newRunner(lib, newTestConfig("", 1), &stdout)

	require.Error(t, r.compileAll(sources))
	require.Len(t, lib.CreateProgramCalls(), 1)
}

func TestWatchedDirs(t *testing.T) {
	require.Equal(t,
		[]string{"kernels", "."},
		watchedDirs([]string{"kernels/a.cu", "kernels/b.cu", "c.cu"}),
	)
}

func TestIsSourceEvent(t *testing.T) {
	watched := map[string]bool{"kernels/a.cu": true}

	require.True(t, isSourceEvent(fsnotify.Event{Name: "kernels/a.cu", Op: fsnotify.Write}, watched))
	require.True(t, isSourceEvent(fsnotify.Event{Name: "kernels/./a.cu", Op: fsnotify.Create}, watched))
	require.False(t, isSourceEvent(fsnotify.Event{Name: "kernels/a.cu", Op: fsnotify.Chmod}, watched))
	require.False(t, isSourceEvent(fsnotify.Event{Name: "kernels/b.cu", Op: fsnotify.Write}, watched))
}

func TestWatchRejectsStdin(t *testing.T) {
	r := newRunner(newTestLibrary(), newTestConfig("", 1), &bytes.Buffer{})
	require.Error(t, r.watch([]string{"-"}))
}

func TestResetTimerDiscardsPendingExpiry(t *testing.T) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	time.Sleep(10 * time.Millisecond)

	resetTimer(timer, time.Hour)

	select {
	case <-timer.C:
		t.Fatal("timer fired before the new deadline")
	default:
	}
}

type watchLoopHarness struct {
	events   chan fsnotify.Event
	errs     chan error
	sigs     chan os.Signal
	compiled chan struct{}
	done     chan error
}

func startWatchLoop(path string, debounce time.Duration) *watchLoopHarness {
	h := &watchLoopHarness{
		events:   make(chan fsnotify.Event),
		errs:     make(chan error),
		sigs:     make(chan os.Signal),
		compiled: make(chan struct{}, 10),
		done:     make(chan error, 1),
	}
	watched := map[string]bool{path: true}
	go func() {
		h.done <- watchLoop(h.events, h.errs, h.sigs, watched, debounce, func() {
			h.compiled <- struct{}{}
		})
	}()
	return h
}

func (h *watchLoopHarness) requireCompiles(t *testing.T, n int) {
	for i := 0; i < n; i++ {
		select {
		case <-h.compiled:
		case <-time.After(5 * time.Second):
			t.Fatalf("expected %d compilations, got %d", n, i)
		}
	}
}

func (h *watchLoopHarness) stop(t *testing.T) {
	h.sigs <- syscall.SIGTERM
	require.NoError(t, <-h.done)
}

func TestWatchLoop(t *testing.T) {
	path := filepath.Join("src", "k.cu")

	t.Run("compiles on start", func(t *testing.T) {
		h := startWatchLoop(path, time.Hour)
		h.requireCompiles(t, 1)
		h.stop(t)
		require.Empty(t, h.compiled)
	})

	t.Run("changes are debounced", func(t *testing.T) {
		h := startWatchLoop(path, 50*time.Millisecond)
		h.requireCompiles(t, 1)

		for i := 0; i < 3; i++ {
			h.events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
		}
		h.requireCompiles(t, 1)

		time.Sleep(200 * time.Millisecond)
		h.stop(t)
		require.Empty(t, h.compiled)
	})

	t.Run("other files are ignored", func(t *testing.T) {
		h := startWatchLoop(path, 10*time.Millisecond)
		h.requireCompiles(t, 1)

		h.events <- fsnotify.Event{Name: filepath.Join("src", "other.cu"), Op: fsnotify.Write}
		h.errs <- os.ErrClosed
		time.Sleep(100 * time.Millisecond)
		h.stop(t)
		require.Empty(t, h.compiled)
	})

	t.Run("SIGHUP recompiles", func(t *testing.T) {
		h := startWatchLoop(path, time.Hour)
		h.requireCompiles(t, 1)

		h.sigs <- syscall.SIGHUP
		h.requireCompiles(t, 1)
		h.stop(t)
	})
}

func TestFormatArchs(t *testing.T) {
	require.Equal(t, "sm_75 sm_80 sm_90", formatArchs([]int{75, 80, 90}))
	require.Equal(t, "", formatArchs(nil))
}

func TestPrintInfo(t *testing.T) {
	testCases := []struct {
		description   string
		archs         []int
		archsResult   nvrtc.Result
		expectedError bool
		expectedLines []string
	}{
		{
			description:   "supported architectures are listed",
			archs:         []int{75, 80},
			archsResult:   nvrtc.SUCCESS,
			expectedLines: []string{"NVRTC version: 12.2", "Supported architectures: sm_75 sm_80"},
		},
		{
			description:   "missing symbol is not an error",
			archsResult:   nvrtc.ERROR_FUNCTION_NOT_FOUND,
			expectedLines: []string{"NVRTC version: 12.2"},
		},
		{
			description:   "other failures are returned",
			archsResult:   nvrtc.ERROR_INTERNAL_ERROR,
			expectedError: true,
		},
	}

	defer func(f func(string) nvrtc.Interface) { newLibrary = f }(newLibrary)

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			lib := &mock.Interface{
				InitFunc:     func() error { return nil },
				ShutdownFunc: func() error { return nil },
				VersionFunc: func() (int, int, nvrtc.Result) {
					return 12, 2, nvrtc.SUCCESS
				},
				GetSupportedArchsFunc: func() ([]int, nvrtc.Result) {
					return tc.archs, tc.archsResult
				},
				ErrorStringFunc: func(r nvrtc.Result) string {
					return r.String()
				},
			}
			newLibrary = func(string) nvrtc.Interface { return lib }

			out := &bytes.Buffer{}
			app := cli.NewApp()
			app.Writer = out

			err := printInfo(cli.NewContext(app, nil, nil), newTestConfig("", 1))
			if tc.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, line := range tc.expectedLines {
				require.Contains(t, out.String(), line)
			}
			require.Len(t, lib.ShutdownCalls(), 1)
		})
	}
}
