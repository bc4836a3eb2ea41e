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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	spec "github.com/CIuliusC/jit/api/config/v1"
	"github.com/CIuliusC/jit/internal/logger"
	"github.com/CIuliusC/jit/internal/nvrtc"
	"github.com/CIuliusC/jit/internal/output"
	"github.com/CIuliusC/jit/pkg/ptx"
)

const stdinPath = "-"

// source is a single translation unit to compile.
type source struct {
	// path is the file the source was read from, or "-" for stdin.
	path string
	// name is used for the program name and the output file.
	name string
	text string
}

// result holds the outcome of compiling a single source.
type result struct {
	source source
	log    bytes.Buffer
	ptx    ptx.PTX
	err    error
}

// runner compiles sources with a shared NVRTC library.
type runner struct {
	sync.Mutex
	lib    nvrtc.Interface
	config *spec.Config
	stdout io.Writer
	output output.Outputer
}

func newRunner(lib nvrtc.Interface, config *spec.Config, stdout io.Writer) *runner {
	r := &runner{
		lib:    lib,
		config: config,
		stdout: stdout,
	}
	echo := config.Flags.Output.PrintPTX != nil && *config.Flags.Output.PrintPTX
	r.output = output.New(r.outputDir(), stdout, echo)
	return r
}

// readSources reads the source files named by paths. A path of "-" reads
// from stdin, which may only be given once.
func readSources(paths []string, stdin io.Reader) ([]source, error) {
	var sources []source
	seenStdin := false
	for _, path := range paths {
		if path == stdinPath {
			if seenStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			seenStdin = true
			text, err := io.ReadAll(stdin)
			if err != nil {
				return nil, errors.Wrap(err, "failed to read source from stdin")
			}
			sources = append(sources, source{path: path, name: "stdin", text: string(text)})
			continue
		}
		s, err := readSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}

func readSource(path string) (source, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return source{}, errors.Wrapf(err, "failed to read source %s", path)
	}
	return source{
		path: path,
		name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		text: string(text),
	}, nil
}

// checkOutputNames ensures that no two sources are written to the same
// file in the output directory.
func (r *runner) checkOutputNames(sources []source) error {
	if r.outputDir() == "" {
		return nil
	}
	seen := make(map[string]string)
	for _, s := range sources {
		if other, ok := seen[s.name]; ok {
			return fmt.Errorf("%s and %s would both be written to %s.ptx", other, s.path, s.name)
		}
		seen[s.name] = s.path
	}
	return nil
}

func (r *runner) outputDir() string {
	if r.config.Flags.Output == nil || r.config.Flags.Output.OutputDir == nil {
		return ""
	}
	return *r.config.Flags.Output.OutputDir
}

// compilerFor returns a compiler for s whose compilation log is captured in log.
func (r *runner) compilerFor(s source, log io.Writer) *ptx.Compiler {
	config := r.config.CompilerConfig()
	if config.ProgramName == "" && s.path != stdinPath {
		config.ProgramName = filepath.Base(s.path)
	}
	return ptx.New(r.lib,
		ptx.WithConfig(config),
		ptx.WithLogger(logger.ToKlog),
		ptx.WithLogOutput(log),
	)
}

// compileAll compiles the sources concurrently, bounded by the configured
// parallelism. Results are written in the order the sources were given.
// The first failure is returned once all started compilations have finished;
// compilations that were not yet started are skipped.
func (r *runner) compileAll(sources []source) error {
	if err := r.checkOutputNames(sources); err != nil {
		return err
	}

	results := make([]*result, len(sources))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*r.config.Flags.Parallelism)
	for i, s := range sources {
		i, s := i, s
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res := &result{source: s}
			klog.V(1).Infof("Compiling %s", s.path)
			res.ptx, res.err = r.compilerFor(s, &res.log).Compile(s.text)
			results[i] = res
			if res.err != nil {
				return fmt.Errorf("%s: %w", s.path, res.err)
			}
			return nil
		})
	}
	err := g.Wait()

	for _, res := range results {
		if res == nil {
			continue
		}
		if werr := r.writeResult(res); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// writeResult writes the compilation log and, on success, the PTX.
func (r *runner) writeResult(res *result) error {
	r.Lock()
	defer r.Unlock()

	if _, err := res.log.WriteTo(r.stdout); err != nil {
		return errors.Wrap(err, "failed to write compilation log")
	}
	if res.err != nil {
		return nil
	}
	return errors.Wrapf(r.output.Output(res.source.name, res.ptx), "failed to output PTX for %s", res.source.path)
}
