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

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/CIuliusC/jit/pkg/ptx"
)

// Outputer defines a mechanism to output compiled PTX.
type Outputer interface {
	Output(name string, ptx ptx.PTX) error
}

// New returns an Outputer that writes <name>.ptx files to dir. If dir is
// empty the PTX is written to w instead. If both dir and echo are set the
// PTX is written to the file and echoed to w.
func New(dir string, w io.Writer, echo bool) Outputer {
	writer := &toWriter{Writer: w}
	if dir == "" {
		return writer
	}
	o := &toDir{path: dir}
	if !echo {
		return o
	}
	return all{o, writer}
}

// toDir writes each PTX to a file in the specified directory.
type toDir struct {
	path string
}

// toWriter writes to the specified writer
type toWriter struct {
	sync.Mutex
	io.Writer
}

// all writes to each of its Outputers in turn.
type all []Outputer

func (d *toDir) Output(name string, p ptx.PTX) error {
	path := filepath.Join(d.path, name+".ptx")
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	if err := writeFileAtomically(path, []byte(p.String()), 0644); err != nil {
		return fmt.Errorf("error atomically writing file '%s': %w", path, err)
	}
	klog.Infof("Wrote %s (%s, PTX ISA %s, target %s)", path, humanize.Bytes(uint64(len(p))), p.Version(), p.Target())
	return nil
}

func (output *toWriter) Output(name string, p ptx.PTX) error {
	output.Lock()
	defer output.Unlock()
	_, err := fmt.Fprintln(output, p.String())
	return err
}

func (o all) Output(name string, p ptx.PTX) error {
	for _, outputer := range o {
		if err := outputer.Output(name, p); err != nil {
			return err
		}
	}
	return nil
}

// writeFileAtomically writes contents to a temporary file in the same
// directory as path and renames it into place, so that readers never observe
// a partially written file.
func writeFileAtomically(path string, contents []byte, perm os.FileMode) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to retrieve absolute path of output file: %v", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(absPath), ".nvrtc-ptx-")
	if err != nil {
		return fmt.Errorf("fail to create temporary output file: %v", err)
	}
	defer func() {
		if err != nil {
			tmpFile.Close()
			os.Remove(tmpFile.Name())
		}
	}()

	_, err = tmpFile.Write(contents)
	if err != nil {
		return fmt.Errorf("error writing temporary file '%v': %v", tmpFile.Name(), err)
	}

	err = tmpFile.Close()
	if err != nil {
		return fmt.Errorf("error closing temporary file '%v': %v", tmpFile.Name(), err)
	}

	err = os.Chmod(tmpFile.Name(), perm)
	if err != nil {
		return fmt.Errorf("error setting permissions on '%v': %v", tmpFile.Name(), err)
	}

	err = os.Rename(tmpFile.Name(), absPath)
	if err != nil {
		return fmt.Errorf("error moving temporary file to '%v': %v", path, err)
	}

	return nil
}
