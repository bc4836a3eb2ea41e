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
	"bufio"
	"bytes"
	"strings"
)

// PTX holds the assembly returned by NVRTC. The buffer has the length
// reported by nvrtcGetPTXSize and usually ends in a NUL byte.
type PTX []byte

// String returns the PTX text without the trailing NUL.
func (p PTX) String() string {
	return string(bytes.TrimRight(p, "\x00"))
}

// Version returns the ISA version from the .version directive, or "" if absent.
func (p PTX) Version() string {
	return p.directive(".version")
}

// Target returns the value of the .target directive, or "" if absent.
func (p PTX) Target() string {
	return p.directive(".target")
}

// AddressSize returns the value of the .address_size directive, or "" if absent.
func (p PTX) AddressSize() string {
	return p.directive(".address_size")
}

// Entries returns the (mangled) names of the kernels defined in the PTX.
func (p PTX) Entries() []string {
	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(p))
	scanner.Buffer(nil, len(p)+1)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i, f := range fields {
			if f != ".entry" || i+1 >= len(fields) {
				continue
			}
			name, _, _ := strings.Cut(fields[i+1], "(")
			entries = append(entries, name)
		}
	}
	return entries
}

func (p PTX) directive(name string) string {
	scanner := bufio.NewScanner(bytes.NewReader(p))
	scanner.Buffer(nil, len(p)+1)
	for scanner.Scan() {
		fields := strings.Fields(strings.Trim(scanner.Text(), "\x00"))
		if len(fields) >= 2 && fields[0] == name {
			return fields[1]
		}
	}
	return ""
}
