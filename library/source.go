// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package library

import (
	"os"
	"path/filepath"
)

// DirModuleSource looks for "{name}.yang" or "{name}@{revision}.yang" in
// each directory of Dirs, in order. It is the
// only place in this package that touches the filesystem.
type DirModuleSource struct {
	Dirs []string
}

func NewDirModuleSource(dirs []string) *DirModuleSource {
	return &DirModuleSource{Dirs: dirs}
}

func (s *DirModuleSource) Load(name, revision string) (string, error) {
	fnames := []string{name + ".yang"}
	if revision != "" {
		fnames = []string{name + "@" + revision + ".yang", name + ".yang"}
	}
	for _, dir := range s.Dirs {
		for _, fname := range fnames {
			data, err := os.ReadFile(filepath.Join(dir, fname))
			if err == nil {
				return string(data), nil
			}
			if !os.IsNotExist(err) {
				return "", err
			}
		}
	}
	return "", NewModuleNotFoundError(name, revision)
}
