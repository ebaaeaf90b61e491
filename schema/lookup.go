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

package schema

// FindDataChild looks up the data node named local among in's children,
// looking transparently through any Choice/Case wrapper the way instance
// data does (a choice and its cases never appear as their own JSON
// member). Returns nil if no such data node exists.
func FindDataChild(in InternalNode, local string) Node {
	if n, ok := in.Children()[local]; ok {
		return n
	}
	for _, child := range in.Children() {
		ch, ok := child.(*Choice)
		if !ok {
			continue
		}
		for _, cs := range ch.Cases {
			if n := FindDataChild(cs, local); n != nil {
				return n
			}
		}
	}
	return nil
}
