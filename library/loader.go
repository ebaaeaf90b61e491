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
	"encoding/json"
	"fmt"

	"github.com/sdcio/yang-datamodel/statement"
	log "github.com/sirupsen/logrus"
)

type libraryDocument struct {
	ModulesState struct {
		ModuleSetID string        `json:"module-set-id"`
		Module      []moduleEntry `json:"module"`
	} `json:"ietf-yang-library:modules-state"`
}

type moduleEntry struct {
	Name            string            `json:"name"`
	Revision        string            `json:"revision"`
	Namespace       string            `json:"namespace"`
	ConformanceType string            `json:"conformance-type"`
	Feature         []string          `json:"feature"`
	Deviation       []deviationEntry  `json:"deviation"`
	Submodule       []submoduleEntry  `json:"submodule"`
	Schema          string            `json:"schema"`
}

type deviationEntry struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

type submoduleEntry struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

// ModuleSetID is the "module-set-id" string from the library description,
// preserved for callers that use it as a schema cache key.
func (sd *SchemaData) ModuleSetID() string { return sd.moduleSetID }

// FromLibraryData implements the SchemaData construction algorithm of
// parse and register every module/submodule
// entry, resolve imports and prefixes, toposort implemented modules,
// build the identity graph, and verify if-feature prerequisites.
func FromLibraryData(libraryJSON []byte, source ModuleSource) (*SchemaData, error) {
	var doc libraryDocument
	if err := json.Unmarshal(libraryJSON, &doc); err != nil {
		return nil, NewBadLibraryDataError(err.Error())
	}

	sd := &SchemaData{
		Modules:      make(map[ModuleIdentifier]*ModuleData),
		Implement:    make(map[string]string),
		identityAdjs: make(map[QualName]*identityAdjacency),
		source:       source,
		moduleSetID:  doc.ModulesState.ModuleSetID,
	}

	for _, entry := range doc.ModulesState.Module {
		if entry.Name == "" {
			return nil, NewBadLibraryDataError("module entry missing name")
		}
		mid := ModuleIdentifier{Name: entry.Name, Revision: entry.Revision}
		mdata := &ModuleData{
			ID:         mid,
			MainModule: mid,
			Features:   make(map[string]bool),
			PrefixMap:  make(map[string]ModuleIdentifier),
		}
		sd.Modules[mid] = mdata

		if entry.ConformanceType == "implement" {
			if _, dup := sd.Implement[entry.Name]; dup {
				return nil, NewMultipleImplementedRevisionsError(entry.Name)
			}
			sd.Implement[entry.Name] = entry.Revision
		}

		text, err := source.Load(entry.Name, entry.Revision)
		if err != nil {
			return nil, err
		}
		stmt, err := statement.Parse(mid.String(), text)
		if err != nil {
			return nil, err
		}
		mdata.Statement = stmt

		for _, f := range entry.Feature {
			mdata.Features[f] = true
		}

		pfxStmt := stmt.Find1("prefix", "")
		if pfxStmt == nil {
			return nil, NewBadLibraryDataError(fmt.Sprintf("module %s has no prefix statement", mid))
		}
		mdata.PrefixMap[pfxStmt.Argument] = mid

		for _, s := range entry.Submodule {
			smid := ModuleIdentifier{Name: s.Name, Revision: s.Revision}
			sdata := &ModuleData{
				ID:         smid,
				MainModule: mid,
				Features:   make(map[string]bool),
				PrefixMap:  make(map[string]ModuleIdentifier),
			}
			sd.Modules[smid] = sdata
			mdata.Submodules = append(mdata.Submodules, smid)

			stext, err := source.Load(s.Name, s.Revision)
			if err != nil {
				return nil, err
			}
			sstmt, err := statement.Parse(smid.String(), stext)
			if err != nil {
				return nil, err
			}
			sdata.Statement = sstmt

			bt := sstmt.Find1("belongs-to", "", entry.Name)
			if bt == nil {
				return nil, NewBadLibraryDataError(fmt.Sprintf("submodule %s missing belongs-to %s", smid, entry.Name))
			}
			btPfx := bt.Find1("prefix", "")
			if btPfx == nil {
				return nil, NewBadLibraryDataError(fmt.Sprintf("submodule %s belongs-to has no prefix", smid))
			}
			// Submodules do not have their own prefix namespace: they
			// borrow the main module's.
			sdata.PrefixMap[btPfx.Argument] = mid
		}
	}

	if err := sd.processImports(); err != nil {
		return nil, err
	}
	sd.buildIdentityGraph()
	if err := sd.checkFeaturePrerequisites(); err != nil {
		return nil, err
	}
	log.Debugf("library: registered %d modules, %d implemented", len(sd.Modules), len(sd.Implement))
	return sd, nil
}

// processImports resolves each module's "import" statements to a
// registered revision and records the mapping in the importing module's
// prefix map, then toposorts implemented modules by import dependency
//.
func (sd *SchemaData) processImports() error {
	implemented := make(map[ModuleIdentifier]bool)
	for name, rev := range sd.Implement {
		implemented[ModuleIdentifier{Name: name, Revision: rev}] = true
	}

	deps := make(map[ModuleIdentifier]map[ModuleIdentifier]bool, len(implemented))
	importedBy := make(map[ModuleIdentifier]map[ModuleIdentifier]bool, len(implemented))
	for mid := range implemented {
		deps[mid] = make(map[ModuleIdentifier]bool)
		importedBy[mid] = make(map[ModuleIdentifier]bool)
	}

	for mid, mdata := range sd.Modules {
		for _, imp := range mdata.Statement.FindAll("import", "") {
			impName := imp.Argument
			pfxStmt := imp.Find1("prefix", "")
			if pfxStmt == nil {
				return NewBadLibraryDataError(fmt.Sprintf("import %s in %s missing prefix", impName, mid))
			}
			var imid ModuleIdentifier
			if revStmt := imp.Find1("revision-date", ""); revStmt != nil {
				imid = ModuleIdentifier{Name: impName, Revision: revStmt.Argument}
				if _, ok := sd.Modules[imid]; !ok {
					return NewModuleNotRegisteredError(imid)
				}
			} else {
				last, err := sd.lastRevision(impName)
				if err != nil {
					return err
				}
				imid = last
			}
			mdata.PrefixMap[pfxStmt.Argument] = imid

			mm := mdata.MainModule
			if implemented[mm] && implemented[imid] {
				deps[mm][imid] = true
				importedBy[imid][mm] = true
			}
		}
	}

	if len(implemented) == 0 {
		return nil
	}

	var free []ModuleIdentifier
	for mid, ds := range deps {
		if len(ds) == 0 {
			free = append(free, mid)
		}
	}
	if len(free) == 0 {
		return NewCyclicImportsError()
	}
	for len(free) > 0 {
		n := len(free) - 1
		nid := free[n]
		free = free[:n]
		sd.sequence = append(sd.sequence, nid)
		sd.sequence = append(sd.sequence, sd.Modules[nid].Submodules...)
		for mid := range importedBy[nid] {
			delete(deps[mid], nid)
			if len(deps[mid]) == 0 {
				free = append(free, mid)
			}
		}
	}
	for _, ds := range deps {
		if len(ds) > 0 {
			return NewCyclicImportsError()
		}
	}
	return nil
}

func (sd *SchemaData) lastRevision(name string) (ModuleIdentifier, error) {
	var best ModuleIdentifier
	found := false
	for mid := range sd.Modules {
		if mid.Name != name {
			continue
		}
		if !found || mid.Revision > best.Revision {
			best = mid
			found = true
		}
	}
	if !found {
		return ModuleIdentifier{}, NewModuleNotRegisteredError(ModuleIdentifier{Name: name})
	}
	return best, nil
}

// checkFeaturePrerequisites verifies that, for every declared-supported
// feature, all if-feature prerequisites on its "feature" statement are
// themselves supported.
func (sd *SchemaData) checkFeaturePrerequisites() error {
	for mid, mdata := range sd.Modules {
		for _, fstmt := range mdata.Statement.FindAll("feature", "") {
			local, fid := sd.resolvePname(fstmt.Argument, mid)
			if !sd.Modules[fid].Features[local] {
				continue
			}
			ok, err := sd.IfFeatures(fstmt, mid)
			if err != nil {
				return err
			}
			if !ok {
				return NewFeaturePrerequisiteError(QualName{Local: local, Namespace: sd.Namespace(fid)})
			}
		}
	}
	return nil
}
