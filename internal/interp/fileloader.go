package interp

import (
	"os"
	"path/filepath"
	"strings"

	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/scriptio"
)

// FileLoader is the reference ScriptLoader implementation: require(name)
// resolves name.json across a list of search paths, the way the teacher's
// ModuleLoader.resolvePath walks its searchPaths list (spec §4 supplement:
// the parser is out of scope, so this module defines its own on-disk
// convention for "a script named X").
type FileLoader struct {
	searchPaths []string
}

// NewFileLoader creates a loader searching "." and "./lib" by default, mirroring the
// teacher's ModuleLoader default of {".", "./lib", "./node_modules"}
// trimmed to this module's own convention.
func NewFileLoader(searchPaths ...string) *FileLoader {
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "./lib"}
	}
	return &FileLoader{searchPaths: searchPaths}
}

// AddSearchPath appends an additional directory to search.
func (fl *FileLoader) AddSearchPath(path string) {
	fl.searchPaths = append(fl.searchPaths, path)
}

// LoadScript implements ScriptLoader: it resolves name (appending ".json"
// if absent) across the search paths and decodes the first match.
func (fl *FileLoader) LoadScript(name string) (*script.Script, error) {
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	for _, dir := range fl.searchPaths {
		full := filepath.Join(dir, filename)
		f, err := os.Open(full)
		if err != nil {
			continue
		}
		defer f.Close()
		return scriptio.Load(f, name)
	}
	return nil, gerrors.New(gerrors.LoaderError, "script %q not found (searched %v)", name, fl.searchPaths)
}
