package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// VersionSchema maps a record-type code to the ordered raw column names that
// apply to rows carrying that code.
type VersionSchema map[string][]string

// Registry loads and caches the per-version header definitions. Entries live
// for the whole process; the universe of format versions seen in one run is
// small and fixed. The cache is lock-guarded so concurrent streams can share
// one Registry.
type Registry struct {
	dir string

	mu    sync.RWMutex
	cache map[string]VersionSchema
}

func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, cache: make(map[string]VersionSchema)}
}

// HeadersFor returns the header definitions for one format version, loading
// <dir>/<version>.csv on first use.
func (r *Registry) HeadersFor(version string) (VersionSchema, error) {
	r.mu.RLock()
	schema, ok := r.cache[version]
	r.mu.RUnlock()
	if ok {
		return schema, nil
	}

	schema, err := loadHeaders(filepath.Join(r.dir, version+".csv"))
	if err != nil {
		return nil, fmt.Errorf("load headers for version %s: %w", version, err)
	}

	r.mu.Lock()
	if cached, ok := r.cache[version]; ok {
		schema = cached
	} else {
		r.cache[version] = schema
	}
	r.mu.Unlock()
	return schema, nil
}

func loadHeaders(path string) (VersionSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	schema := make(VersionSchema)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return schema, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		// Some spec files erroneously say SchA rather than SA, or SH1, SH2
		// rather than H1, H2.
		key := strings.ReplaceAll(row[0], "Sch", "S")
		key = strings.ReplaceAll(key, "SH", "H")

		names := make([]string, 0, len(row)-1)
		for _, name := range row[1:] {
			names = append(names, normalizeColumn(name))
		}
		schema[key] = names
	}
}

func normalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// FindKey resolves a record-type code against a version schema. Filer
// software pads codes with inconsistent suffixes, so on a miss the code is
// shortened one trailing character at a time until a registered key is
// found. An exact match always wins and longer prefixes beat shorter ones.
func FindKey(schema VersionSchema, key string) ([]string, bool) {
	for key != "" {
		if names, ok := schema[key]; ok {
			return names, true
		}
		key = key[:len(key)-1]
	}
	return nil, false
}
