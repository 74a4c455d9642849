package collection

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Options configures one compilation. Paths are taken as given; default
// resolution belongs to the caller.
type Options struct {
	MetaPath   string
	RecordsDir string
	SortKey    string
	Exclude    []string
}

// Artifact is the result of a successful compilation.
type Artifact struct {
	// Bytes is the canonical serialized artifact text.
	Bytes []byte

	// Count is the number of records in the collection.
	Count int

	// Identity is the collection identifier from the metadata.
	Identity string
}

type record struct {
	path string
	data []byte
	key  string
	id   string
}

// Compile loads and validates the metadata, scans the record store, then
// validates, normalizes and sorts every record and renders the collection.
// The first failure aborts the whole operation; no partial result is ever
// produced. Compile is stateless and idempotent: unchanged inputs always
// yield byte-identical output.
func Compile(opts Options, v Variant) (*Artifact, error) {
	key := opts.SortKey
	if key == "" {
		key = v.DefaultSortKey
	}
	if !v.ValidSortKey(key) {
		return nil, fmt.Errorf("%w: sort key %q, want one of %s", ErrInvalidArgument, key, strings.Join(v.SortKeys, ", "))
	}
	sortField := v.SortField(key)

	meta, err := LoadMetadata(opts.MetaPath, v)
	if err != nil {
		return nil, err
	}

	paths, err := Scan(opts.RecordsDir, opts.Exclude)
	if err != nil {
		return nil, err
	}

	records := make([]record, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
		}
		if err := ValidateRecord(data, path, v, meta.Identity); err != nil {
			return nil, err
		}
		normalized, err := v.Normalize(data, meta)
		if err != nil {
			return nil, fmt.Errorf("%s: normalize: %w", path, err)
		}
		doc := gjson.ParseBytes(normalized)
		records = append(records, record{
			path: path,
			data: normalized,
			key:  strings.ToLower(field(doc, sortField).String()),
			id:   field(doc, v.IDField).Str,
		})
	}

	sortRecords(records)

	bodies := make([][]byte, len(records))
	for i, rec := range records {
		bodies[i] = rec.data
	}
	doc, err := Assemble(meta, bodies, v.ArrayField)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Bytes:    Render(doc),
		Count:    len(records),
		Identity: meta.Identity,
	}, nil
}

// sortRecords orders by the projected sort key case-insensitively, breaking
// ties by primary identifier (case-insensitively, then bytewise) and finally
// by source path. The order never depends on filesystem enumeration.
func sortRecords(records []record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.key != b.key {
			return a.key < b.key
		}
		ai, bi := strings.ToLower(a.id), strings.ToLower(b.id)
		if ai != bi {
			return ai < bi
		}
		if a.id != b.id {
			return a.id < b.id
		}
		return a.path < b.path
	})
}

// Write overwrites the artifact file unconditionally, creating parent
// directories as needed.
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", ErrIO, dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	return nil
}

// Check compares the artifact on disk byte-for-byte against freshly compiled
// bytes. A missing artifact counts as empty content, not as an error of its
// own; any difference reports ErrStaleArtifact.
func Check(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}
	if !bytes.Equal(existing, data) {
		return fmt.Errorf("%w: %s does not match the sources, regenerate with --write", ErrStaleArtifact, path)
	}
	return nil
}
