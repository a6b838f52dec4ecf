// Package serializer converts pack documents to and from human-editable
// source files. Each file carries its originating store key in an embedded
// "_key" field, so the key survives renames and slug collisions as long as
// the file content is intact.
package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/document"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
)

// Format selects the on-disk serialization of source files.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Extension returns the filename extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yml"
	}
	return ".json"
}

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Slug normalizes a document name for use in a filename: lowercased, spaces
// replaced with underscores, and runes outside [a-z0-9_-] dropped.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FilenameFor derives the source filename for a document. Documents with a
// name field map to "<slug>_<id><ext>"; anything else falls back to the raw
// store key with path separators sanitized. The embedded key, not the
// filename, is authoritative for mapping a file back to its store entry.
func FilenameFor(doc document.Document, key string, format Format) string {
	if name := doc.Name(); name != "" {
		return fmt.Sprintf("%s_%s%s", Slug(name), doc.ID(), format.Extension())
	}
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return safe + format.Extension()
}

// Writer writes source files for one unpack run and tracks emitted filenames
// so that two documents mapping to the same name surface as an error instead
// of silently overwriting each other on disk.
type Writer struct {
	dir    string
	format Format
	seen   map[string]string // filename -> key that produced it
}

// NewWriter creates the output directory if needed and returns a Writer
// targeting it.
func NewWriter(dir string, format Format) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create output directory").
			WithDetail("path", dir)
	}
	return &Writer{
		dir:    dir,
		format: format,
		seen:   make(map[string]string),
	}, nil
}

// Write serializes doc with its store key embedded and writes it atomically
// under the writer's directory. It returns the filename used.
func (w *Writer) Write(key string, doc document.Document) (string, error) {
	name := FilenameFor(doc, key, w.format)
	if prev, dup := w.seen[name]; dup {
		return "", errors.Newf(errors.ErrFileExists, "documents %q and %q both map to file %q", prev, key, name).
			WithDetail("filename", name)
	}

	data, err := marshal(doc.WithKey(key), w.format)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerializeEncode, "cannot serialize document").
			WithDetail("key", key)
	}

	path := filepath.Join(w.dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", errors.Wrap(err, errors.ErrFileWrite, "cannot write source file").
			WithDetail("path", path)
	}

	w.seen[name] = key
	logger := logging.GetLogger("serializer")
	logger.Trace().
		Str("key", key).
		Str("file", name).
		Msg("Wrote source file")
	return name, nil
}

// Entry is one source file's recovered store key and document, with the
// key field already stripped.
type Entry struct {
	Key  string
	Doc  document.Document
	File string
}

// ReadAll parses every source file directly under dir and recovers each
// file's embedded store key. File order is deterministic (sorted by name).
// Any unreadable or malformed file, or a file without an embedded key,
// aborts the whole read.
func ReadAll(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read source directory").
			WithDetail("path", dir)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(de.Name())) {
		case ".json", ".yml", ".yaml":
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read source file").
				WithDetail("path", path)
		}

		var doc document.Document
		if err := unmarshal(data, name, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrSerializeParse, "cannot parse source file").
				WithDetail("path", path)
		}

		key, stripped, ok := doc.TakeKey()
		if !ok {
			return nil, errors.Newf(errors.ErrMissingKey, "source file %q has no %q field", name, document.KeyField).
				WithDetail("path", path)
		}

		entries = append(entries, Entry{Key: key, Doc: stripped, File: name})
	}

	logger := logging.GetLogger("serializer")
	logger.Debug().
		Int("files", len(entries)).
		Str("dir", dir).
		Msg("Read source directory")
	return entries, nil
}

func marshal(doc document.Document, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func unmarshal(data []byte, filename string, doc *document.Document) error {
	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".yml" || ext == ".yaml" {
		return yaml.Unmarshal(data, doc)
	}
	return json.Unmarshal(data, doc)
}
