// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SourceFile is a Java file found under a source root.
type SourceFile struct {
	// Path is the file's location on disk.
	Path string
	// Rel is the slash-separated path relative to its source root, e.g.
	// "com/acme/Parser.java". Analyzer reports use the same form.
	Rel string
}

// Index maps source files to the methods they declare.
type Index struct {
	files map[string][]Method
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{files: make(map[string][]Method)}
}

// Add records the methods of a file under its relative path.
func (ix *Index) Add(rel string, methods []Method) {
	rel = path.Clean(filepath.ToSlash(rel))
	ix.files[rel] = append(ix.files[rel], methods...)
}

// Files returns the indexed relative paths in sorted order.
func (ix *Index) Files() []string {
	out := make([]string, 0, len(ix.files))
	for f := range ix.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Methods returns the methods declared in file. When file matches several
// indexed paths by suffix, their methods are concatenated in path order.
func (ix *Index) Methods(file string) []Method {
	var out []Method
	for _, rel := range ix.resolve(file) {
		out = append(out, ix.files[rel]...)
	}
	return out
}

// Len returns the number of indexed methods.
func (ix *Index) Len() int {
	n := 0
	for _, m := range ix.files {
		n += len(m)
	}
	return n
}

// Lookup finds a method by file and benchmark signature, e.g.
// ("com/acme/Parser.java", "parse(short[], SType)").
//
// file may be more or less qualified than the indexed path; a match on
// whole trailing path segments is accepted. Every matching file is searched.
func (ix *Index) Lookup(file, signature string) (Method, bool) {
	for _, rel := range ix.resolve(file) {
		for _, m := range ix.files[rel] {
			if m.Signature() == signature {
				return m, true
			}
		}
	}
	return Method{}, false
}

// resolve returns the indexed paths matching file: the exact path alone if
// present, otherwise every suffix match in sorted order.
func (ix *Index) resolve(file string) []string {
	file = path.Clean(filepath.ToSlash(file))
	if _, ok := ix.files[file]; ok {
		return []string{file}
	}
	var matches []string
	for rel := range ix.files {
		if strings.HasSuffix(rel, "/"+file) || strings.HasSuffix(file, "/"+rel) {
			matches = append(matches, rel)
		}
	}
	sort.Strings(matches)
	return matches
}

// Indexer parses Java sources into an Index.
type Indexer struct {
	logger  *slog.Logger
	workers int
}

// NewIndexer creates an Indexer using up to workers parallel parsers.
// workers <= 0 uses GOMAXPROCS. A nil logger uses slog.Default().
func NewIndexer(logger *slog.Logger, workers int) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Indexer{logger: logger, workers: workers}
}

// SourceFilter narrows which files FindSources returns.
type SourceFilter struct {
	// Exclude holds glob patterns matched against paths relative to each
	// root, e.g. "**/test/**" or "generated/**". Matching directories are
	// not descended into.
	Exclude []string

	// MaxFileBytes skips larger files. 0 means no limit.
	MaxFileBytes int64
}

// Skipped counts what a SourceFilter left out.
type Skipped struct {
	Excluded int
	TooLarge int
}

// Validate checks the exclude patterns.
func (f SourceFilter) Validate() error {
	for _, p := range f.Exclude {
		if err := validGlob(p); err != nil {
			return err
		}
	}
	return nil
}

// FindSources lists every .java file under each root.
func FindSources(roots []string) ([]SourceFile, error) {
	files, _, err := SourceFilter{}.Find(roots)
	return files, err
}

// Find lists the .java files under each root that pass the filter.
func (f SourceFilter) Find(roots []string) ([]SourceFile, Skipped, error) {
	var (
		out     []SourceFile
		skipped Skipped
	)
	for _, root := range roots {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel != "." && f.excluded(rel) {
					skipped.Excluded++
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), ".java") {
				return nil
			}
			if f.excluded(rel) {
				skipped.Excluded++
				return nil
			}
			if f.MaxFileBytes > 0 {
				info, err := d.Info()
				if err != nil {
					return err
				}
				if info.Size() > f.MaxFileBytes {
					skipped.TooLarge++
					return nil
				}
			}
			out = append(out, SourceFile{Path: p, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, skipped, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return out, skipped, nil
}

func (f SourceFilter) excluded(rel string) bool {
	for _, p := range f.Exclude {
		if matchGlob(rel, p) {
			return true
		}
	}
	return false
}

// IndexFiles parses files in parallel. onFile, when non-nil, is called once
// per processed file (serialized), which drives progress reporting.
//
// Unreadable files are logged and skipped; only cancellation aborts.
func (ix *Indexer) IndexFiles(ctx context.Context, files []SourceFile, onFile func(SourceFile)) (*Index, error) {
	index := NewIndex()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			methods, err := ix.indexFile(gctx, f)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				ix.logger.Warn("javasrc.index.file_skipped", "path", f.Path, "err", err)
			}

			mu.Lock()
			defer mu.Unlock()
			if methods != nil {
				index.Add(f.Rel, methods)
			}
			if onFile != nil {
				onFile(f)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix.logger.Debug("javasrc.index.done", "files", len(files), "methods", index.Len())
	return index, nil
}

// IndexDirs finds and parses every Java file under roots.
func (ix *Indexer) IndexDirs(ctx context.Context, roots []string, onFile func(SourceFile)) (*Index, error) {
	files, err := FindSources(roots)
	if err != nil {
		return nil, err
	}
	return ix.IndexFiles(ctx, files, onFile)
}

func (ix *Indexer) indexFile(ctx context.Context, f SourceFile) ([]Method, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return ParseSource(ctx, f.Rel, content, ix.logger)
}
