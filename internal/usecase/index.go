package usecase

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/parser"
	"codemap/internal/domain"
	"codemap/internal/port"
)

// IndexUseCase builds and maintains the symbol map for a source tree.
type IndexUseCase struct {
	store   port.MapStore
	walker  port.FileWalker
	reader  port.FileReader
	workers int
}

func NewIndexUseCase(store port.MapStore, walker port.FileWalker, reader port.FileReader, workers int) *IndexUseCase {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &IndexUseCase{
		store:   store,
		walker:  walker,
		reader:  reader,
		workers: workers,
	}
}

// IndexResult summarizes one indexing run.
type IndexResult struct {
	FilesIndexed int
	FilesSkipped int
	FilesDeleted int
	SymbolsFound int
	Errors       []string
}

// Index walks root and brings the stored map up to date. Files whose content
// hash matches the stored entry are skipped; entries for files that vanished
// are removed. The optional progress callback receives one call per walked
// file.
func (u *IndexUseCase) Index(root string, progress func(done, total int)) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existing, err := u.store.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}
	existingMap := make(map[string]domain.FileMap, len(existing))
	for _, entry := range existing {
		existingMap[entry.Path] = entry
	}

	type parsed struct {
		path    string
		entry   domain.FileMap
		skipped bool
		err     error
	}
	jobs := make(chan port.FileInfo)
	results := make(chan parsed)

	// Workers hash first and only parse files whose content changed.
	var wg sync.WaitGroup
	for i := 0; i < u.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				content, err := u.reader.ReadFile(file.Path)
				if err != nil {
					results <- parsed{path: file.RelPath, err: err}
					continue
				}
				if prev, ok := existingMap[file.RelPath]; ok && prev.Hash == fs.HashContent(content) {
					results <- parsed{path: file.RelPath, entry: prev, skipped: true}
					continue
				}
				entry, err := u.mapContent(file.RelPath, content)
				results <- parsed{path: file.RelPath, entry: entry, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := make(map[string]bool, len(files))
	for _, file := range files {
		seen[file.RelPath] = true
	}
	go func() {
		for _, file := range files {
			jobs <- file
		}
		close(jobs)
	}()

	done := 0
	for p := range results {
		done++
		if progress != nil {
			progress(done, len(files))
		}
		if p.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.path, p.err))
			continue
		}
		if p.skipped {
			result.FilesSkipped++
			result.SymbolsFound += domain.CountSymbols(p.entry.Symbols)
			continue
		}
		if err := u.store.PutFile(p.entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.path, err))
			continue
		}
		result.FilesIndexed++
		result.SymbolsFound += domain.CountSymbols(p.entry.Symbols)
	}

	for path := range existingMap {
		if seen[path] {
			continue
		}
		if err := u.store.DeleteFile(path); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		result.FilesDeleted++
	}

	if err := u.updateStats(); err != nil {
		return nil, err
	}
	return result, nil
}

// IndexPaths re-maps just the given absolute paths, relative to root.
// Paths that no longer exist on disk have their entries removed.
func (u *IndexUseCase) IndexPaths(root string, paths []string) (*IndexResult, error) {
	result := &IndexResult{}
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		rel = filepath.ToSlash(rel)

		content, err := u.reader.ReadFile(path)
		if err != nil {
			if derr := u.store.DeleteFile(rel); derr == nil {
				result.FilesDeleted++
			}
			continue
		}
		entry, err := u.mapContent(rel, content)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		if err := u.store.PutFile(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		result.FilesIndexed++
		result.SymbolsFound += domain.CountSymbols(entry.Symbols)
	}
	if err := u.updateStats(); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *IndexUseCase) mapContent(relPath, content string) (domain.FileMap, error) {
	lang := DetectLanguage(relPath)
	if lang == "" {
		return domain.FileMap{Path: relPath}, fmt.Errorf("unsupported file type")
	}
	extraction, err := parser.Extract(lang, content)
	if err != nil {
		return domain.FileMap{Path: relPath}, err
	}
	truncateForStorage(extraction.Symbols)
	return domain.FileMap{
		Path:      relPath,
		Hash:      fs.HashContent(content),
		IndexedAt: time.Now().UTC(),
		Language:  lang,
		Lines:     countLines(content),
		Partial:   extraction.Partial,
		Warnings:  extraction.Warnings,
		Symbols:   extraction.Symbols,
	}, nil
}

// Stored map entries keep signatures and docs short; the parsers themselves
// return them untruncated.
const (
	maxStoredSignature = 100
	maxStoredDoc       = 150
)

func truncateForStorage(symbols []domain.Symbol) {
	for i := range symbols {
		if len(symbols[i].Signature) > maxStoredSignature {
			symbols[i].Signature = symbols[i].Signature[:maxStoredSignature-3] + "..."
		}
		if len(symbols[i].Doc) > maxStoredDoc {
			symbols[i].Doc = symbols[i].Doc[:maxStoredDoc]
		}
		truncateForStorage(symbols[i].Children)
	}
}

func (u *IndexUseCase) updateStats() error {
	entries, err := u.store.ListFiles()
	if err != nil {
		return err
	}
	var stats domain.Stats
	for _, entry := range entries {
		stats.TotalFiles++
		stats.TotalLines += entry.Lines
		stats.TotalSymbols += domain.CountSymbols(entry.Symbols)
	}
	return u.store.UpdateStats(stats)
}

// DetectLanguage maps a file path to a parser language tag, or "" when the
// extension is not recognized.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx":
		return "cpp"
	default:
		return ""
	}
}

// SourceExtensions lists the file extensions the indexer recognizes.
func SourceExtensions() []string {
	exts := []string{".c", ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}
	sort.Strings(exts)
	return exts
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
