package usecase

import (
	"fmt"

	"codemap/internal/adapter/fs"
	"codemap/internal/port"
)

// CheckUseCase verifies that the stored map still reflects the source tree.
type CheckUseCase struct {
	store  port.MapStore
	walker port.FileWalker
	reader port.FileReader
}

func NewCheckUseCase(store port.MapStore, walker port.FileWalker, reader port.FileReader) *CheckUseCase {
	return &CheckUseCase{store: store, walker: walker, reader: reader}
}

// CheckResult lists every divergence between the map and the tree.
type CheckResult struct {
	Stale     []string // indexed, but content changed
	Missing   []string // on disk, never indexed
	Orphaned  []string // indexed, but gone from disk
	Unparsed  []string // indexed with a partial extraction
	UpToDate  int
	TotalDisk int
}

// Clean reports whether the map fully matches the tree.
func (r *CheckResult) Clean() bool {
	return len(r.Stale) == 0 && len(r.Missing) == 0 && len(r.Orphaned) == 0
}

func (u *CheckUseCase) Check(root string) (*CheckResult, error) {
	result := &CheckResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	result.TotalDisk = len(files)

	entries, err := u.store.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}
	indexed := make(map[string]string, len(entries))
	for _, entry := range entries {
		indexed[entry.Path] = entry.Hash
		if entry.Partial {
			result.Unparsed = append(result.Unparsed, entry.Path)
		}
	}

	seen := make(map[string]bool, len(files))
	for _, file := range files {
		seen[file.RelPath] = true
		hash, ok := indexed[file.RelPath]
		if !ok {
			result.Missing = append(result.Missing, file.RelPath)
			continue
		}
		content, err := u.reader.ReadFile(file.Path)
		if err != nil || fs.HashContent(content) != hash {
			result.Stale = append(result.Stale, file.RelPath)
			continue
		}
		result.UpToDate++
	}

	for _, entry := range entries {
		if !seen[entry.Path] {
			result.Orphaned = append(result.Orphaned, entry.Path)
		}
	}

	return result, nil
}
