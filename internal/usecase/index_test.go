package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/store"
	"codemap/internal/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func newTestIndexer(t *testing.T) (*IndexUseCase, *store.BoltStore) {
	t.Helper()
	st, err := store.NewBoltStore(filepath.Join(t.TempDir(), "map.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	walker := fs.NewWalker([]string{"**/*.c", "**/*.h", "**/*.cpp", "**/*.hpp"}, nil)
	return NewIndexUseCase(st, walker, fs.Reader{}, 2), st
}

func TestIndex_BuildsMap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "geo.c", "/* a point */\nstruct Point { int x; int y; };\n")
	writeFile(t, root, "shapes.hpp", "class Circle {\npublic:\n    double radius() const { return r_; }\nprivate:\n    double r_;\n};\n")

	uc, st := newTestIndexer(t)
	result, err := uc.Index(root, nil)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.FilesIndexed != 2 {
		t.Errorf("FilesIndexed = %d, want 2: %v", result.FilesIndexed, result.Errors)
	}

	entry, err := st.GetFile("geo.c")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if entry.Language != "c" || len(entry.Symbols) != 1 || entry.Symbols[0].Name != "Point" {
		t.Errorf("geo.c entry = %+v", entry)
	}
	if entry.Symbols[0].Doc != "a point" {
		t.Errorf("Point doc = %q", entry.Symbols[0].Doc)
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalFiles != 2 {
		t.Errorf("stats.TotalFiles = %d, want 2", stats.TotalFiles)
	}
	if stats.TotalSymbols == 0 {
		t.Error("stats.TotalSymbols = 0")
	}
}

func TestIndex_SkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.c", "int f() { return 1; }\n")
	writeFile(t, root, "b.c", "int g() { return 2; }\n")

	uc, _ := newTestIndexer(t)
	if _, err := uc.Index(root, nil); err != nil {
		t.Fatalf("first Index failed: %v", err)
	}

	result, err := uc.Index(root, nil)
	if err != nil {
		t.Fatalf("second Index failed: %v", err)
	}
	if result.FilesIndexed != 0 || result.FilesSkipped != 2 {
		t.Errorf("indexed=%d skipped=%d, want 0/2", result.FilesIndexed, result.FilesSkipped)
	}

	// Same length, different content: mtime tricks don't apply, the hash does.
	writeFile(t, root, "a.c", "int f() { return 9; }\n")
	result, err = uc.Index(root, nil)
	if err != nil {
		t.Fatalf("third Index failed: %v", err)
	}
	if result.FilesIndexed != 1 || result.FilesSkipped != 1 {
		t.Errorf("indexed=%d skipped=%d, want 1/1", result.FilesIndexed, result.FilesSkipped)
	}
}

func TestIndex_RemovesDeletedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "gone.c", "int f() { return 1; }\n")

	uc, st := newTestIndexer(t)
	if _, err := uc.Index(root, nil); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if err := os.Remove(filepath.Join(root, "gone.c")); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	result, err := uc.Index(root, nil)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if result.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", result.FilesDeleted)
	}
	if _, err := st.GetFile("gone.c"); err == nil {
		t.Error("deleted file still in map")
	}
}

func TestIndex_RecordsParseProblems(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "odd.c", "int counter = 0;\nint f() { return counter; }\n")

	uc, st := newTestIndexer(t)
	if _, err := uc.Index(root, nil); err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	entry, err := st.GetFile("odd.c")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if !entry.Partial || len(entry.Warnings) == 0 {
		t.Errorf("partial=%v warnings=%v, want a recorded parse problem", entry.Partial, entry.Warnings)
	}
}

func TestIndex_FatalParseErrorReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.c", "/* never closed\nint f() {}\n")

	uc, st := newTestIndexer(t)
	result, err := uc.Index(root, nil)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", result.Errors)
	}
	if _, err := st.GetFile("bad.c"); err == nil {
		t.Error("unparseable file should not be stored")
	}
}

func TestIndexPaths_UpdatesAndDeletes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.c", "int f() { return 1; }\n")
	writeFile(t, root, "b.c", "int g() { return 2; }\n")

	uc, st := newTestIndexer(t)
	if _, err := uc.Index(root, nil); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	writeFile(t, root, "a.c", "int f() { return 1; }\nint h() { return 3; }\n")
	if err := os.Remove(filepath.Join(root, "b.c")); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	result, err := uc.IndexPaths(root, []string{
		filepath.Join(root, "a.c"),
		filepath.Join(root, "b.c"),
	})
	if err != nil {
		t.Fatalf("IndexPaths failed: %v", err)
	}
	if result.FilesIndexed != 1 || result.FilesDeleted != 1 {
		t.Errorf("indexed=%d deleted=%d, want 1/1", result.FilesIndexed, result.FilesDeleted)
	}

	entry, err := st.GetFile("a.c")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if len(entry.Symbols) != 2 {
		t.Errorf("a.c has %d symbols after update, want 2", len(entry.Symbols))
	}
	if _, err := st.GetFile("b.c"); err == nil {
		t.Error("b.c still in map after removal")
	}
}

func TestTruncateForStorage(t *testing.T) {
	longSig := "void configure(int a"
	for len(longSig) < 140 {
		longSig += ", int a"
	}
	longSig += ")"
	longDoc := ""
	for len(longDoc) < 200 {
		longDoc += "describes the behavior in detail "
	}
	symbols := []domain.Symbol{{
		Signature: longSig,
		Doc:       longDoc,
		Children:  []domain.Symbol{{Signature: "int x", Doc: "short"}},
	}}
	truncateForStorage(symbols)

	if len(symbols[0].Signature) != maxStoredSignature {
		t.Errorf("signature length = %d, want %d", len(symbols[0].Signature), maxStoredSignature)
	}
	if symbols[0].Signature[len(symbols[0].Signature)-3:] != "..." {
		t.Errorf("truncated signature missing ellipsis: %q", symbols[0].Signature)
	}
	if len(symbols[0].Doc) != maxStoredDoc {
		t.Errorf("doc length = %d, want %d", len(symbols[0].Doc), maxStoredDoc)
	}
	if symbols[0].Children[0].Signature != "int x" || symbols[0].Children[0].Doc != "short" {
		t.Errorf("short values altered: %+v", symbols[0].Children[0])
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.c", "c"},
		{"header.h", "c"},
		{"app.cpp", "cpp"},
		{"app.cc", "cpp"},
		{"app.cxx", "cpp"},
		{"defs.hpp", "cpp"},
		{"defs.hh", "cpp"},
		{"defs.hxx", "cpp"},
		{"UPPER.C", "c"},
		{"script.py", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one line", 1},
		{"a\nb\n", 2},
		{"a\nb", 2},
	}
	for _, tt := range tests {
		if got := countLines(tt.content); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
