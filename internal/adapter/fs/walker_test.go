package fs

import (
	"os"
	"path/filepath"
	"testing"
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

func TestWalker_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.c", "int main() {}")
	writeFile(t, root, "src/util.cpp", "")
	writeFile(t, root, "include/util.h", "")
	writeFile(t, root, "README.md", "")
	writeFile(t, root, "build/gen.c", "")

	w := NewWalker(
		[]string{"**/*.c", "**/*.h", "**/*.cpp"},
		[]string{"**/build/**"},
	)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	got := map[string]bool{}
	for _, f := range files {
		got[f.RelPath] = true
	}
	for _, want := range []string{"src/main.c", "src/util.cpp", "include/util.h"} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, got)
		}
	}
	if got["README.md"] {
		t.Error("README.md should not match include patterns")
	}
	if got["build/gen.c"] {
		t.Error("build/gen.c should be excluded")
	}
}

func TestWalker_RelPathsUseSlashes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c.c", "")

	files, err := NewWalker([]string{"**/*.c"}, nil).Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].RelPath != "a/b/c.c" {
		t.Errorf("RelPath = %q, want a/b/c.c", files[0].RelPath)
	}
	if !filepath.IsAbs(files[0].Path) {
		t.Errorf("Path = %q, want absolute", files[0].Path)
	}
}

func TestReader_ReadFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x.c", "int x;\n")

	content, err := Reader{}.ReadFile(filepath.Join(root, "x.c"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "int x;\n" {
		t.Errorf("content = %q", content)
	}
}

func TestHashContent(t *testing.T) {
	a := HashContent("int x;")
	b := HashContent("int x;")
	c := HashContent("int y;")

	if a != b {
		t.Error("identical content hashed differently")
	}
	if a == c {
		t.Error("different content hashed identically")
	}
	if len(a) != 12 {
		t.Errorf("hash length = %d, want 12", len(a))
	}
}
