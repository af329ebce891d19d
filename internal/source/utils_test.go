package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.js")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(baseDir, "nested", "file.js")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.js"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestNormalizePathComposesUnicode(t *testing.T) {
	// "e" + combining acute accent vs precomposed U+00E9
	decomposed := "cafe\u0301/index.js"
	if got := normalizePath(decomposed); got != "caf\u00e9/index.js" {
		t.Fatalf("normalizePath = %q", got)
	}
}

func TestBuildLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("a\nbb\n\nc"))
	want := []uint32{1, 4, 5}
	if len(idx) != len(want) {
		t.Fatalf("len = %d, want %d", len(idx), len(want))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("idx[%d] = %d, want %d", i, idx[i], want[i])
		}
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	original := []byte("\xEF\xBB\xBFa\r\n  .b\r\n")
	content, hadBOM := removeBOM(original)
	content, hadCRLF := normalizeCRLF(content)
	if !hadBOM || !hadCRLF {
		t.Fatalf("expected BOM and CRLF to be detected")
	}
	flags := FileHadBOM | FileNormalizedCRLF
	if got := Denormalize(content, flags); string(got) != string(original) {
		t.Fatalf("Denormalize = %q, want %q", got, original)
	}
	if got := Denormalize(content, 0); string(got) != "a\n  .b\n" {
		t.Fatalf("Denormalize without flags = %q", got)
	}
}
