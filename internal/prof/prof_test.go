package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNilSessionIsInert(t *testing.T) {
	s, err := Start(Paths{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil session when no profile is requested")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop on nil session: %v", err)
	}
}

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CPU: filepath.Join(dir, "cpu.pprof"),
		Mem: filepath.Join(dir, "mem.pprof"),
	}
	s, err := Start(paths)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	for _, p := range []string{paths.CPU, paths.Mem} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("profile %s not written: %v", p, err)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Paths{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
