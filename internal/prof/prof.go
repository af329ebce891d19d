package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Paths selects which profiles a Session records. Empty paths are skipped.
type Paths struct {
	CPU string
	Mem string
}

// Session is an active profiling run. A nil Session is valid and inert.
type Session struct {
	paths   Paths
	cpuFile *os.File
}

// Start begins CPU profiling when paths.CPU is set. The heap profile is
// captured by Stop.
func Start(paths Paths) (*Session, error) {
	if paths.CPU == "" && paths.Mem == "" {
		return nil, nil
	}
	s := &Session{paths: paths}
	if paths.CPU == "" {
		return s, nil
	}
	// #nosec G304 -- path comes from a command line flag
	f, err := os.Create(paths.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.paths.Mem != "" {
		errs = append(errs, writeHeap(s.paths.Mem))
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	// #nosec G304 -- path comes from a command line flag
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
