package export

import (
	"fmt"
	"os"
)

// Staged is an output written in full under a temporary name, waiting to
// replace its destination.
type Staged struct {
	kind string
	tmp  string
	path string
	done bool
}

// Commit renames the staged file over its destination. On failure the temp
// file is removed and the destination is left as it was.
func (s *Staged) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := os.Rename(s.tmp, s.path); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("write %s %s: %w", s.kind, s.path, err)
	}
	return nil
}

// Discard removes the staged file. It is a no-op after Commit.
func (s *Staged) Discard() {
	if s.done {
		return
	}
	s.done = true
	_ = os.Remove(s.tmp)
}

// CommitAll commits outputs in order. If one fails, the ones after it are
// discarded.
func CommitAll(outputs ...*Staged) error {
	for i, s := range outputs {
		if err := s.Commit(); err != nil {
			for _, rest := range outputs[i+1:] {
				rest.Discard()
			}
			return err
		}
	}
	return nil
}

// DiscardAll removes every output not yet committed.
func DiscardAll(outputs ...*Staged) {
	for _, s := range outputs {
		s.Discard()
	}
}
