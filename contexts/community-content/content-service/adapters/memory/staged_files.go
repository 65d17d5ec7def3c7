package memory

import "sync"

// StagedFiles records which staged upload paths were released.
type StagedFiles struct {
	mu      sync.Mutex
	removed []string
}

func (f *StagedFiles) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, path)
	return nil
}

func (f *StagedFiles) Removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}
