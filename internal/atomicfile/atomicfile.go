// Package atomicfile replaces files without exposing partially written content.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically (best-effort cross-platform).
//
// The data goes to a temporary file in the same directory, which is then
// renamed over path. If perm is 0 the existing file's mode is kept, falling
// back to 0644.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	if err := replace(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// stage writes data to a synced temp file next to path and returns its name.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}

	// Some filesystems reject chmod here; the write still matters more.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fail(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}

// rename is swapped out in tests to simulate filesystem failures.
var rename = os.Rename

// replace renames tmpPath over path.
func replace(tmpPath, path string) error {
	if err := rename(tmpPath, path); err != nil {
		// On Windows, renaming over an existing file fails. Remove first (not atomic).
		_ = os.Remove(path)
		if err2 := rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	return nil
}

// Batch commits several file writes as one unit.
//
// Every write is staged to a temp file before any target is touched. If a
// rename then fails, targets already replaced are restored to their previous
// content (or removed if they did not exist). There is no journal, so a crash
// during the rename phase can still leave a mix of old and new files.
type Batch struct {
	writes []pendingWrite
}

type pendingWrite struct {
	path string
	data []byte
	perm os.FileMode
}

// Add queues a write. Later writes to the same path replace earlier ones.
func (b *Batch) Add(path string, data []byte, perm os.FileMode) {
	for i := range b.writes {
		if b.writes[i].path == path {
			b.writes[i] = pendingWrite{path: path, data: data, perm: perm}
			return
		}
	}
	b.writes = append(b.writes, pendingWrite{path: path, data: data, perm: perm})
}

// Len returns the number of queued writes.
func (b *Batch) Len() int {
	return len(b.writes)
}

// Paths returns the queued target paths in commit order.
func (b *Batch) Paths() []string {
	paths := make([]string, len(b.writes))
	for i, w := range b.writes {
		paths[i] = w.path
	}
	return paths
}

type snapshot struct {
	existed bool
	data    []byte
	perm    os.FileMode
}

// Commit stages and then installs every queued write.
func (b *Batch) Commit() error {
	staged := make([]string, 0, len(b.writes))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	snapshots := make([]snapshot, len(b.writes))
	for i, w := range b.writes {
		snap, err := takeSnapshot(w.path)
		if err != nil {
			cleanup()
			return err
		}
		snapshots[i] = snap

		tmp, err := stage(w.path, w.data, w.perm)
		if err != nil {
			cleanup()
			return fmt.Errorf("stage %s: %w", w.path, err)
		}
		staged = append(staged, tmp)
	}

	for i, w := range b.writes {
		if err := replace(staged[i], w.path); err != nil {
			// The failed target may already have been removed by replace.
			rollbackErr := restore(b.writes[:i+1], snapshots[:i+1])
			staged = staged[i:]
			cleanup()
			if rollbackErr != nil {
				return fmt.Errorf("replace %s: %w (rollback failed: %v)", w.path, err, rollbackErr)
			}
			return fmt.Errorf("replace %s: %w", w.path, err)
		}
	}
	return nil
}

func takeSnapshot(path string) (snapshot, error) {
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{}, nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return snapshot{existed: true, data: data, perm: st.Mode().Perm()}, nil
}

func restore(writes []pendingWrite, snapshots []snapshot) error {
	var errs []error
	for i := len(writes) - 1; i >= 0; i-- {
		path := writes[i].path
		snap := snapshots[i]
		if !snap.existed {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if err := WriteFile(path, snap.data, snap.perm); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
