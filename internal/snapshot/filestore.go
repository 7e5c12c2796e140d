package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists snapshots under a caller-supplied base directory.
// Filenames are <run_id>.snapshot.json with no hidden metadata, per the
// persisted state layout contract; there is no hash-prefix sharding of the
// directory because run ids, unlike content hashes, are not expected to
// grow into the millions within one base directory.
type FileStore struct {
	BaseDir string
}

// NewFileStore returns a FileStore rooted at baseDir. baseDir is created on
// first Append if it does not already exist.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{BaseDir: baseDir}
}

func (fs *FileStore) path(runID string) string {
	return filepath.Join(fs.BaseDir, runID+".snapshot.json")
}

// onDiskEnvelope wraps a Snapshot with the envelope fingerprint stamped at
// write time, so Load can detect a file edited or corrupted after Append
// without re-deriving trust from the file's own claimed content.
type onDiskEnvelope struct {
	Snapshot
	EnvelopeFingerprint string `json:"envelope_fingerprint"`
}

// Append serializes s to canonical-field JSON and writes it atomically:
// write to a temp file on the same filesystem, then rename into place. A
// crash between write and rename leaves no partial file at the canonical
// path, matching the teacher cache's write-temp-then-rename contract.
func (fs *FileStore) Append(s Snapshot) (string, error) {
	if s.RunID == "" {
		s.RunID = uuid.NewString()
	}

	digest, err := s.Fingerprint()
	if err != nil {
		return "", wrapErr("append", s.RunID, err)
	}

	data, err := json.MarshalIndent(onDiskEnvelope{Snapshot: s, EnvelopeFingerprint: string(digest)}, "", "  ")
	if err != nil {
		return "", wrapErr("append", s.RunID, err)
	}
	if len(data) > MaxFrameBytes {
		return "", wrapErr("append", s.RunID, ErrFrameTooLarge)
	}

	if err := os.MkdirAll(fs.BaseDir, 0o755); err != nil {
		return "", wrapErr("append", s.RunID, err)
	}

	dest := fs.path(s.RunID)
	if err := writeFileAtomic(fs.BaseDir, dest, data); err != nil {
		return "", wrapErr("append", s.RunID, err)
	}
	return dest, nil
}

// Load reads the snapshot for runID and verifies its fingerprint before
// returning it.
func (fs *FileStore) Load(runID string) (Snapshot, error) {
	data, err := os.ReadFile(fs.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, wrapErr("load", runID, ErrNotFound)
		}
		return Snapshot{}, wrapErr("load", runID, err)
	}

	var envelope onDiskEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Snapshot{}, wrapErr("load", runID, err)
	}

	got, err := envelope.Snapshot.Fingerprint()
	if err != nil {
		return Snapshot{}, wrapErr("load", runID, err)
	}
	if string(got) != envelope.EnvelopeFingerprint {
		return Snapshot{}, wrapErr("load", runID, ErrFingerprintMismatch)
	}

	return envelope.Snapshot, nil
}

// List returns run ids under BaseDir whose id starts with prefix.
func (fs *FileStore) List(prefix string, limit int) ([]string, error) {
	entries, err := os.ReadDir(fs.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapErr("list", "", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		const suffix = ".snapshot.json"
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		runID := strings.TrimSuffix(name, suffix)
		if strings.HasPrefix(runID, prefix) {
			ids = append(ids, runID)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func writeFileAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	committed = true
	return nil
}
