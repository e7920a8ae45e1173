package finance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store is the durable, append-oriented ledger store. Layout under the root:
//
//	<root>/funds.json           shared fund registry
//	<root>/<user>/snapshot.json current balance and aggregates
//	<root>/<user>/2025-09.jsonl one append-only log per month
//	<root>/<user>/sip-2025.jsonl per-year investment log
//
// Month logs are the source of truth; the snapshot is derived state that can
// always be rebuilt from them.
type Store struct {
	root string
}

// NewStore returns a store rooted at the given directory. The directory is
// created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// RegistryPath returns the path of the shared fund registry file.
func (s *Store) RegistryPath() string {
	return filepath.Join(s.root, "funds.json")
}

func (s *Store) userDir(user string) string {
	return filepath.Join(s.root, user)
}

func (s *Store) snapshotPath(user string) string {
	return filepath.Join(s.userDir(user), "snapshot.json")
}

func (s *Store) logPath(user string, m Month) string {
	return filepath.Join(s.userDir(user), m.String()+".jsonl")
}

func (s *Store) sipLogPath(user string, year int) string {
	return filepath.Join(s.userDir(user), "sip-"+strconv.Itoa(year)+".jsonl")
}

// LoadSnapshot returns the user's current snapshot, or a zero-valued snapshot
// if the user has no state yet. It fails only on I/O errors.
func (s *Store) LoadSnapshot(user string) (*AccountSnapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(user))
	if errors.Is(err, fs.ErrNotExist) {
		return NewAccountSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read snapshot for %q: %v", ErrStoreUnavailable, user, err)
	}
	snap := NewAccountSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("could not decode snapshot for %q: %w", user, err)
	}
	return snap, nil
}

// LoadMonthLog returns the user's transactions for a month in append order,
// or an empty sequence if none exist.
func (s *Store) LoadMonthLog(user string, m Month) ([]Record, error) {
	f, err := os.Open(s.logPath(user, m))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open log %s for %q: %v", ErrStoreUnavailable, m, user, err)
	}
	defer f.Close()
	records, err := DecodeLog(f)
	if err != nil {
		return nil, fmt.Errorf("log %s for %q: %w", m, user, err)
	}
	return records, nil
}

// AppendAndCommit durably records a new transaction and the updated snapshot
// as one logical unit: the log line is appended and synced first, then the
// snapshot is replaced atomically. If the second write fails, the log is
// ahead of the snapshot and Verify/Repair reconciles by replay. A record
// whose id already exists in the month log is rejected, which is what makes
// a retry of the same logical intent safe.
func (s *Store) AppendAndCommit(user string, m Month, rec Record, snap *AccountSnapshot) error {
	existing, err := s.LoadMonthLog(user, m)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.ID == rec.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
		}
	}

	if err := os.MkdirAll(s.userDir(user), 0755); err != nil {
		return fmt.Errorf("%w: could not create user directory for %q: %v", ErrCommitFailed, user, err)
	}

	f, err := os.OpenFile(s.logPath(user, m), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not open log %s for %q: %v", ErrCommitFailed, m, user, err)
	}
	if err := EncodeRecord(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: could not sync log %s for %q: %v", ErrCommitFailed, m, user, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not close log %s for %q: %v", ErrCommitFailed, m, user, err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: could not encode snapshot for %q: %v", ErrCommitFailed, user, err)
	}
	if err := writeFileAtomic(s.snapshotPath(user), data); err != nil {
		return fmt.Errorf("%w: could not write snapshot for %q: %v", ErrCommitFailed, user, err)
	}
	return nil
}

// AppendSIPEntry appends one contribution to the user's per-year investment log.
func (s *Store) AppendSIPEntry(user string, year int, e SIPEntry) error {
	if err := os.MkdirAll(s.userDir(user), 0755); err != nil {
		return fmt.Errorf("%w: could not create user directory for %q: %v", ErrCommitFailed, user, err)
	}
	f, err := os.OpenFile(s.sipLogPath(user, year), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not open sip log %d for %q: %v", ErrCommitFailed, year, user, err)
	}
	defer f.Close()
	if err := EncodeSIPEntry(f, e); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	return nil
}

// LoadSIPLog returns the user's investment log for a year in append order.
func (s *Store) LoadSIPLog(user string, year int) ([]SIPEntry, error) {
	f, err := os.Open(s.sipLogPath(user, year))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open sip log %d for %q: %v", ErrStoreUnavailable, year, user, err)
	}
	defer f.Close()
	return DecodeSIPLog(f)
}

// Months returns the months for which the user has a log, in no particular order.
func (s *Store) Months(user string) ([]Month, error) {
	entries, err := os.ReadDir(s.userDir(user))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not list logs for %q: %v", ErrStoreUnavailable, user, err)
	}
	var months []Month
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".jsonl") || strings.HasPrefix(name, "sip-") {
			continue
		}
		m, err := ParseMonth(strings.TrimSuffix(name, ".jsonl"))
		if err != nil {
			continue // not a month log
		}
		months = append(months, m)
	}
	return months, nil
}

// Users returns every user with stored state.
func (s *Store) Users() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not list users: %v", ErrStoreUnavailable, err)
	}
	var users []string
	for _, e := range entries {
		if e.IsDir() {
			users = append(users, e.Name())
		}
	}
	return users, nil
}

// loadAllLogs replays every month log of a user.
func (s *Store) loadAllLogs(user string) (map[Month][]Record, error) {
	months, err := s.Months(user)
	if err != nil {
		return nil, err
	}
	logs := make(map[Month][]Record, len(months))
	for _, m := range months {
		records, err := s.LoadMonthLog(user, m)
		if err != nil {
			return nil, err
		}
		logs[m] = records
	}
	return logs, nil
}

// Verify recomputes the user's snapshot by full replay and compares it with
// the stored one. A mismatch means a commit was interrupted between the log
// append and the snapshot write; Repair fixes it.
func (s *Store) Verify(user string) error {
	snap, err := s.LoadSnapshot(user)
	if err != nil {
		return err
	}
	logs, err := s.loadAllLogs(user)
	if err != nil {
		return err
	}
	rebuilt := Rebuild(logs)
	rebuilt.Savings = snap.Savings // savings is not derived from the logs
	if !rebuilt.Equal(snap) {
		return fmt.Errorf("snapshot for %q diverges from its logs (balance %s, replayed %s)", user, snap.Balance, rebuilt.Balance)
	}
	return nil
}

// Repair rewrites the user's snapshot from a full replay of the month logs.
func (s *Store) Repair(user string) (*AccountSnapshot, error) {
	snap, err := s.LoadSnapshot(user)
	if err != nil {
		return nil, err
	}
	logs, err := s.loadAllLogs(user)
	if err != nil {
		return nil, err
	}
	rebuilt := Rebuild(logs)
	rebuilt.Savings = snap.Savings
	data, err := json.Marshal(rebuilt)
	if err != nil {
		return nil, fmt.Errorf("%w: could not encode snapshot for %q: %v", ErrCommitFailed, user, err)
	}
	if err := writeFileAtomic(s.snapshotPath(user), data); err != nil {
		return nil, fmt.Errorf("%w: could not write snapshot for %q: %v", ErrCommitFailed, user, err)
	}
	log.Printf("repaired snapshot for %q: balance %s", user, rebuilt.Balance)
	return rebuilt, nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(bytes.TrimSpace(data)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write %q: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not sync %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not close %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}
