// AngelaMos | 2026
// store.go

package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/onms-dev/crm-backend/internal/config"
)

// Canonical applicant dataset columns. Column names double as the field
// identifiers used by partial updates.
const (
	ColName              = "Name"
	ColContactNumber     = "Contact_Number"
	ColAddress           = "Address"
	ColIDNumber          = "ID_Number"
	ColEmailAddress      = "Email_Address"
	ColCountryOfInterest = "Country_of_Interest"
	ColTypeOfVisa        = "Type_of_Visa"
	ColEducationLevel    = "Education_Level"
	ColDiploma           = "Diploma"
	ColWorkExperience    = "Work_Experience"
	ColCurrentJob        = "Current_Job"
	ColTravelHistory     = "Travel_History"
	ColAnyRefusal        = "Any_Refusal"
	ColSignature         = "Signature"
	ColDate              = "Date"
	ColBDMName           = "BDM_Name"
	ColEnteredBy         = "Entered_By"
)

const (
	ColUsername = "Username"
	ColPassword = "Password"
	ColRole     = "Role"
)

var ApplicantColumns = []string{
	ColName,
	ColContactNumber,
	ColAddress,
	ColIDNumber,
	ColEmailAddress,
	ColCountryOfInterest,
	ColTypeOfVisa,
	ColEducationLevel,
	ColDiploma,
	ColWorkExperience,
	ColCurrentJob,
	ColTravelHistory,
	ColAnyRefusal,
	ColSignature,
	ColDate,
	ColBDMName,
	ColEnteredBy,
}

var UserColumns = []string{ColUsername, ColPassword, ColRole}

// Store is the persistence adapter over the two CSV files that hold all
// durable state. Every save is a whole-file overwrite through a temp file
// and rename; there are no partial writes.
//
// The mutex serializes load-mutate-save cycles within this process only.
// A second process writing the same files is last-writer-wins at file
// granularity; cross-process coordination is out of scope.
type Store struct {
	applicantsPath string
	usersPath      string
	mu             sync.Mutex
}

func New(cfg config.StorageConfig) (*Store, error) {
	s := &Store{
		applicantsPath: cfg.ApplicantsPath,
		usersPath:      cfg.UsersPath,
	}

	for _, path := range []string{cfg.ApplicantsPath, cfg.UsersPath} {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	if cfg.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Locked runs one load-mutate-save cycle under the store's write lock.
func (s *Store) Locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// LoadApplicants reads the applicants file. A missing file yields an empty
// table with the canonical column set; an existing file gets missing columns
// backfilled and blank cells normalized to the empty string.
func (s *Store) LoadApplicants() (*Table, error) {
	table, err := s.load(s.applicantsPath, ApplicantColumns)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}
	table.Normalize(ApplicantColumns)
	return table, nil
}

// LoadUsers reads the users file verbatim, or returns an empty table with
// the canonical columns when the file is absent.
func (s *Store) LoadUsers() (*Table, error) {
	table, err := s.load(s.usersPath, UserColumns)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return table, nil
}

func (s *Store) SaveApplicants(t *Table) error {
	if err := s.save(s.applicantsPath, t); err != nil {
		return fmt.Errorf("save applicants: %w", err)
	}
	return nil
}

func (s *Store) SaveUsers(t *Table) error {
	if err := s.save(s.usersPath, t); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *Store) load(path string, canonical []string) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(canonical), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return NewTable(canonical), nil
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// save overwrites the target atomically: write a temp file in the same
// directory, then rename over the original. The caller's in-memory table is
// never touched, so a failed save can simply be retried.
func (s *Store) save(path string, t *Table) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns)
	records = append(records, t.Rows...)

	if err := w.WriteAll(records); err != nil {
		_ = tmp.Close()        //nolint:errcheck // cleanup on write failure
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on write failure
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on close failure
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // cleanup on rename failure
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// Ping verifies both data files are reachable, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	for _, path := range []string{s.applicantsPath, s.usersPath} {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			// Acceptable: load treats a missing file as an empty dataset,
			// but the parent directory must exist.
			if _, dirErr := os.Stat(filepath.Dir(path)); dirErr != nil {
				return fmt.Errorf("data directory unavailable: %w", dirErr)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	return nil
}

type FileStats struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	Rows       int       `json:"rows"`
	ModifiedAt time.Time `json:"modified_at"`
}

func (s *Store) Stats() []FileStats {
	stats := make([]FileStats, 0, 2)

	for _, file := range []struct{ name, path string }{
		{"applicants", s.applicantsPath},
		{"users", s.usersPath},
	} {
		stat := FileStats{Name: file.name, Path: file.path}

		if info, err := os.Stat(file.path); err == nil {
			stat.SizeBytes = info.Size()
			stat.ModifiedAt = info.ModTime()
		}

		if table, err := s.load(file.path, nil); err == nil {
			stat.Rows = len(table.Rows)
		}

		stats = append(stats, stat)
	}

	return stats
}
