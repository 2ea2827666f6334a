// AngelaMos | 2026
// store_test.go

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/onms-dev/crm-backend/internal/config"
)

func newTestStore(t *testing.T, seed bool) *Store {
	t.Helper()

	dir := t.TempDir()
	s, err := New(config.StorageConfig{
		ApplicantsPath: filepath.Join(dir, "applicants.csv"),
		UsersPath:      filepath.Join(dir, "users.csv"),
		Seed:           seed,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestLoadApplicantsMissingFile(t *testing.T) {
	s := newTestStore(t, false)

	table, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("LoadApplicants() error = %v", err)
	}

	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(table.Rows))
	}

	if len(table.Columns) != len(ApplicantColumns) {
		t.Fatalf(
			"columns = %d, want %d",
			len(table.Columns),
			len(ApplicantColumns),
		)
	}
	for i, col := range ApplicantColumns {
		if table.Columns[i] != col {
			t.Errorf("column[%d] = %q, want %q", i, table.Columns[i], col)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t, false)

	table := NewTable(ApplicantColumns)
	table.AppendRow(map[string]string{
		ColName:     "Jane Roe",
		ColIDNumber: "ONMS0001",
		ColBDMName:  "admin",
	})

	if err := s.SaveApplicants(table); err != nil {
		t.Fatalf("SaveApplicants() error = %v", err)
	}

	loaded, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("LoadApplicants() error = %v", err)
	}

	if len(loaded.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(loaded.Rows))
	}
	if got := loaded.Get(0, ColName); got != "Jane Roe" {
		t.Errorf("Name = %q, want %q", got, "Jane Roe")
	}
	if got := loaded.Get(0, ColContactNumber); got != "" {
		t.Errorf("Contact_Number = %q, want empty", got)
	}
}

func TestLoadApplicantsBackfillsMissingColumns(t *testing.T) {
	s := newTestStore(t, false)

	// Legacy file with only a subset of the canonical columns.
	content := "Name,ID_Number,BDM_Name\nAlice,ONMS0002,john\n"
	if err := os.WriteFile(s.applicantsPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("LoadApplicants() error = %v", err)
	}

	for _, col := range ApplicantColumns {
		if table.ColumnIndex(col) < 0 {
			t.Errorf("column %q not backfilled", col)
		}
	}

	if got := table.Get(0, ColName); got != "Alice" {
		t.Errorf("Name = %q, want %q", got, "Alice")
	}
	if got := table.Get(0, ColEmailAddress); got != "" {
		t.Errorf("Email_Address = %q, want empty", got)
	}
}

func TestLoadApplicantsNormalizationIdempotent(t *testing.T) {
	s := newTestStore(t, false)

	content := "Name,ID_Number\nBob,ONMS0003\n"
	if err := os.WriteFile(s.applicantsPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	first, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	if err := s.SaveApplicants(first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if len(second.Columns) != len(first.Columns) {
		t.Errorf(
			"columns changed on reload: %d -> %d",
			len(first.Columns),
			len(second.Columns),
		)
	}
	if len(second.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(second.Rows))
	}
}

func TestSeedCreatesDefaults(t *testing.T) {
	s := newTestStore(t, true)

	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers() error = %v", err)
	}
	if len(users.Rows) != 2 {
		t.Fatalf("seeded users = %d, want 2", len(users.Rows))
	}
	if got := users.Get(0, ColUsername); got != "admin" {
		t.Errorf("first user = %q, want admin", got)
	}
	if got := users.Get(0, ColRole); got != "Master" {
		t.Errorf("first role = %q, want Master", got)
	}

	applicants, err := s.LoadApplicants()
	if err != nil {
		t.Fatalf("LoadApplicants() error = %v", err)
	}
	if len(applicants.Rows) != 1 {
		t.Fatalf("seeded applicants = %d, want 1", len(applicants.Rows))
	}
	if got := applicants.Get(0, ColIDNumber); got != "ONMS0001" {
		t.Errorf("seed ID = %q, want ONMS0001", got)
	}
}

func TestSeedDoesNotOverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.csv")

	content := "Username,Password,Role\ncustom,secret,Master\n"
	if err := os.WriteFile(usersPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := New(config.StorageConfig{
		ApplicantsPath: filepath.Join(dir, "applicants.csv"),
		UsersPath:      usersPath,
		Seed:           true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers() error = %v", err)
	}
	if len(users.Rows) != 1 {
		t.Fatalf("rows = %d, want 1 (existing file preserved)", len(users.Rows))
	}
	if got := users.Get(0, ColUsername); got != "custom" {
		t.Errorf("user = %q, want custom", got)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t, true)

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t, true)

	stats := s.Stats()
	if len(stats) != 2 {
		t.Fatalf("stats = %d entries, want 2", len(stats))
	}

	if stats[0].Name != "applicants" || stats[1].Name != "users" {
		t.Errorf(
			"stat order = %q, %q; want applicants, users",
			stats[0].Name,
			stats[1].Name,
		)
	}
	if stats[0].Rows != 1 {
		t.Errorf("applicants rows = %d, want 1", stats[0].Rows)
	}
	if stats[1].Rows != 2 {
		t.Errorf("users rows = %d, want 2", stats[1].Rows)
	}
	if stats[0].SizeBytes == 0 {
		t.Error("applicants size = 0, want > 0")
	}
}
