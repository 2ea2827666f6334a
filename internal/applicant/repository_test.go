// AngelaMos | 2026
// repository_test.go

package applicant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/onms-dev/crm-backend/internal/config"
	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/store"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	dir := t.TempDir()
	st, err := store.New(config.StorageConfig{
		ApplicantsPath: filepath.Join(dir, "applicants.csv"),
		UsersPath:      filepath.Join(dir, "users.csv"),
	})
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return NewRepository(st)
}

func mustCreate(t *testing.T, repo Repository, a Applicant) *Applicant {
	t.Helper()
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return &a
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := newTestRepo(t)

	first := mustCreate(t, repo, Applicant{Name: "Alice", BDMName: "john"})
	second := mustCreate(t, repo, Applicant{Name: "Bob", BDMName: "john"})

	if first.IDNumber != "ONMS0001" {
		t.Errorf("first ID = %q, want ONMS0001", first.IDNumber)
	}
	if second.IDNumber != "ONMS0002" {
		t.Errorf("second ID = %q, want ONMS0002", second.IDNumber)
	}
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, Applicant{Name: "Alice", BDMName: "john"})

	got, err := repo.GetByID(context.Background(), created.IDNumber)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", got.Name)
	}

	_, err = repo.GetByID(context.Background(), "ONMS9999")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetByID(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestListByBDMPreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, Applicant{Name: "A", BDMName: "john"})
	mustCreate(t, repo, Applicant{Name: "B", BDMName: "mary"})
	mustCreate(t, repo, Applicant{Name: "C", BDMName: "john"})

	got, err := repo.ListByBDM(context.Background(), "john")
	if err != nil {
		t.Fatalf("ListByBDM() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "C" {
		t.Errorf("order = %q, %q; want A, C", got[0].Name, got[1].Name)
	}
}

func TestUpdateFields(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, Applicant{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		BDMName:    "john",
	})

	updated, err := repo.Update(context.Background(), created.IDNumber,
		map[string]string{
			store.ColTypeOfVisa: VisaPR,
			store.ColEnteredBy:  "admin",
		})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.TypeOfVisa != VisaPR {
		t.Errorf("TypeOfVisa = %q, want PR", updated.TypeOfVisa)
	}
	if updated.EnteredBy != "admin" {
		t.Errorf("EnteredBy = %q, want admin", updated.EnteredBy)
	}
	if updated.Name != "Alice" {
		t.Errorf("Name = %q, want Alice (untouched)", updated.Name)
	}
	if updated.IDNumber != created.IDNumber {
		t.Errorf("IDNumber changed: %q -> %q", created.IDNumber, updated.IDNumber)
	}
}

func TestUpdateIDNumberIsImmutable(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, Applicant{Name: "Alice", BDMName: "john"})

	updated, err := repo.Update(context.Background(), created.IDNumber,
		map[string]string{store.ColIDNumber: "ONMS7777"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.IDNumber != created.IDNumber {
		t.Errorf("IDNumber = %q, want %q", updated.IDNumber, created.IDNumber)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Update(context.Background(), "ONMS0042",
		map[string]string{store.ColName: "Nobody"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteByNameRemovesAllMatches(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, Applicant{Name: "Jane Roe", BDMName: "john"})
	mustCreate(t, repo, Applicant{Name: "Keep Me", BDMName: "john"})
	mustCreate(t, repo, Applicant{Name: "Jane Roe", BDMName: "mary"})

	deleted, err := repo.DeleteByName(context.Background(), "Jane Roe")
	if err != nil {
		t.Fatalf("DeleteByName() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	remaining, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].Name != "Keep Me" {
		t.Errorf("remaining = %+v, want only Keep Me", remaining)
	}
}

func TestDeleteByNameNoMatch(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, Applicant{Name: "Alice", BDMName: "john"})

	deleted, err := repo.DeleteByName(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("DeleteByName() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestUnassignBDM(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, Applicant{Name: "A", BDMName: "john"})
	mustCreate(t, repo, Applicant{Name: "B", BDMName: "mary"})
	mustCreate(t, repo, Applicant{Name: "C", BDMName: "john"})

	unassigned, err := repo.UnassignBDM(context.Background(), "john")
	if err != nil {
		t.Fatalf("UnassignBDM() error = %v", err)
	}
	if unassigned != 2 {
		t.Errorf("unassigned = %d, want 2", unassigned)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, a := range all {
		if a.Name == "B" {
			if a.BDMName != "mary" {
				t.Errorf("B's BDM = %q, want mary", a.BDMName)
			}
			continue
		}
		if a.BDMName != "" {
			t.Errorf("%s's BDM = %q, want empty", a.Name, a.BDMName)
		}
	}
}
