// AngelaMos | 2026
// repository.go

package applicant

import (
	"context"
	"fmt"

	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/store"
)

type Repository interface {
	List(ctx context.Context) ([]Applicant, error)
	ListByBDM(ctx context.Context, username string) ([]Applicant, error)
	GetByID(ctx context.Context, idNumber string) (*Applicant, error)
	Create(ctx context.Context, a *Applicant) error
	Update(
		ctx context.Context,
		idNumber string,
		fields map[string]string,
	) (*Applicant, error)
	DeleteByName(ctx context.Context, name string) (int, error)
	UnassignBDM(ctx context.Context, username string) (int, error)
}

// repository runs each operation as one full load-mutate-save cycle against
// the applicants file. Mutations hold the store lock for the whole cycle so
// ID generation and the append it feeds are atomic within the process.
type repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) Repository {
	return &repository{store: st}
}

func (r *repository) List(ctx context.Context) ([]Applicant, error) {
	table, err := r.store.LoadApplicants()
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	applicants := make([]Applicant, 0, len(table.Rows))
	for i := range table.Rows {
		applicants = append(applicants, fromRow(table, i))
	}

	return applicants, nil
}

// ListByBDM returns the subset assigned to one BDM, preserving stored row
// order.
func (r *repository) ListByBDM(
	ctx context.Context,
	username string,
) ([]Applicant, error) {
	table, err := r.store.LoadApplicants()
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	var applicants []Applicant
	for i := range table.Rows {
		if table.Get(i, store.ColBDMName) == username {
			applicants = append(applicants, fromRow(table, i))
		}
	}

	return applicants, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	idNumber string,
) (*Applicant, error) {
	table, err := r.store.LoadApplicants()
	if err != nil {
		return nil, fmt.Errorf("get applicant: %w", err)
	}

	for i := range table.Rows {
		if table.Get(i, store.ColIDNumber) == idNumber {
			a := fromRow(table, i)
			return &a, nil
		}
	}

	return nil, fmt.Errorf("get applicant: %w", core.ErrNotFound)
}

// Create appends the applicant with a freshly generated IDNumber, written
// back onto the passed record.
func (r *repository) Create(ctx context.Context, a *Applicant) error {
	return r.store.Locked(func() error {
		table, err := r.store.LoadApplicants()
		if err != nil {
			return fmt.Errorf("create applicant: %w", err)
		}

		a.IDNumber = GenerateID(table)
		table.AppendRow(toValues(*a))

		if err := r.store.SaveApplicants(table); err != nil {
			return fmt.Errorf(
				"create applicant: %w: %w",
				core.ErrPersistence,
				err,
			)
		}

		return nil
	})
}

// Update overwrites the named fields on the record with the given IDNumber;
// fields absent from the map are left untouched. The IDNumber itself is
// immutable.
func (r *repository) Update(
	ctx context.Context,
	idNumber string,
	fields map[string]string,
) (*Applicant, error) {
	var updated Applicant

	err := r.store.Locked(func() error {
		table, err := r.store.LoadApplicants()
		if err != nil {
			return fmt.Errorf("update applicant: %w", err)
		}

		row := -1
		for i := range table.Rows {
			if table.Get(i, store.ColIDNumber) == idNumber {
				row = i
				break
			}
		}

		if row < 0 {
			return fmt.Errorf("update applicant: %w", core.ErrNotFound)
		}

		for column, value := range fields {
			if column == store.ColIDNumber {
				continue
			}
			table.Set(row, column, value)
		}

		updated = fromRow(table, row)

		if err := r.store.SaveApplicants(table); err != nil {
			return fmt.Errorf(
				"update applicant: %w: %w",
				core.ErrPersistence,
				err,
			)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteByName removes every row whose Name matches and reports how many
// went. Deletion is keyed by Name, not IDNumber: two applicants sharing a
// name are both removed. Long-standing behavior, kept on purpose.
func (r *repository) DeleteByName(
	ctx context.Context,
	name string,
) (int, error) {
	removed := 0

	err := r.store.Locked(func() error {
		table, err := r.store.LoadApplicants()
		if err != nil {
			return fmt.Errorf("delete applicant: %w", err)
		}

		kept := table.Rows[:0:0]
		for i, row := range table.Rows {
			if table.Get(i, store.ColName) == name {
				removed++
				continue
			}
			kept = append(kept, row)
		}

		if removed == 0 {
			return nil
		}

		table.Rows = kept

		if err := r.store.SaveApplicants(table); err != nil {
			return fmt.Errorf(
				"delete applicant: %w: %w",
				core.ErrPersistence,
				err,
			)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// UnassignBDM blanks the BDM assignment on every applicant owned by the
// username, for the user-deletion cascade. The applicants file is saved
// here, before the caller touches the users file.
func (r *repository) UnassignBDM(
	ctx context.Context,
	username string,
) (int, error) {
	unassigned := 0

	err := r.store.Locked(func() error {
		table, err := r.store.LoadApplicants()
		if err != nil {
			return fmt.Errorf("unassign bdm: %w", err)
		}

		for i := range table.Rows {
			if table.Get(i, store.ColBDMName) == username {
				table.Set(i, store.ColBDMName, "")
				unassigned++
			}
		}

		if unassigned == 0 {
			return nil
		}

		if err := r.store.SaveApplicants(table); err != nil {
			return fmt.Errorf(
				"unassign bdm: %w: %w",
				core.ErrPersistence,
				err,
			)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return unassigned, nil
}
