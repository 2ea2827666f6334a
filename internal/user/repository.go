// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/store"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u User) error
	Delete(ctx context.Context, username string) error
}

// repository runs each mutation as one full load-mutate-save cycle against
// the users file; nothing is cached between calls.
type repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) Repository {
	return &repository{store: st}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	table, err := r.store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]User, 0, len(table.Rows))
	for i := range table.Rows {
		users = append(users, fromRow(table, i))
	}

	return users, nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	table, err := r.store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	for i := range table.Rows {
		if table.Get(i, store.ColUsername) == username {
			u := fromRow(table, i)
			return &u, nil
		}
	}

	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (r *repository) Create(ctx context.Context, u User) error {
	return r.store.Locked(func() error {
		table, err := r.store.LoadUsers()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		for i := range table.Rows {
			if table.Get(i, store.ColUsername) == u.Username {
				return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
			}
		}

		table.AppendRow(toValues(u))

		if err := r.store.SaveUsers(table); err != nil {
			return fmt.Errorf("create user: %w: %w", core.ErrPersistence, err)
		}

		return nil
	})
}

func (r *repository) Delete(ctx context.Context, username string) error {
	return r.store.Locked(func() error {
		table, err := r.store.LoadUsers()
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		kept := table.Rows[:0:0]
		for i, row := range table.Rows {
			if table.Get(i, store.ColUsername) != username {
				kept = append(kept, row)
			}
		}

		if len(kept) == len(table.Rows) {
			return fmt.Errorf("delete user: %w", core.ErrNotFound)
		}

		table.Rows = kept

		if err := r.store.SaveUsers(table); err != nil {
			return fmt.Errorf("delete user: %w: %w", core.ErrPersistence, err)
		}

		return nil
	})
}
