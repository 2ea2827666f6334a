// AngelaMos | 2026
// entity.go

package user

import (
	"github.com/onms-dev/crm-backend/internal/store"
)

// User is one system account. Username is the primary key; Role drives
// record visibility everywhere else in the system.
type User struct {
	Username string
	Password string
	Role     string
}

const (
	RoleMaster = "Master"
	RoleNormal = "Normal"
)

func (u *User) IsMaster() bool {
	return u.Role == RoleMaster
}

func ValidRole(role string) bool {
	return role == RoleMaster || role == RoleNormal
}

func fromRow(t *store.Table, row int) User {
	return User{
		Username: t.Get(row, store.ColUsername),
		Password: t.Get(row, store.ColPassword),
		Role:     t.Get(row, store.ColRole),
	}
}

func toValues(u User) map[string]string {
	return map[string]string{
		store.ColUsername: u.Username,
		store.ColPassword: u.Password,
		store.ColRole:     u.Role,
	}
}
