// AngelaMos | 2026
// service_test.go

package applicant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/user"
)

type fakeDirectory struct {
	users map[string]bool
}

func (f *fakeDirectory) Exists(
	ctx context.Context,
	username string,
) (bool, error) {
	return f.users[username], nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := newTestRepo(t)
	directory := &fakeDirectory{users: map[string]bool{
		"admin": true,
		"john":  true,
		"mary":  true,
	}}
	return NewService(repo, directory)
}

func TestServiceListByRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, req := range []CreateApplicantRequest{
		{Name: "A", TypeOfVisa: VisaStudent, Diploma: DiplomaYes, BDMName: "john"},
		{Name: "B", TypeOfVisa: VisaVisit, Diploma: DiplomaNo, BDMName: "mary"},
		{Name: "C", TypeOfVisa: VisaPR, Diploma: DiplomaYes, BDMName: "john"},
	} {
		if _, err := svc.Create(ctx, "admin", req); err != nil {
			t.Fatalf("Create(%s) error = %v", req.Name, err)
		}
	}

	all, err := svc.List(ctx, "admin", user.RoleMaster)
	if err != nil {
		t.Fatalf("List(Master) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Master sees %d applicants, want 3", len(all))
	}

	own, err := svc.List(ctx, "john", user.RoleNormal)
	if err != nil {
		t.Fatalf("List(Normal) error = %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("Normal sees %d applicants, want 2", len(own))
	}
	for _, a := range own {
		if a.BDMName != "john" {
			t.Errorf("Normal sees applicant assigned to %q", a.BDMName)
		}
	}
}

func TestServiceGetVisibility(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", CreateApplicantRequest{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		Diploma:    DiplomaYes,
		BDMName:    "john",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		actor   string
		role    string
		wantErr error
	}{
		{name: "master sees any", actor: "admin", role: user.RoleMaster},
		{name: "assigned normal sees own", actor: "john", role: user.RoleNormal},
		{
			name:    "unassigned normal is refused",
			actor:   "mary",
			role:    user.RoleNormal,
			wantErr: core.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, tt.actor, tt.role, created.IDNumber)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Get() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateApplicantRequest
	}{
		{
			name: "blank name",
			req:  CreateApplicantRequest{Name: "   ", BDMName: "john"},
		},
		{
			name: "missing bdm",
			req:  CreateApplicantRequest{Name: "Alice"},
		},
		{
			name: "unknown bdm",
			req:  CreateApplicantRequest{Name: "Alice", BDMName: "ghost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "john", tt.req)
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestServiceCreateStampsDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "john", CreateApplicantRequest{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		Diploma:    DiplomaYes,
		BDMName:    "mary",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.EnteredBy != "john" {
		t.Errorf("EnteredBy = %q, want john", created.EnteredBy)
	}
	if created.Date != time.Now().Format(dateLayout) {
		t.Errorf("Date = %q, want today", created.Date)
	}
	if created.IDNumber == "" {
		t.Error("IDNumber not generated")
	}
}

func TestServiceUpdateRoleGate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", CreateApplicantRequest{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		Diploma:    DiplomaYes,
		BDMName:    "john",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	visa := VisaBusiness
	_, err = svc.Update(ctx, "john", user.RoleNormal, created.IDNumber,
		UpdateApplicantRequest{TypeOfVisa: &visa})
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Normal Update() error = %v, want ErrForbidden", err)
	}

	updated, err := svc.Update(ctx, "admin", user.RoleMaster, created.IDNumber,
		UpdateApplicantRequest{TypeOfVisa: &visa})
	if err != nil {
		t.Fatalf("Master Update() error = %v", err)
	}
	if updated.TypeOfVisa != VisaBusiness {
		t.Errorf("TypeOfVisa = %q, want Business", updated.TypeOfVisa)
	}
	if updated.EnteredBy != "admin" {
		t.Errorf("EnteredBy = %q, want admin (restamped)", updated.EnteredBy)
	}
	if updated.Name != "Alice" {
		t.Errorf("Name = %q, want Alice (untouched)", updated.Name)
	}
}

func TestServiceUpdateUnknownBDM(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", CreateApplicantRequest{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		Diploma:    DiplomaYes,
		BDMName:    "john",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ghost := "ghost"
	_, err = svc.Update(ctx, "admin", user.RoleMaster, created.IDNumber,
		UpdateApplicantRequest{BDMName: &ghost})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
}

func TestServiceDeleteByNameRoleGate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "admin", CreateApplicantRequest{
		Name:       "Alice",
		TypeOfVisa: VisaStudent,
		Diploma:    DiplomaYes,
		BDMName:    "john",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.DeleteByName(ctx, user.RoleNormal, "Alice")
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Normal DeleteByName() error = %v, want ErrForbidden", err)
	}

	deleted, err := svc.DeleteByName(ctx, user.RoleMaster, "Alice")
	if err != nil {
		t.Fatalf("Master DeleteByName() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}
