// AngelaMos | 2026
// service.go

package applicant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/store"
	"github.com/onms-dev/crm-backend/internal/user"
)

// DirectoryChecker answers whether a username exists in the user directory,
// for validating BDM assignments. Satisfied by the user service; wired in
// main.
type DirectoryChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// Service enforces the role rules in front of the repository: Master sees
// and edits everything; Normal sees only their own assignments, may create,
// and may neither update nor delete.
type Service struct {
	repo      Repository
	directory DirectoryChecker
}

func NewService(repo Repository, directory DirectoryChecker) *Service {
	return &Service{repo: repo, directory: directory}
}

func (s *Service) List(
	ctx context.Context,
	actorUsername, actorRole string,
) ([]Applicant, error) {
	if actorRole == user.RoleMaster {
		return s.repo.List(ctx)
	}
	return s.repo.ListByBDM(ctx, actorUsername)
}

func (s *Service) Get(
	ctx context.Context,
	actorUsername, actorRole, idNumber string,
) (*Applicant, error) {
	a, err := s.repo.GetByID(ctx, idNumber)
	if err != nil {
		return nil, err
	}

	if actorRole != user.RoleMaster && a.BDMName != actorUsername {
		return nil, fmt.Errorf(
			"get applicant: not assigned to you: %w",
			core.ErrForbidden,
		)
	}

	return a, nil
}

// Create builds a new record with a generated ID and the acting username
// stamped as Entered_By. Any role may create; the assigned BDM must exist
// in the directory but may be any user.
func (s *Service) Create(
	ctx context.Context,
	actorUsername string,
	req CreateApplicantRequest,
) (*Applicant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf(
			"create applicant: name is required: %w",
			core.ErrValidation,
		)
	}

	if req.BDMName == "" {
		return nil, fmt.Errorf(
			"create applicant: a BDM must be assigned: %w",
			core.ErrValidation,
		)
	}

	exists, err := s.directory.Exists(ctx, req.BDMName)
	if err != nil {
		return nil, fmt.Errorf("create applicant: check BDM: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf(
			"create applicant: BDM %q is not a known user: %w",
			req.BDMName,
			core.ErrValidation,
		)
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	a := &Applicant{
		Name:              req.Name,
		ContactNumber:     req.ContactNumber,
		Address:           req.Address,
		EmailAddress:      req.EmailAddress,
		CountryOfInterest: req.CountryOfInterest,
		TypeOfVisa:        req.TypeOfVisa,
		EducationLevel:    req.EducationLevel,
		Diploma:           req.Diploma,
		WorkExperience:    req.WorkExperience,
		CurrentJob:        req.CurrentJob,
		TravelHistory:     req.TravelHistory,
		AnyRefusal:        req.AnyRefusal,
		Signature:         req.Signature,
		Date:              date,
		BDMName:           req.BDMName,
		EnteredBy:         actorUsername,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Update is Master-only: Normal users reach the record read-only. Fields
// left nil in the request stay untouched; Entered_By is rewritten to the
// acting username.
func (s *Service) Update(
	ctx context.Context,
	actorUsername, actorRole, idNumber string,
	req UpdateApplicantRequest,
) (*Applicant, error) {
	if actorRole != user.RoleMaster {
		return nil, fmt.Errorf(
			"update applicant: read-only for role %s: %w",
			actorRole,
			core.ErrForbidden,
		)
	}

	fields := map[string]string{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf(
				"update applicant: name is required: %w",
				core.ErrValidation,
			)
		}
		fields[store.ColName] = *req.Name
	}

	if req.BDMName != nil && *req.BDMName != "" {
		exists, err := s.directory.Exists(ctx, *req.BDMName)
		if err != nil {
			return nil, fmt.Errorf("update applicant: check BDM: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf(
				"update applicant: BDM %q is not a known user: %w",
				*req.BDMName,
				core.ErrValidation,
			)
		}
	}

	setField(fields, store.ColContactNumber, req.ContactNumber)
	setField(fields, store.ColAddress, req.Address)
	setField(fields, store.ColEmailAddress, req.EmailAddress)
	setField(fields, store.ColCountryOfInterest, req.CountryOfInterest)
	setField(fields, store.ColTypeOfVisa, req.TypeOfVisa)
	setField(fields, store.ColEducationLevel, req.EducationLevel)
	setField(fields, store.ColDiploma, req.Diploma)
	setField(fields, store.ColWorkExperience, req.WorkExperience)
	setField(fields, store.ColCurrentJob, req.CurrentJob)
	setField(fields, store.ColTravelHistory, req.TravelHistory)
	setField(fields, store.ColAnyRefusal, req.AnyRefusal)
	setField(fields, store.ColSignature, req.Signature)
	setField(fields, store.ColDate, req.Date)
	setField(fields, store.ColBDMName, req.BDMName)

	fields[store.ColEnteredBy] = actorUsername

	return s.repo.Update(ctx, idNumber, fields)
}

// DeleteByName removes every applicant with the given name. Master only.
func (s *Service) DeleteByName(
	ctx context.Context,
	actorRole, name string,
) (int, error) {
	if actorRole != user.RoleMaster {
		return 0, fmt.Errorf(
			"delete applicant: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.DeleteByName(ctx, name)
}

func setField(fields map[string]string, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
