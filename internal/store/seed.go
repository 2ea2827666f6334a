// AngelaMos | 2026
// seed.go

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// seed writes first-run data so a fresh install is immediately usable: a
// Master account, one Normal account, and a sample applicant. Existing files
// are never touched.
func (s *Store) seed() error {
	usersMissing, err := fileMissing(s.usersPath)
	if err != nil {
		return err
	}

	if usersMissing {
		users := NewTable(UserColumns)
		users.AppendRow(map[string]string{
			ColUsername: "admin",
			ColPassword: "admin123",
			ColRole:     "Master",
		})
		users.AppendRow(map[string]string{
			ColUsername: "john",
			ColPassword: "pass123",
			ColRole:     "Normal",
		})
		if err := s.SaveUsers(users); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	applicantsMissing, err := fileMissing(s.applicantsPath)
	if err != nil {
		return err
	}

	if applicantsMissing {
		applicants := NewTable(ApplicantColumns)
		applicants.AppendRow(map[string]string{
			ColName:              "John Doe",
			ColContactNumber:     "+1234567890",
			ColAddress:           "123 Main St",
			ColIDNumber:          "ONMS0001",
			ColEmailAddress:      "john.doe@example.com",
			ColCountryOfInterest: "Canada",
			ColTypeOfVisa:        "Student",
			ColEducationLevel:    "Bachelor",
			ColDiploma:           "Yes",
			ColWorkExperience:    "2 years",
			ColCurrentJob:        "Software Engineer",
			ColTravelHistory:     "USA, UK",
			ColAnyRefusal:        "No",
			ColSignature:         "John Doe",
			ColDate:              time.Now().Format("2006-01-02"),
			ColBDMName:           "admin",
			ColEnteredBy:         "admin",
		})
		if err := s.SaveApplicants(applicants); err != nil {
			return fmt.Errorf("seed applicants: %w", err)
		}
	}

	return nil
}

func fileMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return false, nil
}
