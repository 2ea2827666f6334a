// AngelaMos | 2026
// entity.go

package applicant

import (
	"github.com/onms-dev/crm-backend/internal/store"
)

// Applicant is one prospective immigration client. Every field is textual;
// absent values are the empty string, never null. IDNumber is system
// generated and immutable; BDMName references a directory Username but may
// be orphaned to "" when that user is deleted.
type Applicant struct {
	Name              string
	ContactNumber     string
	Address           string
	IDNumber          string
	EmailAddress      string
	CountryOfInterest string
	TypeOfVisa        string
	EducationLevel    string
	Diploma           string
	WorkExperience    string
	CurrentJob        string
	TravelHistory     string
	AnyRefusal        string
	Signature         string
	Date              string
	BDMName           string
	EnteredBy         string
}

const (
	VisaStudent   = "Student"
	VisaVisit     = "Visit"
	VisaPR        = "PR"
	VisaJobseeker = "Jobseeker"
	VisaBusiness  = "Business"
)

const (
	DiplomaYes = "Yes"
	DiplomaNo  = "No"
)

const dateLayout = "2006-01-02"

func fromRow(t *store.Table, row int) Applicant {
	return Applicant{
		Name:              t.Get(row, store.ColName),
		ContactNumber:     t.Get(row, store.ColContactNumber),
		Address:           t.Get(row, store.ColAddress),
		IDNumber:          t.Get(row, store.ColIDNumber),
		EmailAddress:      t.Get(row, store.ColEmailAddress),
		CountryOfInterest: t.Get(row, store.ColCountryOfInterest),
		TypeOfVisa:        t.Get(row, store.ColTypeOfVisa),
		EducationLevel:    t.Get(row, store.ColEducationLevel),
		Diploma:           t.Get(row, store.ColDiploma),
		WorkExperience:    t.Get(row, store.ColWorkExperience),
		CurrentJob:        t.Get(row, store.ColCurrentJob),
		TravelHistory:     t.Get(row, store.ColTravelHistory),
		AnyRefusal:        t.Get(row, store.ColAnyRefusal),
		Signature:         t.Get(row, store.ColSignature),
		Date:              t.Get(row, store.ColDate),
		BDMName:           t.Get(row, store.ColBDMName),
		EnteredBy:         t.Get(row, store.ColEnteredBy),
	}
}

func toValues(a Applicant) map[string]string {
	return map[string]string{
		store.ColName:              a.Name,
		store.ColContactNumber:     a.ContactNumber,
		store.ColAddress:           a.Address,
		store.ColIDNumber:          a.IDNumber,
		store.ColEmailAddress:      a.EmailAddress,
		store.ColCountryOfInterest: a.CountryOfInterest,
		store.ColTypeOfVisa:        a.TypeOfVisa,
		store.ColEducationLevel:    a.EducationLevel,
		store.ColDiploma:           a.Diploma,
		store.ColWorkExperience:    a.WorkExperience,
		store.ColCurrentJob:        a.CurrentJob,
		store.ColTravelHistory:     a.TravelHistory,
		store.ColAnyRefusal:        a.AnyRefusal,
		store.ColSignature:         a.Signature,
		store.ColDate:              a.Date,
		store.ColBDMName:           a.BDMName,
		store.ColEnteredBy:         a.EnteredBy,
	}
}
