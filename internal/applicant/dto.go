// AngelaMos | 2026
// dto.go

package applicant

type CreateApplicantRequest struct {
	Name              string `json:"name"                validate:"required,max=200"`
	ContactNumber     string `json:"contact_number"      validate:"omitempty,max=50"`
	Address           string `json:"address"             validate:"omitempty,max=500"`
	EmailAddress      string `json:"email_address"       validate:"omitempty,email,max=255"`
	CountryOfInterest string `json:"country_of_interest" validate:"omitempty,max=100"`
	TypeOfVisa        string `json:"type_of_visa"        validate:"required,oneof=Student Visit PR Jobseeker Business"`
	EducationLevel    string `json:"education_level"     validate:"omitempty,max=100"`
	Diploma           string `json:"diploma"             validate:"required,oneof=Yes No"`
	WorkExperience    string `json:"work_experience"     validate:"omitempty,max=200"`
	CurrentJob        string `json:"current_job"         validate:"omitempty,max=200"`
	TravelHistory     string `json:"travel_history"      validate:"omitempty,max=500"`
	AnyRefusal        string `json:"any_refusal"         validate:"omitempty,max=200"`
	Signature         string `json:"signature"           validate:"omitempty,max=200"`
	Date              string `json:"date"                validate:"omitempty,datetime=2006-01-02"`
	BDMName           string `json:"bdm_name"            validate:"required,max=64"`
}

// UpdateApplicantRequest carries only the fields to overwrite; nil fields
// are left untouched on the record.
type UpdateApplicantRequest struct {
	Name              *string `json:"name,omitempty"                validate:"omitempty,min=1,max=200"`
	ContactNumber     *string `json:"contact_number,omitempty"      validate:"omitempty,max=50"`
	Address           *string `json:"address,omitempty"             validate:"omitempty,max=500"`
	EmailAddress      *string `json:"email_address,omitempty"       validate:"omitempty,max=255"`
	CountryOfInterest *string `json:"country_of_interest,omitempty" validate:"omitempty,max=100"`
	TypeOfVisa        *string `json:"type_of_visa,omitempty"        validate:"omitempty,oneof=Student Visit PR Jobseeker Business"`
	EducationLevel    *string `json:"education_level,omitempty"     validate:"omitempty,max=100"`
	Diploma           *string `json:"diploma,omitempty"             validate:"omitempty,oneof=Yes No"`
	WorkExperience    *string `json:"work_experience,omitempty"     validate:"omitempty,max=200"`
	CurrentJob        *string `json:"current_job,omitempty"         validate:"omitempty,max=200"`
	TravelHistory     *string `json:"travel_history,omitempty"      validate:"omitempty,max=500"`
	AnyRefusal        *string `json:"any_refusal,omitempty"         validate:"omitempty,max=200"`
	Signature         *string `json:"signature,omitempty"           validate:"omitempty,max=200"`
	Date              *string `json:"date,omitempty"                validate:"omitempty,datetime=2006-01-02"`
	BDMName           *string `json:"bdm_name,omitempty"            validate:"omitempty,max=64"`
}

type ApplicantResponse struct {
	Name              string `json:"name"`
	ContactNumber     string `json:"contact_number"`
	Address           string `json:"address"`
	IDNumber          string `json:"id_number"`
	EmailAddress      string `json:"email_address"`
	CountryOfInterest string `json:"country_of_interest"`
	TypeOfVisa        string `json:"type_of_visa"`
	EducationLevel    string `json:"education_level"`
	Diploma           string `json:"diploma"`
	WorkExperience    string `json:"work_experience"`
	CurrentJob        string `json:"current_job"`
	TravelHistory     string `json:"travel_history"`
	AnyRefusal        string `json:"any_refusal"`
	Signature         string `json:"signature"`
	Date              string `json:"date"`
	BDMName           string `json:"bdm_name"`
	EnteredBy         string `json:"entered_by"`
}

type ApplicantListResponse struct {
	Applicants []ApplicantResponse `json:"applicants"`
}

type DeleteByNameResponse struct {
	Deleted int `json:"deleted"`
}

func ToApplicantResponse(a *Applicant) ApplicantResponse {
	return ApplicantResponse{
		Name:              a.Name,
		ContactNumber:     a.ContactNumber,
		Address:           a.Address,
		IDNumber:          a.IDNumber,
		EmailAddress:      a.EmailAddress,
		CountryOfInterest: a.CountryOfInterest,
		TypeOfVisa:        a.TypeOfVisa,
		EducationLevel:    a.EducationLevel,
		Diploma:           a.Diploma,
		WorkExperience:    a.WorkExperience,
		CurrentJob:        a.CurrentJob,
		TravelHistory:     a.TravelHistory,
		AnyRefusal:        a.AnyRefusal,
		Signature:         a.Signature,
		Date:              a.Date,
		BDMName:           a.BDMName,
		EnteredBy:         a.EnteredBy,
	}
}

func ToApplicantResponseList(applicants []Applicant) []ApplicantResponse {
	responses := make([]ApplicantResponse, 0, len(applicants))
	for _, a := range applicants {
		responses = append(responses, ToApplicantResponse(&a))
	}
	return responses
}
