package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Roles are the target roles offered by the form.
var Roles = []string{"Software Engineer", "Data Analyst", "Product Manager", "Other"}

// ResumeForm represents the raw fields entered by the user.
// Fields marked required must be non-empty before the orchestrator is invoked.
type ResumeForm struct {
	FullName   string `json:"full_name" yaml:"full_name" validate:"required"`
	Email      string `json:"email" yaml:"email" validate:"required"`
	Phone      string `json:"phone,omitempty" yaml:"phone"`
	LinkedIn   string `json:"linkedin,omitempty" yaml:"linkedin"`
	Summary    string `json:"summary" yaml:"summary" validate:"required"`
	JobTitle   string `json:"job_title" yaml:"job_title" validate:"required"`
	Company    string `json:"company" yaml:"company" validate:"required"`
	Experience string `json:"experience" yaml:"experience" validate:"required"`
	Skills     string `json:"skills" yaml:"skills" validate:"required"`
	Education  string `json:"education" yaml:"education" validate:"required"`
	Role       string `json:"role" yaml:"role" validate:"required,oneof='Software Engineer' 'Data Analyst' 'Product Manager' Other"`
}

// Normalize trims the name and email fields, matching how the form reads them.
func (f *ResumeForm) Normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
}

// Validate validates the ResumeForm using the validator.
func (f *ResumeForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// ToInput builds the ResumeInput sent to the orchestrator.
func (f *ResumeForm) ToInput() ResumeInput {
	contact := strings.Trim(f.Email+" | "+f.Phone+" | "+f.LinkedIn, " |")

	parts := strings.Split(f.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		skills = append(skills, strings.TrimSpace(s))
	}

	return ResumeInput{
		Name:    f.FullName,
		Contact: contact,
		Summary: f.Summary,
		Experience: Experience{
			Title:   f.JobTitle,
			Company: f.Company,
			Details: f.Experience,
		},
		Skills:    skills,
		Education: f.Education,
	}
}

// MissingFields returns the JSON names of required fields that failed validation.
func MissingFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldJSONName(fe.Field()))
	}
	return fields
}

func fieldJSONName(field string) string {
	switch field {
	case "FullName":
		return "full_name"
	case "JobTitle":
		return "job_title"
	case "LinkedIn":
		return "linkedin"
	default:
		return strings.ToLower(field)
	}
}
