package resume

import (
	"strings"

	"github.com/jonathan/smart-resume/internal/prompts"
	"github.com/jonathan/smart-resume/internal/types"
)

// SectionHeaders are the resume sections, in the order the model is asked to emit them.
var SectionHeaders = []string{
	"## Personal Information",
	"## Professional Summary",
	"## Work Experience",
	"## Skills",
	"## Education",
}

// BuildGenerationPrompt embeds every input field into the resume generation prompt.
func BuildGenerationPrompt(input types.ResumeInput, role string) string {
	template := prompts.MustGet(prompts.ResumeFile, prompts.GenerateResume)
	return prompts.Format(template, map[string]string{
		"Role":              role,
		"Name":              input.Name,
		"Contact":           input.Contact,
		"Summary":           input.Summary,
		"JobTitle":          input.Experience.Title,
		"Company":           input.Experience.Company,
		"ExperienceDetails": bulletize(input.Experience.Details),
		"Skills":            strings.Join(input.Skills, ", "),
		"Education":         input.Education,
	})
}

// BuildAnalysisPrompt asks for a JSON score and suggestions for the resume text.
func BuildAnalysisPrompt(resumeText string) string {
	template := prompts.MustGet(prompts.ResumeFile, prompts.AnalyzeResume)
	return prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})
}

// bulletize turns period-separated achievements into Markdown list items.
func bulletize(details string) string {
	return strings.ReplaceAll(details, ". ", ".\n- ")
}
