package screening

import (
	"context"
	"strings"

	_ "embed"
)

//go:embed prompts/job.md
var jobPromptTemplate string

//go:embed prompts/resume_en.md
var resumeEnglishPromptTemplate string

//go:embed prompts/resume_zh.md
var resumeChinesePromptTemplate string

//go:embed prompts/evaluate.md
var evaluationPromptTemplate string

const (
	placeholderText          = "{{TEXT}}"
	placeholderJobJSON       = "{{JOB_JSON}}"
	placeholderCandidateJSON = "{{CANDIDATE_JSON}}"
	placeholderExtraCriteria = "{{EXTRA_CRITERIA}}"
)

// structuredExtractor is satisfied by *extraction.Client.
type structuredExtractor interface {
	Extract(ctx context.Context, prompt string) (map[string]any, error)
}

// renderPrompt substitutes placeholders in a single pass, so document text
// that happens to contain a placeholder is left untouched.
func renderPrompt(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}

func jobPrompt(text string) string {
	template := jobPromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract the job requirements as JSON.\n\nJob description:\n" + placeholderText
	}
	return renderPrompt(template, placeholderText, text)
}

func resumePrompt(text string, lang Language) string {
	template := resumeEnglishPromptTemplate
	if lang == LanguageChinese {
		template = resumeChinesePromptTemplate
	}
	if strings.TrimSpace(template) == "" {
		template = "Extract the resume as JSON.\n\nResume text:\n" + placeholderText
	}
	return renderPrompt(template, placeholderText, text)
}
