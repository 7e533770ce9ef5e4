// Package screening implements the resume screening pipeline: job analysis,
// candidate extraction, fit evaluation and the orchestration of a batch.
package screening

import (
	"context"
)

// Stage is one typed step of the screening pipeline.
// Process validates its input first and fails with *InvalidInputError.
type Stage[In, Out any] interface {
	Validate(in In) error
	Process(ctx context.Context, in In) (Out, error)
}

// TextInput carries the extracted text of a document.
type TextInput struct {
	Text string `json:"text"`
}

// Document is an uploaded file before text extraction.
type Document struct {
	FileName string
	Data     []byte
}

type ExperienceRequirements struct {
	Years       string `json:"years"`
	Description string `json:"description"`
}

type EducationRequirements struct {
	Degree string `json:"degree"`
	Major  string `json:"major"`
}

// JobRequirements is the structured form of a job description.
// Every collection is non-nil so the record always serialises completely.
type JobRequirements struct {
	JobTitle               string                 `json:"job_title"`
	Industry               string                 `json:"industry"`
	RequiredSkills         []string               `json:"required_skills"`
	PreferredSkills        []string               `json:"preferred_skills"`
	Responsibilities       []string               `json:"responsibilities"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	EducationRequirements  EducationRequirements  `json:"education_requirements"`
	AdditionalRequirements []string               `json:"additional_requirements"`
}

// EmptyJobRequirements returns the all-empty record used when the oracle reply is unusable.
func EmptyJobRequirements() *JobRequirements {
	return &JobRequirements{
		RequiredSkills:         []string{},
		PreferredSkills:        []string{},
		Responsibilities:       []string{},
		AdditionalRequirements: []string{},
	}
}

type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Experience struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Major       string `json:"major"`
	IsQSTop20   bool   `json:"is_qs_top20"`
	Is985       bool   `json:"is_985"`
	Is211       bool   `json:"is_211"`
}

// CandidateProfile is the cleaned, structured form of a resume.
type CandidateProfile struct {
	BasicInfo      map[string]any   `json:"basic_info"`
	Contact        Contact          `json:"contact"`
	Summary        string           `json:"summary"`
	Skills         []string         `json:"skills"`
	Experience     []Experience     `json:"experience"`
	Education      []Education      `json:"education"`
	Projects       []map[string]any `json:"projects"`
	Certifications []map[string]any `json:"certifications"`
	Languages      []map[string]any `json:"languages"`
}

// EmptyCandidateProfile returns a profile with every collection initialised.
func EmptyCandidateProfile() *CandidateProfile {
	return &CandidateProfile{
		BasicInfo:      map[string]any{},
		Skills:         []string{},
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []map[string]any{},
		Certifications: []map[string]any{},
		Languages:      []map[string]any{},
	}
}

type Scores struct {
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	EducationMatch  float64 `json:"education_match"`
}

type Analysis struct {
	SkillsAnalysis     string `json:"skills_analysis"`
	ExperienceAnalysis string `json:"experience_analysis"`
	EducationAnalysis  string `json:"education_analysis"`
	OverallAnalysis    string `json:"overall_analysis"`
}

// Evaluation is the scored fit of one candidate against the job.
type Evaluation struct {
	Scores         Scores   `json:"scores"`
	OverallScore   float64  `json:"overall_score"`
	Recommendation string   `json:"recommendation"`
	Analysis       Analysis `json:"analysis"`
}

// EvaluationInput pairs a candidate with the requirements of the run.
type EvaluationInput struct {
	Candidate *CandidateProfile `json:"candidate_info"`
	Job       *JobRequirements  `json:"job_requirements"`
}

type CandidateResult struct {
	FileName      string            `json:"file_name"`
	CandidateInfo *CandidateProfile `json:"candidate_info"`
	Evaluation    *Evaluation       `json:"evaluation"`
}

// SkippedResume records a resume that produced no result and why.
type SkippedResume struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// ScreeningResult is the outcome of one run: candidates ranked by overall score.
type ScreeningResult struct {
	Candidates      []CandidateResult `json:"candidates"`
	JobRequirements *JobRequirements  `json:"job_requirements"`
	Skipped         []SkippedResume   `json:"skipped,omitempty"`
}
