package screening

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/logger"
)

const jobAnalyzerStage = "job_analyzer"

// JobAnalyzer turns job description text into JobRequirements with one oracle call.
type JobAnalyzer struct {
	client structuredExtractor
	logger *zap.Logger
}

var _ Stage[*TextInput, *JobRequirements] = (*JobAnalyzer)(nil)

func NewJobAnalyzer(client structuredExtractor, log *zap.Logger) *JobAnalyzer {
	return &JobAnalyzer{
		client: client,
		logger: logger.ForStage(log, jobAnalyzerStage),
	}
}

func (a *JobAnalyzer) Validate(in *TextInput) error {
	return validateText(jobAnalyzerStage, in)
}

// Process never fails on an unusable oracle reply; it returns EmptyJobRequirements instead.
func (a *JobAnalyzer) Process(ctx context.Context, in *TextInput) (*JobRequirements, error) {
	if err := a.Validate(in); err != nil {
		return nil, err
	}

	data, err := a.client.Extract(ctx, jobPrompt(in.Text))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.logger.Warn("job requirements extraction failed; using empty requirements", zap.Error(err))
		return EmptyJobRequirements(), nil
	}

	reqs := mapJobRequirements(data, a.logger)

	a.logger.Info("job requirements analyzed",
		zap.String("job_title", reqs.JobTitle),
		zap.Int("required_skills", len(reqs.RequiredSkills)),
		zap.Int("preferred_skills", len(reqs.PreferredSkills)),
	)

	return reqs, nil
}

func mapJobRequirements(data map[string]any, log *zap.Logger) *JobRequirements {
	reqs := EmptyJobRequirements()

	reqs.JobTitle = extraction.String(data["job_title"])
	reqs.Industry = extraction.String(data["industry"])
	reqs.RequiredSkills = extraction.Strings(data["required_skills"])
	reqs.PreferredSkills = extraction.Strings(data["preferred_skills"])
	reqs.Responsibilities = extraction.Strings(data["responsibilities"])
	reqs.AdditionalRequirements = extraction.Strings(data["additional_requirements"])

	if raw, ok := data["experience_requirements"]; ok && raw != nil {
		var exp ExperienceRequirements
		if err := extraction.Decode(raw, &exp); err != nil {
			log.Debug("experience requirements have unexpected shape", zap.Error(err))
		} else {
			reqs.ExperienceRequirements = ExperienceRequirements{
				Years:       strings.TrimSpace(exp.Years),
				Description: strings.TrimSpace(exp.Description),
			}
		}
	}

	if raw, ok := data["education_requirements"]; ok && raw != nil {
		var edu EducationRequirements
		if err := extraction.Decode(raw, &edu); err != nil {
			log.Debug("education requirements have unexpected shape", zap.Error(err))
		} else {
			reqs.EducationRequirements = EducationRequirements{
				Degree: strings.TrimSpace(edu.Degree),
				Major:  strings.TrimSpace(edu.Major),
			}
		}
	}

	return reqs
}

func validateText(stage string, in *TextInput) error {
	if in == nil {
		return &InvalidInputError{Stage: stage, Message: "text input is required"}
	}
	if strings.TrimSpace(in.Text) == "" {
		return &InvalidInputError{Stage: stage, Message: "text is empty"}
	}
	return nil
}
