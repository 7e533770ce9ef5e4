package screening

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

const candidateExtractorStage = "candidate_extractor"

// CandidateExtractor turns resume text into a cleaned CandidateProfile.
type CandidateExtractor struct {
	client structuredExtractor
	logger *zap.Logger
}

var _ Stage[*TextInput, *CandidateProfile] = (*CandidateExtractor)(nil)

func NewCandidateExtractor(client structuredExtractor, log *zap.Logger) *CandidateExtractor {
	return &CandidateExtractor{
		client: client,
		logger: logger.ForStage(log, candidateExtractorStage),
	}
}

func (e *CandidateExtractor) Validate(in *TextInput) error {
	return validateText(candidateExtractorStage, in)
}

// Process detects the resume language, extracts it with the matching prompt and
// cleans the result. Cleaning runs even when the oracle reply was unusable.
func (e *CandidateExtractor) Process(ctx context.Context, in *TextInput) (*CandidateProfile, error) {
	if err := e.Validate(in); err != nil {
		return nil, err
	}

	lang := DetectLanguage(in.Text)

	data, err := e.client.Extract(ctx, resumePrompt(in.Text, lang))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("resume extraction failed; using empty profile",
			zap.String("language", string(lang)),
			zap.Error(err),
		)
		data = map[string]any{}
	}

	profile := cleanProfile(data, lang)

	e.logger.Debug("candidate profile extracted",
		zap.String("language", string(lang)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", len(profile.Experience)),
		zap.Int("education", len(profile.Education)),
	)

	return profile, nil
}
