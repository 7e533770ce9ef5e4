package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/logger"
)

const (
	StrategyOracle = "oracle"

	maxExtraCriteriaLength = 2000
)

// OracleStrategy asks the oracle for the whole Evaluation in one round trip.
type OracleStrategy struct {
	client        structuredExtractor
	extraCriteria string
	logger        *zap.Logger
}

func NewOracleStrategy(client structuredExtractor, log *zap.Logger, extraCriteria string) *OracleStrategy {
	return &OracleStrategy{
		client:        client,
		extraCriteria: sanitizeCriteria(extraCriteria),
		logger:        logger.ForStage(log, fitEvaluatorStage),
	}
}

func (s *OracleStrategy) Name() string { return StrategyOracle }

func (s *OracleStrategy) Evaluate(ctx context.Context, candidate *CandidateProfile, job *JobRequirements) (*Evaluation, error) {
	jobJSON, err := marshalIndent(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job requirements: %w", err)
	}

	candidateJSON, err := marshalIndent(candidate)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate profile: %w", err)
	}

	data, err := s.client.Extract(ctx, s.prompt(jobJSON, candidateJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("evaluation reply unusable; using default evaluation", zap.Error(err))
		return DefaultEvaluation(), nil
	}

	return mapEvaluation(data, s.logger), nil
}

func (s *OracleStrategy) prompt(jobJSON, candidateJSON string) string {
	criteria := ""
	if s.extraCriteria != "" {
		criteria = "\nAdditional screening criteria:\n" + s.extraCriteria + "\n"
	}

	template := evaluationPromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job requirements:\n{{JOB_JSON}}\n\nCandidate:\n{{CANDIDATE_JSON}}\n{{EXTRA_CRITERIA}}\nJSON Response:"
	}

	return renderPrompt(template,
		placeholderJobJSON, jobJSON,
		placeholderCandidateJSON, candidateJSON,
		placeholderExtraCriteria, criteria,
	)
}

func mapEvaluation(data map[string]any, log *zap.Logger) *Evaluation {
	eval := &Evaluation{}

	if scores, ok := data["scores"].(map[string]any); ok {
		eval.Scores = Scores{
			SkillsMatch:     ClampScore(extraction.Float(scores["skills_match"])),
			ExperienceMatch: ClampScore(extraction.Float(scores["experience_match"])),
			EducationMatch:  ClampScore(extraction.Float(scores["education_match"])),
		}
	}
	eval.OverallScore = ClampScore(extraction.Float(data["overall_score"]))

	// The tier always follows the score so both strategies share one threshold table.
	eval.Recommendation = Recommend(eval.OverallScore)
	if got := extraction.String(data["recommendation"]); got != "" && got != eval.Recommendation {
		log.Debug("oracle recommendation replaced by score tier",
			zap.String("recommendation", got),
			zap.Float64("overall_score", eval.OverallScore),
		)
	}

	switch analysis := data["analysis"].(type) {
	case string:
		eval.Analysis.OverallAnalysis = strings.TrimSpace(analysis)
	case map[string]any:
		if err := extraction.Decode(analysis, &eval.Analysis); err != nil {
			log.Debug("analysis has unexpected shape", zap.Error(err))
			eval.Analysis = Analysis{OverallAnalysis: extraction.String(analysis["overall_analysis"])}
		}
	}

	return eval
}

// sanitizeCriteria keeps recruiter-supplied criteria on plain text and bounded.
func sanitizeCriteria(s string) string {
	s = strings.NewReplacer("{{", "", "}}", "").Replace(s)
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	s = strings.Join(kept, "\n")

	if utf8.RuneCountInString(s) > maxExtraCriteriaLength {
		s = string([]rune(s)[:maxExtraCriteriaLength])
	}
	return s
}

// marshalIndent keeps non-ASCII text and markup readable for the oracle.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
