package screening

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

const fitEvaluatorStage = "fit_evaluator"

// Recommendation tiers, from best to worst.
const (
	RecommendationStrong   = "Strong Match - Highly Recommended"
	RecommendationGood     = "Good Match - Recommended"
	RecommendationModerate = "Moderate Match - Consider for Interview"
	RecommendationWeak     = "Weak Match - Not Recommended"
)

// Score weights of the lexical strategy.
const (
	SkillsWeight     = 0.4
	ExperienceWeight = 0.4
	EducationWeight  = 0.2
)

// Strategy scores one candidate against the job requirements.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, candidate *CandidateProfile, job *JobRequirements) (*Evaluation, error)
}

// FitEvaluator runs a Strategy and enforces the Evaluation contract on its output.
type FitEvaluator struct {
	strategy Strategy
	logger   *zap.Logger
}

var _ Stage[*EvaluationInput, *Evaluation] = (*FitEvaluator)(nil)

func NewFitEvaluator(strategy Strategy, log *zap.Logger) *FitEvaluator {
	return &FitEvaluator{
		strategy: strategy,
		logger:   logger.ForStage(log, fitEvaluatorStage),
	}
}

// Strategy returns the name of the configured strategy.
func (f *FitEvaluator) Strategy() string {
	if f.strategy == nil {
		return ""
	}
	return f.strategy.Name()
}

func (f *FitEvaluator) Validate(in *EvaluationInput) error {
	switch {
	case in == nil:
		return &InvalidInputError{Stage: fitEvaluatorStage, Message: "evaluation input is required"}
	case in.Candidate == nil:
		return &InvalidInputError{Stage: fitEvaluatorStage, Message: "candidate_info is required"}
	case in.Job == nil:
		return &InvalidInputError{Stage: fitEvaluatorStage, Message: "job_requirements is required"}
	}
	return nil
}

func (f *FitEvaluator) Process(ctx context.Context, in *EvaluationInput) (*Evaluation, error) {
	if err := f.Validate(in); err != nil {
		return nil, err
	}
	if f.strategy == nil {
		return nil, fmt.Errorf("evaluation strategy is not configured")
	}

	eval, err := f.strategy.Evaluate(ctx, in.Candidate, in.Job)
	if err != nil {
		return nil, fmt.Errorf("%s strategy: %w", f.strategy.Name(), err)
	}
	if eval == nil {
		eval = DefaultEvaluation()
	}

	if replaced := normalizeEvaluation(eval); replaced != "" {
		f.logger.Debug("recommendation replaced by score tier",
			zap.String("strategy", f.strategy.Name()),
			zap.String("recommendation", replaced),
			zap.Float64("overall_score", eval.OverallScore),
		)
	}

	f.logger.Debug("candidate evaluated",
		zap.String("strategy", f.strategy.Name()),
		zap.Float64("overall_score", eval.OverallScore),
		zap.String("recommendation", eval.Recommendation),
	)

	return eval, nil
}

// ClampScore maps any value into [0,1]. NaN becomes 0.
func ClampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Recommend derives the recommendation tier from an overall score.
func Recommend(score float64) string {
	switch {
	case score >= 0.8:
		return RecommendationStrong
	case score >= 0.6:
		return RecommendationGood
	case score >= 0.4:
		return RecommendationModerate
	default:
		return RecommendationWeak
	}
}

// WeightedScore combines the dimension scores and rounds to two decimals.
func WeightedScore(s Scores) float64 {
	total := SkillsWeight*s.SkillsMatch + ExperienceWeight*s.ExperienceMatch + EducationWeight*s.EducationMatch
	return math.Round(total*100) / 100
}

// DefaultEvaluation is returned when the oracle reply cannot be used.
func DefaultEvaluation() *Evaluation {
	return &Evaluation{
		Recommendation: RecommendationWeak,
		Analysis: Analysis{
			SkillsAnalysis:     "Skills analysis is unavailable.",
			ExperienceAnalysis: "Experience analysis is unavailable.",
			EducationAnalysis:  "Education analysis is unavailable.",
			OverallAnalysis:    "The evaluation could not be completed.",
		},
	}
}

// normalizeEvaluation clamps the scores and ties the recommendation to the
// overall score tier. It returns the discarded recommendation, if any.
func normalizeEvaluation(eval *Evaluation) string {
	eval.Scores.SkillsMatch = ClampScore(eval.Scores.SkillsMatch)
	eval.Scores.ExperienceMatch = ClampScore(eval.Scores.ExperienceMatch)
	eval.Scores.EducationMatch = ClampScore(eval.Scores.EducationMatch)
	eval.OverallScore = ClampScore(eval.OverallScore)

	tier := Recommend(eval.OverallScore)
	if eval.Recommendation == tier {
		return ""
	}
	replaced := eval.Recommendation
	eval.Recommendation = tier
	return replaced
}
