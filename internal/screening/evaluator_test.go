package screening

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -0.5, want: 0},
		{in: 0, want: 0},
		{in: 0.42, want: 0.42},
		{in: 1, want: 1},
		{in: 7, want: 1},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 1},
		{in: math.Inf(-1), want: 0},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Fatalf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecommendIsMonotonic(t *testing.T) {
	rank := map[string]int{
		RecommendationWeak:     0,
		RecommendationModerate: 1,
		RecommendationGood:     2,
		RecommendationStrong:   3,
	}

	prev := -1
	for i := 0; i <= 100; i++ {
		score := float64(i) / 100
		tier := rank[Recommend(score)]
		if tier < prev {
			t.Fatalf("recommendation dropped at score %.2f", score)
		}
		prev = tier
	}

	boundaries := map[float64]string{
		0.8:  RecommendationStrong,
		0.79: RecommendationGood,
		0.6:  RecommendationGood,
		0.4:  RecommendationModerate,
		0.39: RecommendationWeak,
	}
	for score, want := range boundaries {
		if got := Recommend(score); got != want {
			t.Fatalf("Recommend(%v) = %q, want %q", score, got, want)
		}
	}
}

func TestOracleEvaluationTierFollowsScore(t *testing.T) {
	rank := map[string]int{
		RecommendationWeak:     0,
		RecommendationModerate: 1,
		RecommendationGood:     2,
		RecommendationStrong:   3,
	}
	// Each reply claims the tier furthest from what its score implies.
	contrary := func(score float64) string {
		if score >= 0.5 {
			return RecommendationWeak
		}
		return RecommendationStrong
	}

	prev := -1
	for i := 0; i <= 20; i++ {
		score := float64(i) / 20
		reply := fmt.Sprintf(`{"overall_score": %v, "recommendation": %q}`, score, contrary(score))
		evaluator := NewFitEvaluator(NewOracleStrategy(replyWith(reply), nil, ""), nil)

		got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
		if err != nil {
			t.Fatalf("score %.2f: unexpected error: %v", score, err)
		}
		if got.Recommendation != Recommend(got.OverallScore) {
			t.Fatalf("score %.2f: recommendation %q does not match the score tier", score, got.Recommendation)
		}
		tier := rank[got.Recommendation]
		if tier < prev {
			t.Fatalf("recommendation dropped at score %.2f", score)
		}
		prev = tier
	}
}

func TestOracleEvaluationNaNScoreIsWeak(t *testing.T) {
	client := replyWith(`{"overall_score": "NaN", "recommendation": "Strong Match - Highly Recommended"}`)
	evaluator := NewFitEvaluator(NewOracleStrategy(client, nil, ""), nil)

	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OverallScore != 0 || got.Recommendation != RecommendationWeak {
		t.Fatalf("expected 0 / weak, got %v / %q", got.OverallScore, got.Recommendation)
	}
}

func TestFitEvaluatorOverridesContradictingTier(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	evaluator := NewFitEvaluator(stubStrategy{eval: &Evaluation{OverallScore: 0.9, Recommendation: RecommendationWeak}}, zap.New(core))

	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Recommendation != RecommendationStrong {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
	if logs.FilterMessage("recommendation replaced by score tier").Len() != 1 {
		t.Fatalf("expected the override to be logged, got %d entries", logs.Len())
	}
}

func TestWeightedScore(t *testing.T) {
	steps := []float64{0, 0.1, 0.25, 0.333, 0.5, 0.77, 1}
	for _, s := range steps {
		for _, e := range steps {
			for _, d := range steps {
				got := WeightedScore(Scores{SkillsMatch: s, ExperienceMatch: e, EducationMatch: d})
				want := math.Round((0.4*s+0.4*e+0.2*d)*100) / 100
				if got != want {
					t.Fatalf("WeightedScore(%v, %v, %v) = %v, want %v", s, e, d, got, want)
				}
				if got < 0 || got > 1 {
					t.Fatalf("weighted score out of range: %v", got)
				}
			}
		}
	}
}

func TestFitEvaluatorRejectsInvalidInput(t *testing.T) {
	evaluator := NewFitEvaluator(NewLexicalStrategy(), nil)

	inputs := []*EvaluationInput{
		nil,
		{Job: EmptyJobRequirements()},
		{Candidate: EmptyCandidateProfile()},
	}
	for _, in := range inputs {
		_, err := evaluator.Process(context.Background(), in)
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError for %+v, got %v", in, err)
		}
	}
}

func TestOracleStrategyClampsScores(t *testing.T) {
	client := replyWith(`{
		"scores": {"skills_match": 1.7, "experience_match": "-0.3", "education_match": "high"},
		"overall_score": "0.85",
		"recommendation": "Strong Match - Highly Recommended",
		"analysis": {"skills_analysis": "great", "overall_analysis": "hire"}
	}`)
	evaluator := NewFitEvaluator(NewOracleStrategy(client, nil, ""), nil)

	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Scores != (Scores{SkillsMatch: 1, ExperienceMatch: 0, EducationMatch: 0}) {
		t.Fatalf("unexpected scores: %+v", got.Scores)
	}
	if got.OverallScore != 0.85 {
		t.Fatalf("unexpected overall score: %v", got.OverallScore)
	}
	if got.Recommendation != RecommendationStrong {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
	if got.Analysis.SkillsAnalysis != "great" || got.Analysis.OverallAnalysis != "hire" {
		t.Fatalf("unexpected analysis: %+v", got.Analysis)
	}
}

func TestOracleStrategyRepairsRecommendationAndAnalysis(t *testing.T) {
	client := replyWith(`{"overall_score": 0.65, "recommendation": "Maybe", "analysis": "solid backend profile"}`)
	evaluator := NewFitEvaluator(NewOracleStrategy(client, nil, ""), nil)

	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Recommendation != RecommendationGood {
		t.Fatalf("expected recommendation derived from score, got %q", got.Recommendation)
	}
	if got.Analysis.OverallAnalysis != "solid backend profile" {
		t.Fatalf("unexpected analysis: %+v", got.Analysis)
	}
	if got.Scores != (Scores{}) {
		t.Fatalf("expected missing scores to be zero, got %+v", got.Scores)
	}
}

func TestOracleStrategyDefaultsOnDecodeFailure(t *testing.T) {
	evaluator := NewFitEvaluator(NewOracleStrategy(replyWith("no json here"), nil, ""), nil)

	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultEvaluation()
	if got.OverallScore != 0 || got.Scores != (Scores{}) || got.Recommendation != RecommendationWeak || got.Analysis != want.Analysis {
		t.Fatalf("expected default evaluation, got %+v", got)
	}
}

func TestOracleStrategyPromptEmbedsRecords(t *testing.T) {
	client := replyWith(`{}`)
	strategy := NewOracleStrategy(client, nil, "  Must speak {{German}}\n\n  fluently  ")

	candidate := EmptyCandidateProfile()
	candidate.Skills = []string{"Go & <Rust>"}
	job := EmptyJobRequirements()
	job.JobTitle = "后端工程师"

	if _, err := strategy.Evaluate(context.Background(), candidate, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := client.lastPrompt()
	if !containsAll(prompt, `"job_title": "后端工程师"`, `"Go & <Rust>"`, "Must speak German\nfluently") {
		t.Fatalf("unexpected prompt: %s", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("prompt still contains placeholders: %s", prompt)
	}
}

func TestSanitizeCriteriaLimitsLength(t *testing.T) {
	long := strings.Repeat("a", maxExtraCriteriaLength+50)
	if got := sanitizeCriteria(long); len([]rune(got)) != maxExtraCriteriaLength {
		t.Fatalf("unexpected length: %d", len([]rune(got)))
	}
	if got := sanitizeCriteria(" \n \n"); got != "" {
		t.Fatalf("expected empty criteria, got %q", got)
	}
}

type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }

func (failingStrategy) Evaluate(context.Context, *CandidateProfile, *JobRequirements) (*Evaluation, error) {
	return nil, errors.New("boom")
}

type stubStrategy struct {
	eval *Evaluation
}

func (stubStrategy) Name() string { return "stub" }

func (s stubStrategy) Evaluate(context.Context, *CandidateProfile, *JobRequirements) (*Evaluation, error) {
	return s.eval, nil
}

type wildStrategy struct{}

func (wildStrategy) Name() string { return "wild" }

func (wildStrategy) Evaluate(context.Context, *CandidateProfile, *JobRequirements) (*Evaluation, error) {
	return &Evaluation{
		Scores:         Scores{SkillsMatch: 3, ExperienceMatch: math.NaN(), EducationMatch: -1},
		OverallScore:   0.45,
		Recommendation: "unknown",
	}, nil
}

func TestFitEvaluatorNormalizesAnyStrategy(t *testing.T) {
	evaluator := NewFitEvaluator(wildStrategy{}, nil)
	got, err := evaluator.Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Scores != (Scores{SkillsMatch: 1}) {
		t.Fatalf("unexpected scores: %+v", got.Scores)
	}
	if got.Recommendation != RecommendationModerate {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
	if evaluator.Strategy() != "wild" {
		t.Fatalf("unexpected strategy name: %s", evaluator.Strategy())
	}
}

func TestFitEvaluatorWrapsStrategyErrors(t *testing.T) {
	_, err := NewFitEvaluator(failingStrategy{}, nil).Process(context.Background(), &EvaluationInput{Candidate: EmptyCandidateProfile(), Job: EmptyJobRequirements()})
	if err == nil || !strings.Contains(err.Error(), "failing strategy: boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}
