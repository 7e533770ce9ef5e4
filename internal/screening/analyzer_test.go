package screening

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/extraction"
)

type fixedOracle struct {
	reply string
}

func (o fixedOracle) Complete(context.Context, string, string, ai.Sampling) (string, error) {
	return o.reply, nil
}

func (o fixedOracle) Model() string { return "fixed" }

func TestJobAnalyzerMapsReply(t *testing.T) {
	client := replyWith("```json\n" + `{
		"job_title": " Backend Engineer ",
		"industry": "FinTech",
		"required_skills": ["Go", " ", "PostgreSQL"],
		"preferred_skills": "Kubernetes",
		"responsibilities": ["Build APIs"],
		"experience_requirements": {"years": 3, "description": "backend services"},
		"education_requirements": {"degree": "Bachelor", "major": "CS"},
		"additional_requirements": []
	}` + "\n```")

	analyzer := NewJobAnalyzer(client, zap.NewNop())

	got, err := analyzer.Process(context.Background(), &TextInput{Text: "We hire a Go engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &JobRequirements{
		JobTitle:               "Backend Engineer",
		Industry:               "FinTech",
		RequiredSkills:         []string{"Go", "PostgreSQL"},
		PreferredSkills:        []string{"Kubernetes"},
		Responsibilities:       []string{"Build APIs"},
		ExperienceRequirements: ExperienceRequirements{Years: "3", Description: "backend services"},
		EducationRequirements:  EducationRequirements{Degree: "Bachelor", Major: "CS"},
		AdditionalRequirements: []string{},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected requirements:\n got: %+v\nwant: %+v", got, want)
	}

	if !containsAll(client.lastPrompt(), "We hire a Go engineer", "required_skills") {
		t.Fatalf("prompt does not embed the job text and schema: %q", client.lastPrompt())
	}
}

func TestJobAnalyzerFallsBackOnUndecodableReply(t *testing.T) {
	client := extraction.New(fixedOracle{reply: "Sorry, I cannot parse this job."}, nil)
	analyzer := NewJobAnalyzer(client, nil)

	got, err := analyzer.Process(context.Background(), &TextInput{Text: "job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(got, EmptyJobRequirements()) {
		t.Fatalf("expected empty requirements, got %+v", got)
	}
}

func TestJobAnalyzerIgnoresMalformedSections(t *testing.T) {
	client := replyWith(`{"job_title": "QA", "experience_requirements": "five years"}`)

	got, err := NewJobAnalyzer(client, nil).Process(context.Background(), &TextInput{Text: "job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.JobTitle != "QA" {
		t.Fatalf("unexpected title: %q", got.JobTitle)
	}
	if got.ExperienceRequirements != (ExperienceRequirements{}) {
		t.Fatalf("expected empty experience requirements, got %+v", got.ExperienceRequirements)
	}
	if got.RequiredSkills == nil || got.Responsibilities == nil {
		t.Fatalf("expected non-nil empty collections, got %+v", got)
	}
}

func TestJobAnalyzerRejectsInvalidInput(t *testing.T) {
	analyzer := NewJobAnalyzer(replyWith(`{}`), nil)

	for _, in := range []*TextInput{nil, {Text: "  \n"}} {
		_, err := analyzer.Process(context.Background(), in)
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError for %+v, got %v", in, err)
		}
	}
}

func TestJobAnalyzerReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedExtractor{reply: func(string) (string, error) { return "", context.Canceled }}

	_, err := NewJobAnalyzer(client, nil).Process(ctx, &TextInput{Text: "job"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
