package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-screener/internal/results"
	"github.com/spigell/resume-screener/internal/screening"
)

func rankedResult() *screening.ScreeningResult {
	profile := screening.EmptyCandidateProfile()
	profile.Contact.Phone = "+8613800138000"

	return &screening.ScreeningResult{
		Candidates: []screening.CandidateResult{
			{
				FileName:      "alice.pdf",
				CandidateInfo: profile,
				Evaluation: &screening.Evaluation{
					OverallScore:   0.72,
					Recommendation: screening.RecommendationGood,
				},
			},
		},
		JobRequirements: screening.EmptyJobRequirements(),
		Skipped:         []screening.SkippedResume{{FileName: "broken.pdf", Reason: "convert: bad pdf"}},
	}
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	if err := printRanking(&buf, rankedResult()); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"RANK", "alice.pdf", "0.72", screening.RecommendationGood, "+8613800138000", "1 resume(s) skipped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHandleAction(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	store := results.New(t.TempDir(), log)
	result := rankedResult()

	if err := handleAction(PromptSave, store, log, result, "job.pdf"); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := store.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one saved result, got %v (%v)", list, err)
	}

	if err := handleAction(PromptSkipped, store, log, result, "job.pdf"); err != nil {
		t.Fatalf("skipped: %v", err)
	}
	if logs.FilterField(zap.Int("skipped count", 1)).Len() != 1 {
		t.Fatal("expected the skipped report to be logged")
	}

	t.Setenv("TMPDIR", t.TempDir())
	if err := handleAction(PromptToFile, store, log, result, "job.pdf"); err != nil {
		t.Fatalf("dump: %v", err)
	}

	if err := handleAction(PromptExit, store, log, result, "job.pdf"); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
	if err := handleAction("launch rockets", store, log, result, "job.pdf"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestCollectResumes(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.pdf":     "%PDF",
		"a.docx":    "PK",
		"notes.txt": "ignored",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	single := filepath.Join(t.TempDir(), "single.pdf")
	if err := os.WriteFile(single, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write single: %v", err)
	}

	docs, err := collectResumes([]string{single, dir}, zap.NewNop())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	var names []string
	for _, d := range docs {
		names = append(names, d.FileName)
	}
	if got := strings.Join(names, ","); got != "single.pdf,a.docx,b.pdf" {
		t.Fatalf("unexpected documents: %s", got)
	}

	if _, err := collectResumes([]string{filepath.Join(dir, "missing.pdf")}, zap.NewNop()); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestNewOracleRequiresGeminiKey(t *testing.T) {
	t.Setenv(geminiKeyEnv, "")

	cfg := &AIConfig{Provider: providerGemini, Gemini: &GeminiConfig{}}
	if _, err := newOracle(context.Background(), cfg, zap.NewNop()); err == nil || !strings.Contains(err.Error(), geminiKeyEnv) {
		t.Fatalf("expected a missing key error naming %s, got %v", geminiKeyEnv, err)
	}
}

func TestNewOracleOpenAIWithoutKey(t *testing.T) {
	t.Setenv(openAIKeyEnv, "")

	cfg := &AIConfig{Provider: providerOpenAI, OpenAI: &OpenAIConfig{Model: "local-model"}}
	oracle, err := newOracle(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("openai oracle: %v", err)
	}
	if oracle.Model() != "local-model" {
		t.Fatalf("unexpected model: %s", oracle.Model())
	}
}
