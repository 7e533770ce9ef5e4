package screening

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/logger"
)

const (
	orchestratorStage = "orchestrator"

	DefaultWorkers = 4
)

var errEmptyResume = errors.New("no text could be extracted")

// Converter extracts plain text from a document. *document.Converter implements it.
type Converter interface {
	Convert(ctx context.Context, data []byte, fileName string) (string, error)
}

// Orchestrator screens a batch of resumes against one job description.
// It keeps no state between runs.
type Orchestrator struct {
	converter Converter
	analyzer  Stage[*TextInput, *JobRequirements]
	extractor Stage[*TextInput, *CandidateProfile]
	evaluator Stage[*EvaluationInput, *Evaluation]
	workers   int
	logger    *zap.Logger
}

// OrchestratorOption tweaks an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithWorkers bounds how many resumes are processed at once. Values below one keep the default.
func WithWorkers(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

func NewOrchestrator(
	converter Converter,
	analyzer Stage[*TextInput, *JobRequirements],
	extractor Stage[*TextInput, *CandidateProfile],
	evaluator Stage[*EvaluationInput, *Evaluation],
	log *zap.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		converter: converter,
		analyzer:  analyzer,
		extractor: extractor,
		evaluator: evaluator,
		workers:   DefaultWorkers,
		logger:    logger.ForStage(log, orchestratorStage),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run analyzes the job once, then extracts and evaluates every resume.
// A failing resume is skipped and reported in ScreeningResult.Skipped.
// Candidates are ordered by overall score, ties keep the input order.
func (o *Orchestrator) Run(ctx context.Context, job Document, resumes []Document) (*ScreeningResult, error) {
	jobText, err := o.converter.Convert(ctx, job.Data, job.FileName)
	if err != nil {
		return nil, fmt.Errorf("convert job description %q: %w", job.FileName, err)
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &EmptyDocumentError{FileName: job.FileName}
	}

	o.logger.Info("analyzing job description", logger.File(job.FileName))

	reqs, err := o.analyzer.Process(ctx, &TextInput{Text: jobText})
	if err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}

	results := make([]*CandidateResult, len(resumes))
	failures := make([]error, len(resumes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, doc := range resumes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := o.screenResume(gctx, doc, reqs)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				o.logger.Warn("skipping resume", logger.File(doc.FileName), zap.Error(err))
				failures[i] = err
				return nil
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ScreeningResult{
		Candidates:      make([]CandidateResult, 0, len(resumes)),
		JobRequirements: reqs,
	}
	for i, result := range results {
		if result != nil {
			out.Candidates = append(out.Candidates, *result)
			continue
		}
		reason := "unknown error"
		if failures[i] != nil {
			reason = failures[i].Error()
		}
		out.Skipped = append(out.Skipped, SkippedResume{FileName: resumes[i].FileName, Reason: reason})
	}

	o.logger.Info("screening step",
		zap.Int("initial", len(resumes)),
		zap.Int("dropped", len(out.Skipped)),
		zap.Int("left", len(out.Candidates)),
	)

	if len(out.Candidates) == 0 {
		return nil, &NoValidCandidatesError{Skipped: out.Skipped}
	}

	sort.SliceStable(out.Candidates, func(a, b int) bool {
		return out.Candidates[a].Evaluation.OverallScore > out.Candidates[b].Evaluation.OverallScore
	})

	return out, nil
}

func (o *Orchestrator) screenResume(ctx context.Context, doc Document, reqs *JobRequirements) (*CandidateResult, error) {
	text, err := o.converter.Convert(ctx, doc.Data, doc.FileName)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyResume
	}

	profile, err := o.extractor.Process(ctx, &TextInput{Text: text})
	if err != nil {
		return nil, fmt.Errorf("extract candidate: %w", err)
	}

	eval, err := o.evaluator.Process(ctx, &EvaluationInput{Candidate: profile, Job: reqs})
	if err != nil {
		return nil, fmt.Errorf("evaluate candidate: %w", err)
	}

	o.logger.Info("resume screened",
		logger.File(doc.FileName),
		zap.Float64("overall_score", eval.OverallScore),
		zap.String("recommendation", eval.Recommendation),
	)

	return &CandidateResult{
		FileName:      doc.FileName,
		CandidateInfo: profile,
		Evaluation:    eval,
	}, nil
}
