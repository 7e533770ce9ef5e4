package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/ai/openai"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/results"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
)

const (
	PromptSave     = "Save results"
	PromptDetails  = "Show candidate details"
	PromptSkipped  = "Show skipped resumes"
	PromptToFile   = "Dump results to file"
	PromptExit     = "Exit"
	PromptBack     = "back"
	geminiKeyEnv   = "SCREENER_GEMINI_API_KEY"
	openAIKeyEnv   = "SCREENER_OPENAI_API_KEY"
	detailsLabelFm = "%d. %s (%.2f)"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSave, PromptDetails, PromptSkipped, PromptToFile, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen JOB_FILE RESUME_FILE|DIR...",
	Short: "Screen resumes against a job description and rank the candidates",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().BoolP("save", "s", false, "save the result to the results directory")
	screenCmd.Flags().BoolP("yes", "y", false, "do not show the interactive menu after screening")
	screenCmd.Flags().String("strategy", "", "evaluation strategy: oracle or lexical")
	screenCmd.Flags().IntP("workers", "w", 0, "resumes processed concurrently")
	screenCmd.Flags().String("extra-criteria", "", "additional screening criteria passed to the oracle")

	viper.BindPFlag("screening.strategy", screenCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("screening.workers", screenCmd.Flags().Lookup("workers"))
	viper.BindPFlag("screening.extra-criteria", screenCmd.Flags().Lookup("extra-criteria"))
}

// screen runs one batch and then hands control to the menu.
func screen(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", buildVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	job, err := readDocument(args[0])
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	resumes, err := collectResumes(args[1:], logger)
	if err != nil {
		logger.Fatal("reading resumes", zap.Error(err))
	}
	if len(resumes) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	orchestrator, err := newOrchestrator(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	logger.Info("starting the screening", zap.Int("resumes", len(resumes)), zap.String("strategy", config.Screening.Strategy))

	result, err := orchestrator.Run(ctx, job, resumes)
	if err != nil {
		var noCandidates *screening.NoValidCandidatesError
		if errors.As(err, &noCandidates) {
			for _, s := range noCandidates.Skipped {
				logger.Warn("resume skipped", zap.String("file_name", s.FileName), zap.String("reason", s.Reason))
			}
			logger.Info("exiting", zap.String("reason", "no valid candidates"))
			return
		}
		logger.Fatal("screening failed", zap.Error(err))
	}

	if err := printRanking(os.Stdout, result); err != nil {
		logger.Fatal("printing the ranking", zap.Error(err))
	}

	store := results.New(config.Screening.ResultsDir, logger)

	if cmd.Flag("save").Value.String() == "true" {
		if err := handleAction(PromptSave, store, logger, result, job.FileName); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if cmd.Flag("yes").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, store, logger, result, job.FileName); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, store *results.Store, logger *zap.Logger, result *screening.ScreeningResult, jdFile string) error {
	switch action {
	case PromptSave:
		name, err := store.Save(result, jdFile)
		if err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		logger.Info("result saved", zap.String("filename", filepath.Join(store.Dir(), name)))
		return nil
	case PromptDetails:
		return showDetails(os.Stdout, result)
	case PromptSkipped:
		if len(result.Skipped) == 0 {
			logger.Info("no resumes were skipped")
			return nil
		}
		pretty, _ := json.MarshalIndent(result.Skipped, "", "  ")
		logger.Info(string(pretty), zap.Int("skipped count", len(result.Skipped)))
		return nil
	case PromptToFile:
		filename, err := results.DumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(w io.Writer, result *screening.ScreeningResult) error {
	for {
		items := make([]string, 0, len(result.Candidates)+1)
		for i, c := range result.Candidates {
			score := 0.0
			if c.Evaluation != nil {
				score = c.Evaluation.OverallScore
			}
			items = append(items, fmt.Sprintf(detailsLabelFm, i+1, c.FileName, score))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		if err := writeJSON(w, result.Candidates[idx]); err != nil {
			return err
		}
	}
}

func printRanking(w io.Writer, result *screening.ScreeningResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFILE\tSCORE\tRECOMMENDATION\tCONTACT\tPRESTIGE")
	for _, row := range results.Ranking(result) {
		contact := row["email"]
		if contact == "" {
			contact = row["phone"]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row["rank"], row["file"], row["overall_score"], row["recommendation"], dash(contact), dash(row["prestige"]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if n := len(result.Skipped); n > 0 {
		fmt.Fprintf(w, "\n%d resume(s) skipped\n", n)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readDocument(path string) (screening.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return screening.Document{}, err
	}
	return screening.Document{FileName: filepath.Base(path), Data: data}, nil
}

// collectResumes reads the given files. Directories contribute their supported files, sorted by name.
func collectResumes(paths []string, logger *zap.Logger) ([]screening.Document, error) {
	var docs []screening.Document
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			doc, err := readDocument(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !document.Supported(entry.Name()) {
				logger.Debug("ignoring unsupported file", zap.String("path", filepath.Join(path, entry.Name())))
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			doc, err := readDocument(filepath.Join(path, name))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func newOrchestrator(ctx context.Context, config *Config, log *zap.Logger) (*screening.Orchestrator, error) {
	oracle, err := newOracle(ctx, config.AI, log)
	if err != nil {
		return nil, fmt.Errorf("building ai oracle: %w", err)
	}

	client := extraction.New(oracle, log,
		extraction.WithTimeout(config.AI.Timeout),
		extraction.WithMaxLogLength(config.AI.MaxLogLength),
	)

	var strategy screening.Strategy
	switch config.Screening.Strategy {
	case screening.StrategyLexical:
		strategy = screening.NewLexicalStrategy()
	default:
		strategy = screening.NewOracleStrategy(client, log, config.Screening.ExtraCriteria)
	}

	var converterOpts []document.Option
	if url := strings.TrimSpace(config.Document.ParserURL); url != "" {
		converterOpts = append(converterOpts, document.WithRemoteParser(url, config.Document.Timeout))
	}

	return screening.NewOrchestrator(
		document.New(log, converterOpts...),
		screening.NewJobAnalyzer(client, log),
		screening.NewCandidateExtractor(client, log),
		screening.NewFitEvaluator(strategy, log),
		log,
		screening.WithWorkers(config.Screening.Workers),
	), nil
}

func newOracle(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Oracle, error) {
	switch cfg.Provider {
	case providerOpenAI:
		apiKey, err := secrets.Load(secrets.Source{
			Name:     "openai api key",
			Value:    cfg.OpenAI.APIKey,
			File:     cfg.OpenAI.APIKeyFile,
			Env:      openAIKeyEnv,
			Optional: true,
		})
		if err != nil {
			return nil, err
		}

		client, err := openai.New(openai.Config{
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			APIKey:  apiKey,
			Timeout: cfg.Timeout,
		}, logger.WithCommonFields(log, providerOpenAI, cfg.OpenAI.Model))
		if err != nil {
			return nil, err
		}
		return client, nil
	case providerGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   geminiKeyEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiKeyEnv)
		}

		genLogger := logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model).
			With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
