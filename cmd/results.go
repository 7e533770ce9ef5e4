package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved screening results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved results, newest first",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		store, logger := openStore()

		list, err := store.List()
		if err != nil {
			logger.Fatal("listing results", zap.Error(err))
		}

		if err := printSummaries(os.Stdout, list); err != nil {
			logger.Fatal("printing results", zap.Error(err))
		}
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one saved result",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, logger := openStore()

		record, err := store.Get(args[0])
		if err != nil {
			logger.Fatal("reading result", zap.Error(err))
		}

		if cmd.Flag("full").Value.String() == "true" {
			err = writeJSON(os.Stdout, record)
		} else {
			fmt.Fprintf(os.Stdout, "%s  job: %s\n\n", record.Timestamp.Format(time.RFC3339), record.JDFile)
			err = printRanking(os.Stdout, record.Result)
		}
		if err != nil {
			logger.Fatal("printing result", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsListCmd, resultsShowCmd)

	resultsShowCmd.Flags().BoolP("full", "f", false, "print the whole stored record as json")
}

func openStore() (*results.Store, *zap.Logger) {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return results.New(config.Screening.ResultsDir, logger), logger
}

func printSummaries(w io.Writer, list []results.Summary) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no saved results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILENAME\tTIMESTAMP\tJOB\tCANDIDATES")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.FileName, s.Timestamp.Format(time.RFC3339), s.JDFile, s.Candidates)
	}
	return tw.Flush()
}
