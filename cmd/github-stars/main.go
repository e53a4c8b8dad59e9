package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	stars "github.com/ianfoo/github-stars"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const noRepositoriesNotice = "No repositories provided on stdin."

func main() {
	log, err := logger()
	if err != nil {
		exit(err)
	}
	defer log.Sync()
	if err := newRootCmd(log).Execute(); err != nil {
		exit(err)
	}
}

// logger is silent unless ENV asks for a development or production logger.
// Either one writes to stderr, leaving stdout to the report.
func logger() (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	switch strings.ToLower(os.Getenv("ENV")) {
	case "dev", "development":
		log, err = zap.NewDevelopment()
	case "prod", "production":
		log, err = zap.NewProduction()
	default:
		log = zap.NewNop()
	}
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// newRootCmd builds the command. options are applied to the fetcher after
// the defaults, which lets tests aim it at a local server.
func newRootCmd(log *zap.SugaredLogger, options ...func(*stars.Fetcher)) *cobra.Command {
	return &cobra.Command{
		Use:   "github-stars [--markdown|-m] < repositories.txt",
		Short: "Report the GitHub stargazers count of repositories read from stdin",
		Long: `github-stars reads repositories in owner/name format from standard input,
one per line, looks up how many stars each one has on GitHub and prints them
sorted by stars, most starred first.

The report is a table unless --markdown or -m is given, in which case it is
a markdown list of links. Requests are made one at a time, 700ms apart.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			repos := stars.ReadRepositories(cmd.InOrStdin())
			if len(repos) == 0 {
				fmt.Fprintln(out, noRepositoriesNotice)
				return nil
			}
			format := stars.FormatFromArgs(args)

			fetcher, err := stars.NewFetcher(append([]func(*stars.Fetcher){
				stars.WithLogger(log),
				stars.WithProgress(out),
			}, options...)...)
			if err != nil {
				return errors.Wrap(err, "unable to set up GitHub client")
			}
			log.Infow("fetching stargazers counts",
				"repos", len(repos),
				"format", format.String())

			results := fetcher.FetchAll(cmd.Context(), repos)
			return stars.WriteReport(out, results, format)
		},
	}
}

func exit(err error) {
	log.SetFlags(0)
	log.SetPrefix("")
	log.Fatal(err)
}
