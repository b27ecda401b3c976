package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/redmane-backend/internal/platform/logger"
	"github.com/yungbote/redmane-backend/internal/platform/shutdown"
	"github.com/yungbote/redmane-backend/internal/tracker"
)

type options struct {
	directory string
	datasetID int64
	projectID int64
	server    string
	logMode   string
}

func command() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Register raw files in a directory against a dataset's samples",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.directory, "directory", "", "directory to scan")
	f.Int64Var(&opts.datasetID, "dataset_id", 0, "dataset to register files under")
	f.Int64Var(&opts.projectID, "project_id", 0, "project whose samples are matched")
	f.StringVar(&opts.server, "server", tracker.DefaultServer, "redmane server base url")
	f.StringVar(&opts.logMode, "log_mode", "development", "logger mode")
	_ = cmd.MarkFlagRequired("directory")
	_ = cmd.MarkFlagRequired("dataset_id")
	_ = cmd.MarkFlagRequired("project_id")
	return cmd
}

func run(ctx context.Context, opts options) error {
	log, err := logger.New(opts.logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	client, err := tracker.NewClient(log, tracker.ClientConfig{BaseURL: opts.server})
	if err != nil {
		return err
	}
	rep, err := tracker.New(log, client).Run(ctx, tracker.Options{
		Directory: opts.directory,
		DatasetID: opts.datasetID,
		ProjectID: opts.projectID,
	})
	if err != nil {
		log.Error("tracker run failed", "error", err)
		return err
	}
	fmt.Printf("matched %d files (%s), %d unmatched; %d registered, %d already known\n",
		len(rep.Match.Matched), rep.Sizes.Human(), len(rep.Match.Unmatched),
		rep.Submitted.Created, rep.Submitted.Skipped)
	return nil
}

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	if err := command().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tracker: %v\n", err)
		stop()
		os.Exit(1)
	}
}
