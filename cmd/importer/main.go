package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yungbote/redmane-backend/internal/app"
	"github.com/yungbote/redmane-backend/internal/importer"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
	"github.com/yungbote/redmane-backend/internal/platform/shutdown"
)

type profileFlags struct {
	profile     string
	profileFile string
	columns     []string
}

func (p *profileFlags) bind(cmd *cobra.Command, defaultProfile string) {
	cmd.Flags().StringVar(&p.profile, "profile", defaultProfile, "built-in or file profile name")
	cmd.Flags().StringVar(&p.profileFile, "profile-file", "", "YAML file with profile definitions")
	cmd.Flags().StringSliceVar(&p.columns, "columns", nil, "metadata columns, overrides the profile")
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "importer",
		Short:         "Import clinical CSV exports into the redmane store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(patientsCommand(), samplesCommand())
	return root
}

func patientsCommand() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "patients <project_id> <ext_patient_url> <csv_file>",
		Short: "Import patients keyed by record_id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			profile, err := importer.ResolveProfile(pf.profile, pf.profileFile, pf.columns)
			if err != nil {
				return err
			}
			return withImporter(cmd.Context(), func(ctx context.Context, im *importer.Importer) error {
				f, err := os.Open(args[2])
				if err != nil {
					return err
				}
				defer f.Close()
				rep, err := im.ImportPatients(ctx, importer.PatientImport{
					ProjectID: projectID, ExtPatientURL: args[1], Profile: profile, Source: f,
				})
				if err != nil {
					return err
				}
				fmt.Printf("patients: %d inserted, %d skipped\n", rep.Inserted, rep.Skipped)
				return nil
			})
		},
	}
	pf.bind(cmd, "onj")
	return cmd
}

func samplesCommand() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "samples <project_id> <ext_sample_url> <csv_file>",
		Short: "Import samples keyed by record_id and sample_id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			profile, err := importer.ResolveProfile(pf.profile, pf.profileFile, pf.columns)
			if err != nil {
				return err
			}
			return withImporter(cmd.Context(), func(ctx context.Context, im *importer.Importer) error {
				f, err := os.Open(args[2])
				if err != nil {
					return err
				}
				defer f.Close()
				rep, err := im.ImportSamples(ctx, importer.SampleImport{
					ProjectID: projectID, ExtSampleURL: args[1], Profile: profile, Source: f,
				})
				if err != nil {
					return err
				}
				fmt.Printf("samples: %d inserted, %d skipped\n", rep.Inserted, rep.Skipped)
				return nil
			})
		},
	}
	pf.bind(cmd, "samples")
	return cmd
}

func parseProjectID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project_id %q", raw)
	}
	return id, nil
}

// withImporter opens the configured store for the duration of fn.
func withImporter(ctx context.Context, fn func(context.Context, *importer.Importer) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	store, err := app.OpenStore(log, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close failed", "error", err)
		}
	}()
	return fn(ctx, importer.New(store.DB(), log))
}

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "importer: %v\n", err)
		stop()
		os.Exit(1)
	}
}
