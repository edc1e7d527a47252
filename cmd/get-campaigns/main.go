// Command get-campaigns exports the campaigns of a Google Ads customer account
// to <directory>/campaigns.csv.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"campaignexport/internal/ads"
	"campaignexport/internal/campaigns"
	"campaignexport/internal/config"
	clierrors "campaignexport/internal/errors"
	"campaignexport/internal/exporter"
	"campaignexport/internal/infrastructure"
)

const shutdownTimeout = 5 * time.Second

// options holds the parsed command line
type options struct {
	customerID string
	directory  string
	format     string
	configPath string
}

// searcherFactory builds the query transport once configuration is loaded
type searcherFactory func(ctx context.Context, cfg *config.Config, credentialsPath string) (campaigns.Searcher, error)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, newAdsSearcher))
}

// execute runs the command and returns the process exit code
func execute(ctx context.Context, args []string, stdout io.Writer, newSearcher searcherFactory) int {
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)

	cmd := newRootCmd(stdout, newSearcher)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return clierrors.Handle(ctx, stdout, infrastructure.GetLogger(), err)
}

func newRootCmd(stdout io.Writer, newSearcher searcherFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Export the campaigns of a Google Ads account to CSV",
		Long: `Streams every campaign of the customer account, ordered by id, and
writes "Campaign ID,Campaign Name" rows to <directory>/campaigns.csv.

Credentials are read from google-ads.yaml in the home directory unless
--config or GOOGLE_ADS_CONFIGURATION_FILE_PATH points elsewhere.
If the API rejects the request, the request id and every error message
are printed and the command exits with status 1.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       config.AppVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, newSearcher)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.ErrOrStderr(), c.UsageString())
		return clierrors.Usagef("%v", err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.customerID, "customer_id", "c", config.DefaultCustomerID, "The Google Ads customer ID.")
	flags.StringVarP(&opts.directory, "directory", "d", config.DefaultDirectory, "The directory for the output file.")
	flags.StringVarP(&opts.format, "format", "f", string(exporter.FormatCSV), "Output format: csv or xlsx.")
	flags.StringVar(&opts.configPath, "config", "", "Path to google-ads.yaml (default $HOME/google-ads.yaml).")

	return cmd
}

// run performs one export
func run(ctx context.Context, opts *options, newSearcher searcherFactory) error {
	format, err := exporter.ParseFormat(opts.format)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeUsage, "invalid --format")
	}

	cfg, err := config.Load()
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeConfig, "failed to load configuration")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeConfig, "failed to initialize logger")
	}
	logger = infrastructure.WithComponent(logger, "cli")

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeTelemetry, "failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(shutdownCtx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, span := providers.Tracer.Start(ctx, config.AppName)
	defer span.End()

	logger.InfoContext(ctx, "Starting get-campaigns",
		slog.String("version", config.AppVersion),
		slog.String("customer_id", opts.customerID),
		slog.String("directory", opts.directory),
		slog.String("format", string(format)))

	searcher, err := newSearcher(ctx, cfg, opts.configPath)
	if err != nil {
		return err
	}

	result, err := campaigns.NewExporter(searcher, format, providers.Meter).Export(ctx, opts.customerID, opts.directory)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeExport, "campaign export failed")
	}

	logger.InfoContext(ctx, "Export finished",
		slog.String("output_file", result.Path),
		slog.Int("rows", result.Rows))
	return nil
}

// newAdsSearcher loads credentials and builds the authenticated Google Ads client
func newAdsSearcher(ctx context.Context, cfg *config.Config, credentialsPath string) (campaigns.Searcher, error) {
	if credentialsPath == "" {
		credentialsPath = cfg.Ads.CredentialsFile
	}
	path, err := config.CredentialsPath(credentialsPath)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.CodeCredentials, "failed to locate credentials")
	}

	creds, err := config.LoadAdsCredentials(path)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.CodeCredentials, "failed to load credentials")
	}

	client, err := ads.NewClient(ctx, creds, cfg.Ads)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.CodeAuth, "failed to create Google Ads client")
	}
	return client, nil
}
