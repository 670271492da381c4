package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wso2/consent-policy-validator/internal/client"
	"github.com/wso2/consent-policy-validator/internal/config"
	"github.com/wso2/consent-policy-validator/internal/logging"
	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/internal/service"
	"github.com/wso2/consent-policy-validator/pkg/validator"
)

// errValidationFailed signals a completed run whose documents failed validation.
// The report has already been printed, so main only sets the exit status.
var errValidationFailed = errors.New("validation failed")

// newRootCmd creates the root command for license-parser
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "license-parser",
		Short:         "Palimpsest licence and AIBDP manifest validator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newValidateCmd())

	return rootCmd
}

// newLogger builds a logger writing to the command's stderr
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}

	logger, err := logging.NewLogger(config.LoggingConfig{Level: level, Format: format, Output: "stderr"})
	if err != nil {
		return nil, err
	}
	logger.SetOutput(cmd.ErrOrStderr())
	return logger, nil
}

// reportOptions holds the flags of the report command
type reportOptions struct {
	License           string
	LicenseNL         string
	Manifest          string
	LineageTag        string
	TagFormat         string
	Signature         string
	Format            string
	ComplianceURL     string
	ComplianceTimeout time.Duration
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Validate a licence bundle and print a compliance report",
		Long: `Parse the licence, validate the AIBDP manifest and lineage tag, consult the
remote compliance API and print a report. Exits with status 1 when any check fails.

Example:
  license-parser report --license LICENSE.md --manifest aibdp.json --lineage-tag tag.xml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.License, "license", "", "Path to Palimpsest License file (English, Markdown)")
	flags.StringVar(&opts.LicenseNL, "license-nl", "", "Path to Palimpsest License file (Dutch, Markdown) for localization checks")
	flags.StringVar(&opts.Manifest, "manifest", "", "Path to AIBDP manifest file (JSON)")
	flags.StringVar(&opts.LineageTag, "lineage-tag", "", "Path to synthetic lineage tag file (XML/JSON)")
	flags.StringVar(&opts.TagFormat, "tag-format", models.LineageFormatXML, "Format of the lineage tag (XML/JSON)")
	flags.StringVar(&opts.Signature, "signature", "", "Trusted SHA-256 hash for license signature validation")
	flags.StringVar(&opts.Format, "format", service.ReportFormatText, "Output format (json/text)")
	flags.StringVar(&opts.ComplianceURL, "compliance-url", config.DefaultComplianceAPIURL, "Compliance API endpoint; empty disables the remote check")
	flags.DurationVar(&opts.ComplianceTimeout, "compliance-timeout", 10*time.Second, "Compliance API request timeout")

	_ = cmd.MarkFlagRequired("license")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("lineage-tag")

	return cmd
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	if opts.TagFormat != models.LineageFormatXML && opts.TagFormat != models.LineageFormatJSON {
		return fmt.Errorf("invalid --tag-format %q (choices: XML, JSON)", opts.TagFormat)
	}
	if opts.Format != service.ReportFormatText && opts.Format != service.ReportFormatJSON {
		return fmt.Errorf("invalid --format %q (choices: json, text)", opts.Format)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	complianceClient := client.NewComplianceClient(&config.ComplianceAPIConfig{
		URL:     opts.ComplianceURL,
		Timeout: opts.ComplianceTimeout,
	}, logger)
	defer complianceClient.Close()

	licenses := service.NewLicenseService(logger)
	manifests := service.NewManifestService(logger)
	lineage := service.NewLineageService(logger)
	reports := service.NewReportService(licenses, manifests, lineage, complianceClient, logger)

	input := service.ReportInput{
		License: parseLicenseFile(licenses, opts.License, opts.Signature),
	}
	if opts.LicenseNL != "" {
		input.LicenseNL = parseLicenseFile(licenses, opts.LicenseNL, opts.Signature)
	}

	if manifest, err := os.ReadFile(opts.Manifest); err != nil {
		input.Manifest = service.ManifestError(err)
	} else {
		input.Manifest = manifests.ValidateManifest(manifest)
	}

	tag, err := os.ReadFile(opts.LineageTag)
	if err != nil {
		return fmt.Errorf("failed to read lineage tag: %w", err)
	}
	input.LineageTag, err = lineage.ValidateLineageTag(tag, opts.TagFormat)
	if err != nil {
		return err
	}

	report := reports.BuildReport(cmd.Context(), input)
	rendered, err := service.RenderReport(report, opts.Format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	if report.HasErrors {
		return errValidationFailed
	}
	return nil
}

func parseLicenseFile(licenses *service.LicenseService, path, signature string) *models.LicenseResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return service.LicenseFileError(err)
	}
	return licenses.ParseLicense(content, signature)
}

func newValidateCmd() *cobra.Command {
	var schemaVersion string

	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Run the advanced schema check on a JSON document",
		Long: `Validate a JSON document against an advanced schema version and print the
result as {"valid":...,"errors":[...]}. Reads stdin when no file or "-" is given.
Exits with status 1 when the document is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			result := validator.Validate(data, schemaVersion)
			fmt.Fprintln(cmd.OutOrStdout(), result.JSON())
			if !result.Valid {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaVersion, "schema-version", validator.SchemaVersionV11, "Schema version to validate against")

	return cmd
}
