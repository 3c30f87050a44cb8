package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apidocs/internal/apidoc"
	"apidocs/internal/app"
	"apidocs/internal/config"
	"apidocs/internal/logging"
	"apidocs/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apidocs",
		Short: "Serve an OpenAPI document with Swagger UI",
		Long: `apidocs loads one OpenAPI document (YAML or JSON) at startup and serves it
with Swagger UI, by default at http://localhost:3000/api-docs.

Relative document paths are resolved next to the executable first and the
working directory second. Every flag can also be set through an APIDOCS_*
environment variable (for example APIDOCS_PORT), a .env file, or --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServe,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "optional config file (yaml, json or toml)")
	flags.String("host", "", "listen host (empty = all interfaces)")
	flags.Int("port", config.DefaultPort, "listen port")
	flags.String("spec", config.DefaultSpecPath, "OpenAPI document to serve (yaml or json)")
	flags.String("prefix", config.DefaultPrefix, "URL path the documentation is mounted at")
	flags.String("log-format", config.DefaultLogFormat, "log format (text or json)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("cors-origins", "", "comma separated origins allowed to fetch the docs (empty = CORS off)")
	flags.Bool("ops", false, "also serve /healthz, /readyz and /metrics")
	flags.Duration("shutdown-timeout", config.DefaultShutdownTimeout, "graceful shutdown timeout")
	_ = root.MarkPersistentFlagFilename("spec", "yaml", "yml", "json")
	_ = root.MarkPersistentFlagFilename("config", "yaml", "yml", "json", "toml")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the documentation (default command)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		newValidateCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves settings from flags, APIDOCS_* env, the optional
// config file and .env files, and installs the logger.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	config.LoadEnvFiles()

	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ReadFile(v, v.GetString("config")); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := logging.Setup(cfg.LogFormat, cfg.LogLevel); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), cfg, app.Options{Stdout: cmd.OutOrStdout()})
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Strictly validate the OpenAPI document and exit",
		Long: `validate loads the document the same way the server does and then checks
it against the OpenAPI 3 schema. The server itself never performs this check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			specPath := cfg.SpecPath
			if len(args) == 1 {
				specPath = args[0]
			}

			doc, err := apidoc.Load(apidoc.ResolvePath(specPath))
			if err != nil {
				return err
			}
			if err := apidoc.Validate(cmd.Context(), doc); err != nil {
				return fmt.Errorf("%s: %w", doc.Path(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}
