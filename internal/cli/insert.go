package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/slurp/internal/config"
	"github.com/vvka-141/slurp/internal/files/filesystem"
	"github.com/vvka-141/slurp/internal/loader"
	"github.com/vvka-141/slurp/internal/logging"
	"github.com/vvka-141/slurp/internal/services"
	"github.com/vvka-141/slurp/pkg/slurp"
)

type insertFlagValues struct {
	host, url, namespace, database string
	port                           int
	table, dataPath, configPath    string
	batchSize, workers, verbosity  int
	dryRun                         bool
	timeout                        time.Duration
}

func newInsertCmd() *cobra.Command {
	flags := &insertFlagValues{}

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert the elements of a JSON array file into a table",
		Long: `Insert loads the JSON array in --data, splits it into batches of --batch
elements and submits each batch as

  INSERT INTO <table> [<items>] RETURN NONE;

to <base>/sql with the Surreal-NS and Surreal-DB headers set. At most
--thread batches are in flight at once. Failed batches are logged and
counted; they are not retried.

Configuration precedence: flag > environment > slurp.yaml > default.
Environment variables: SURREAL_URL, SURREAL_NS, SURREAL_DB (a .env file in
the working directory is loaded first).

Examples:
  # Insert people.json into test/test.person on localhost:8000
  slurp insert --data people.json --table person --ns test --db test

  # Remote server, smaller batches, more parallelism
  slurp insert --url https://db.example.com --ns shop --db prod \
    --table order --data orders.json --batch 100 --thread 8

  # Build every statement but send nothing
  slurp insert --data people.json --table person --dry-run --verbosity 2`,
		Args: RejectPositionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(cmd, flags)
		},
	}

	bindInsertFlags(cmd, flags)
	return cmd
}

func bindInsertFlags(cmd *cobra.Command, flags *insertFlagValues) {
	f := cmd.Flags()

	// Endpoint
	// Precedence: --url > --host/--port > $SURREAL_URL > slurp.yaml > http://localhost:8000
	f.StringVar(&flags.host, "host", slurp.DefaultHost, "SurrealDB host (no scheme)")
	f.IntVar(&flags.port, "port", slurp.DefaultPort, "SurrealDB HTTP port")
	f.StringVar(&flags.url, "url", "",
		"Full base URL, e.g. https://db.example.com:8000\n"+
			"Overrides --host/--port. Alternative: $SURREAL_URL")
	f.StringVar(&flags.namespace, "ns", "", "Namespace, sent as Surreal-NS (or $SURREAL_NS)")
	f.StringVar(&flags.database, "db", "", "Database, sent as Surreal-DB (or $SURREAL_DB)")

	// Input and target
	f.StringVar(&flags.table, "table", "", "Destination table")
	f.StringVar(&flags.dataPath, "data", "", "Path to a file holding a JSON array")
	_ = cmd.MarkFlagRequired("data")

	// Execution
	f.IntVar(&flags.batchSize, "batch", slurp.DefaultBatchSize, "Elements per INSERT statement")
	f.IntVar(&flags.workers, "thread", slurp.DefaultWorkers, "Batches submitted concurrently")
	f.IntVar(&flags.verbosity, "verbosity", slurp.DefaultVerbosity, "Log level: 0=warn, 1=info, 2=debug")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Build statements but never send them")
	f.DurationVar(&flags.timeout, "timeout", slurp.DefaultRequestTimeout,
		"Per-request timeout, including reading the response\n"+
			"Examples: 30s, 2m")
	f.StringVar(&flags.configPath, "config", config.ConfigFileName,
		"YAML config file; a missing default file is ignored")

	_ = cmd.RegisterFlagCompletionFunc("verbosity", completeVerbosity)
	_ = cmd.RegisterFlagCompletionFunc("data", completeJSONFiles)
	_ = cmd.RegisterFlagCompletionFunc("config", completeYAMLFiles)
}

// buildInsertConfig resolves every setting from flags, environment and the
// config file. It does not validate the result beyond parsing; that is
// InsertConfig.Validate's job.
func buildInsertConfig(cmd *cobra.Command, flags *insertFlagValues, verbose bool) (slurp.InsertConfig, error) {
	if err := loadDotEnv(); err != nil {
		return slurp.InsertConfig{}, err
	}

	projectCfg, err := loadProjectConfig(cmd, flags)
	if err != nil {
		return slurp.InsertConfig{}, err
	}

	changed := cmd.Flags().Changed

	timeout := flags.timeout
	if !changed("timeout") {
		parsed, err := projectCfg.TimeoutDuration()
		if err != nil {
			return slurp.InsertConfig{}, fmt.Errorf("%s: %w: %w", flags.configPath, slurp.ErrInvalidConfig, err)
		}
		if parsed != 0 {
			timeout = parsed
		}
	}

	verbosity := flags.verbosity
	switch {
	case verbose:
		verbosity = slurp.MaxVerbosity
	case !changed("verbosity") && projectCfg.Verbosity != nil:
		verbosity = *projectCfg.Verbosity
	}

	baseURL, err := resolveBaseURL(cmd, flags, projectCfg)
	if err != nil {
		return slurp.InsertConfig{}, err
	}

	return slurp.InsertConfig{
		DataPath:  flags.dataPath,
		BaseURL:   baseURL,
		Namespace: resolveString(changed("ns"), flags.namespace, slurp.EnvNamespace, projectCfg.Connection.Namespace),
		Database:  resolveString(changed("db"), flags.database, slurp.EnvDatabase, projectCfg.Connection.Database),
		Table:     resolveString(changed("table"), flags.table, "", projectCfg.Table),
		BatchSize: resolveInt(changed("batch"), flags.batchSize, projectCfg.Batch),
		Workers:   resolveInt(changed("thread"), flags.workers, projectCfg.Threads),
		Timeout:   timeout,
		DryRun:    flags.dryRun,
		Verbosity: verbosity,
	}, nil
}

// loadDotEnv loads .env from the working directory. A missing file is fine;
// an unreadable or malformed one is a configuration error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w: %w", slurp.ErrInvalidConfig, err)
	}
	return nil
}

// loadProjectConfig returns an empty config when the default file is absent.
// An explicitly named file must exist.
func loadProjectConfig(cmd *cobra.Command, flags *insertFlagValues) (*config.ProjectConfig, error) {
	cfg, err := config.Load(flags.configPath)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, config.ErrConfigNotFound) && !cmd.Flags().Changed("config") {
		return &config.ProjectConfig{}, nil
	}
	return nil, fmt.Errorf("failed to load %s: %w: %w", flags.configPath, slurp.ErrInvalidConfig, err)
}

func resolveBaseURL(cmd *cobra.Command, flags *insertFlagValues, projectCfg *config.ProjectConfig) (string, error) {
	changed := cmd.Flags().Changed
	if changed("url") {
		return flags.url, nil
	}

	host := resolveString(changed("host"), flags.host, "", projectCfg.Connection.Host)
	port := resolveInt(changed("port"), flags.port, projectCfg.Connection.Port)
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("port must be between 1 and 65535, got %d: %w", port, slurp.ErrInvalidConfig)
	}
	hostURL := "http://" + net.JoinHostPort(host, strconv.Itoa(port))

	if changed("host") || changed("port") {
		return hostURL, nil
	}
	if env := os.Getenv(slurp.EnvURL); env != "" {
		return env, nil
	}
	if projectCfg.Connection.URL != "" {
		return projectCfg.Connection.URL, nil
	}
	return hostURL, nil
}

// resolveString applies flag > env > file > flag default.
func resolveString(flagSet bool, flagValue, envKey, fileValue string) string {
	if flagSet {
		return flagValue
	}
	if envKey != "" {
		if env := os.Getenv(envKey); env != "" {
			return env
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return flagValue
}

// resolveInt applies flag > file > flag default; zero in the file means unset.
func resolveInt(flagSet bool, flagValue, fileValue int) int {
	if flagSet || fileValue == 0 {
		return flagValue
	}
	return fileValue
}

func runInsert(cmd *cobra.Command, flags *insertFlagValues) error {
	verbose := getVerboseFlag(cmd)

	insertConfig, err := buildInsertConfig(cmd, flags, verbose)
	if err != nil {
		return err
	}

	logger := newCommandLogger(cmd, insertConfig.Verbosity)
	inserter := services.NewInsertService(
		loader.NewLoader(filesystem.NewOSFileSystem()),
		services.NewSurrealSubmitter,
		logger,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, err = inserter.Insert(ctx, insertConfig)
	return err
}

// newCommandLogger logs to the command's error stream, with colour detection
// only when that stream is the process's stderr.
func newCommandLogger(cmd *cobra.Command, verbosity int) slurp.Logger {
	w := cmd.ErrOrStderr()
	if w == os.Stderr {
		return logging.NewConsoleLogger(verbosity)
	}
	return logging.NewConsoleLoggerTo(w, verbosity, false)
}
