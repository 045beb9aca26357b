package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"midiextract/config"
	"midiextract/core/command"
	"midiextract/core/extractor"
	"midiextract/core/locator"
	"midiextract/db"
	"midiextract/logger"
	"midiextract/repository"
	"midiextract/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// errUsage signals that usage was printed and the process must exit non-zero.
var errUsage = errors.New("usage")

var (
	dbPathFlag   string
	outDirFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "midiextract [flags] [--] [db-path] <list|id|filename>",
	Short: "Extract MIDI files stored in the MidiMind database",
	Long: `Reads MIDI files stored base64-encoded in the MidiMind SQLite database and
writes them back to disk as binary .mid/.midi files for parser testing.

Arguments after "--" are never read as flags, which is needed for file names
starting with "-".`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		applyFlags(cmd, cfg)

		if err := logger.InitLogger(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogFile,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
		}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
		logger.With(logger.String("run_id", uuid.NewString()))

		start := time.Now()
		err := run(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		logger.Debug("command finished",
			logger.Duration("elapsed", time.Since(start)),
			logger.Bool("ok", err == nil))
		if err != nil && !errors.Is(err, errUsage) {
			logger.Error("command failed", logger.ErrorField(err))
		}
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&dbPathFlag, "db", "", "path to the MidiMind SQLite database")
	rootCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "directory extracted files are written to (default \".\")")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Example = `  # 列出数据库中的所有文件
  midiextract list

  # 按ID或文件名导出
  midiextract 19
  midiextract "Under The Sea.midi"

  # 指定数据库路径
  midiextract /path/to/midimind.db list
  midiextract /path/to/midimind.db 19

  # 以 "-" 开头的文件名需要放在 -- 之后
  midiextract -- -intro.mid`
}

// applyFlags lets explicitly set flags override the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("db") {
		cfg.DBPath = dbPathFlag
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outDirFlag
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
}

// run resolves the store, opens it and dispatches the parsed command.
func run(ctx context.Context, out io.Writer, cfg *config.Config, args []string) error {
	inv, err := command.ParseArgs(args, command.IsDatabaseFile)
	if errors.Is(err, command.ErrNoArgs) {
		// probing only, the store is never opened here
		loc := locator.New(cfg.DBPath)
		printUsage(out, loc)
		return errUsage
	}
	if err != nil {
		return err
	}

	override := cfg.DBPath
	if inv.DBPath != "" {
		override = inv.DBPath
	}
	loc := locator.New(override)

	dbPath, ok := loc.Locate()
	if !ok {
		printDatabaseNotFound(out, loc, inv.Command)
		return nil
	}
	if override != "" && dbPath != locator.Expand(override, loc.Home) {
		logger.Warn("database path not found, using auto-detected store",
			logger.String("requested", override), logger.String("using", dbPath))
	}
	logger.Debug("using database", logger.String("path", dbPath))

	gdb, err := db.OpenReadOnly(dbPath, db.Options{Debug: logger.Enabled(logger.DebugLevel)})
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	svc := extractor.NewService(
		repository.NewMidiFileRepository(gdb),
		storage.NewLocalStore(cfg.OutputDir),
		out,
		cfg.CompareCommand,
	)
	return svc.Run(ctx, inv.Command)
}

func printUsage(out io.Writer, loc *locator.Locator) {
	fmt.Fprintln(out, "Usage: midiextract [db-path] <file-id-or-name>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  midiextract list")
	fmt.Fprintln(out, "  midiextract 19")
	fmt.Fprintln(out, `  midiextract "Under The Sea.midi"`)
	fmt.Fprintln(out, "  midiextract /path/to/midimind.db list")
	fmt.Fprintln(out, "  midiextract /path/to/midimind.db 19")
	fmt.Fprintln(out, "  midiextract -- -intro.mid")
	fmt.Fprintln(out)
	if path, ok := loc.Locate(); ok {
		fmt.Fprintf(out, "Auto-detected database: %s\n", path)
	} else {
		fmt.Fprintln(out, "⚠️  No database auto-detected. Please specify path.")
	}
	fmt.Fprintln(out)
}

func printDatabaseNotFound(out io.Writer, loc *locator.Locator, cmd command.Command) {
	logger.Warn("database not found", logger.Any("probed", loc.Probed()))

	fmt.Fprintln(out, "❌ Database not found!")
	fmt.Fprintln(out, "\nSearched in:")
	for _, p := range loc.Probed() {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintln(out, "\nPlease specify the database path as first argument:")
	fmt.Fprintf(out, "  midiextract /path/to/midimind.db %s\n", cmd)
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
