package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/nanoenum/internal/validation"
	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
	"github.com/arthur-debert/nanoenum/types"
)

// Configuration keys, shared by flags, environment variables and config files
const (
	keyCatalog    = "catalog"
	keyFormat     = "format"
	keyPolicy     = "policy"
	keyOffset     = "offset"
	keyIDTemplate = "id-template"
	keyLogLevel   = "log-level"
	keyVerbose    = "verbose"
)

const defaultCatalogPath = "enums.json"

// CLI is the Viper-driven nanoenum command line
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	logger    *slog.Logger
	logFile   io.Closer
}

// NewCLI creates the command tree and loads configuration
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.DiscardHandler),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	// NANOENUM_CONFIG names a config file explicitly
	if configFile := os.Getenv("NANOENUM_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		// Any supported extension is found: nanoenum.json, nanoenum.yaml, ...
		cli.viperInst.SetConfigName("nanoenum")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.nanoenum")
		cli.viperInst.AddConfigPath("/etc/nanoenum")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("NANOENUM")

	// --id-template -> NANOENUM_ID_TEMPLATE
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Read config file if it exists (ignore errors)
	_ = cli.viperInst.ReadInConfig()
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanoenum",
		Short: "nanoenum - define, store and decode enumerations",
		Long: `nanoenum builds enumerations from names and indices, stores their
serialized form in a catalog file and decodes bitmasks against them.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOENUM_*)
3. Configuration files (custom path or default locations)

Configuration File Discovery:
  NANOENUM_CONFIG=/path/to/config.yaml  # Custom config file path
  ./nanoenum.{json,yaml}                # Current directory
  ~/.nanoenum/nanoenum.{json,yaml}      # User directory
  /etc/nanoenum/nanoenum.{json,yaml}    # System directory

Examples:
  nanoenum define Galaxy Enterprise Yamato Odyssey --policy BINARY --offset 2
  nanoenum mask Galaxy Enterprise Yamato
  nanoenum decode Galaxy 12
  nanoenum show Galaxy --format go`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = cli.viperInst.BindPFlags(cmd.Flags())

			logger, logFile, err := initLogging(
				cli.viperInst.GetString(keyLogLevel),
				cli.viperInst.GetBool(keyVerbose),
				cmd.ErrOrStderr(),
			)
			if err != nil {
				// Logging is best effort; commands still run
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				return nil
			}
			cli.logger = logger
			cli.logFile = logFile
			return nil
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP(keyCatalog, "c", defaultCatalogPath, "Catalog file path")
	flags.StringP(keyFormat, "f", formatTable, "Output format (table|markdown|json|yaml|go)")

	// Engine defaults for define
	flags.StringP(keyPolicy, "p", "", "Default index policy (AUTO|BINARY|SERIES)")
	flags.Int(keyOffset, 0, "Default start offset: first index for SERIES, first exponent for BINARY")
	flags.String(keyIDTemplate, "", "Member id template (n nibble, b byte, w word)")

	flags.String(keyLogLevel, "warn", "Log level (debug|info|warn|error)")
	flags.BoolP(keyVerbose, "v", false, "Also write log records to stderr")

	keys := []string{keyCatalog, keyFormat, keyPolicy, keyOffset, keyIDTemplate, keyLogLevel, keyVerbose}
	for _, key := range keys {
		_ = cli.viperInst.BindPFlag(key, flags.Lookup(key))
		_ = cli.viperInst.BindEnv(key, "NANOENUM_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	}
}

// addCommands adds all the CLI commands
func (cli *CLI) addCommands() {
	cli.addDefineCommand()
	cli.addListCommand()
	cli.addShowCommand()
	cli.addMaskCommand()
	cli.addDecodeCommand()
	cli.addClassifyCommand()
	cli.addDeleteCommand()
	cli.addExportCommand()
	cli.addImportCommand()
	cli.addConfigCommand()
}

// Execute runs the command line and releases the log file
func (cli *CLI) Execute() error {
	defer func() {
		if cli.logFile != nil {
			_ = cli.logFile.Close()
			cli.logFile = nil
		}
	}()
	return cli.rootCmd.ExecuteContext(context.Background())
}

// SetOutput redirects command output and error output
func (cli *CLI) SetOutput(out, errOut io.Writer) {
	cli.rootCmd.SetOut(out)
	cli.rootCmd.SetErr(errOut)
}

// SetArgs sets the arguments used by the next Execute
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// GetConfig returns the Viper instance for external access
func (cli *CLI) GetConfig() *viper.Viper {
	return cli.viperInst
}

// GetRootCommand returns the root Cobra command
func (cli *CLI) GetRootCommand() *cobra.Command {
	return cli.rootCmd
}

// engineDefaults reads the engine options from configuration
func (cli *CLI) engineDefaults() (types.Options, error) {
	raw := cli.viperInst.GetString(keyPolicy)
	policy, err := types.ParsePolicy(raw)
	if err != nil {
		return types.Options{}, NewConfigError("read configuration",
			fmt.Sprintf("policy %q is not an index policy", raw),
			CommonSuggestions.CheckPolicy, CommonSuggestions.CheckConfig)
	}
	defaults := types.Options{
		IndexPolicy: policy,
		StartOffset: cli.viperInst.GetInt(keyOffset),
		IDTemplate:  cli.viperInst.GetString(keyIDTemplate),
	}
	if err := validation.ValidateOptions(defaults); err != nil {
		cliErr := NewConfigError("read configuration", err.Error(), CommonSuggestions.CheckConfig)
		cliErr.Underlying = err
		return types.Options{}, cliErr
	}
	return defaults, nil
}

// session holds the catalog and an engine restored from it
type session struct {
	catalog *catalog.Catalog
	engine  *nanoenum.Engine
}

// openSession opens the configured catalog and rebuilds its enumerations
func (cli *CLI) openSession(operation string) (*session, error) {
	defaults, err := cli.engineDefaults()
	if err != nil {
		return nil, err
	}

	c := cli.openCatalog()
	engine := nanoenum.NewEngine(nanoenum.WithDefaults(defaults), nanoenum.WithLogger(cli.logger))

	restored, err := c.Restore(engine)
	if err != nil {
		_ = c.Close()
		return nil, NewCatalogError(operation, err, CommonSuggestions.CheckCatalog)
	}
	cli.logger.Debug("catalog restored", "path", c.Path(), "enumerations", len(restored))

	return &session{catalog: c, engine: engine}, nil
}

func (s *session) close() {
	_ = s.catalog.Close()
}

// lookup returns the named enumeration or a not-found error listing the
// stored names
func (s *session) lookup(operation, name string) (*nanoenum.Enumeration, error) {
	if enum, ok := s.engine.Lookup(name); ok {
		return enum, nil
	}
	return nil, NewNotFoundError(operation, name, s.engine.Types())
}

// openCatalog opens the configured catalog file
func (cli *CLI) openCatalog() *catalog.Catalog {
	path := cli.viperInst.GetString(keyCatalog)
	if path == "" {
		path = defaultCatalogPath
	}
	return catalog.Open(path)
}

// output formats result with the configured format and writes it
func (cli *CLI) output(cmd *cobra.Command, result tabular) error {
	formatter, err := NewOutputFormatter(cli.viperInst.GetString(keyFormat))
	if err != nil {
		return err
	}
	text, err := formatter.Format(result)
	if err != nil {
		return WrapError("format output", err)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}
