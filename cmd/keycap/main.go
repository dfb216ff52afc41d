package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/keycap/internal/cli"
	"github.com/studiowebux/keycap/internal/config"
	"github.com/studiowebux/keycap/internal/i18n"
	"github.com/studiowebux/keycap/internal/keybinds"
	"github.com/studiowebux/keycap/internal/logging"
	"github.com/studiowebux/keycap/internal/store"
	"github.com/studiowebux/keycap/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keycap [field]",
	Short: "keycap - keyboard shortcut selector",
	Long: `keycap records keyboard shortcuts from real key presses.

Run without arguments to pick a stored field, or name a field to open its
capture form directly. Press the "Set shortcut" button, type the keys, then
press esc or click elsewhere to finish.

Examples:
  keycap                          # Pick a field interactively
  keycap save                     # Capture the shortcut of "save"
  keycap list -o yaml             # List stored shortcuts
  keycap validate                 # Check every stored shortcut
  keycap export shortcuts.toml    # Export to TOML
  keycap --help                   # Show help`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		field := ""
		if len(args) > 0 {
			field = args[0]
		}
		return runCapture(field)
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture [field]",
	Short: "Open the capture form for a field",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := ""
		if len(args) > 0 {
			field = args[0]
		}
		return runCapture(field)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored shortcuts",
	Long: `List stored shortcuts.

--filter narrows the records with a JMESPath expression evaluated over the
list, --query reshapes the output with JMESPath or runs $(command) with the
records as JSON on stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.List(cli.ListOptions{
				OutputFormat: flagOutput,
				Filter:       flagFilter,
				Query:        flagQuery,
			})
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <field>",
	Short: "Show one stored shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Show(args[0], flagOutput)
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [field...]",
	Short: "Validate stored shortcuts and report conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Validate(args)
		})
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <keys>",
	Short: "Print the display text of raw keys (e.g. Control+a)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Render(args[0])
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <field>",
	Short: "Show the saved values of a field, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.History(args[0], flagLimit)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <field>",
	Short: "Delete a stored shortcut and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Delete(args[0])
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export stored shortcuts (json, yaml or toml)",
	Long: `Export stored shortcuts.

The format follows the file extension unless --format is given. Without a
file the export is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagExportPath
		if len(args) > 0 {
			path = args[0]
		}
		return withApp(func(app *cli.App) error {
			return app.Export(flagFormat, path)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import shortcuts from an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Import(args[0], flagFormat)
		})
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <field>",
	Short: "Copy the raw keys of a field to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Copy(args[0])
		})
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <keys>",
	Short: "Find the fields bound to keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.Match(args[0])
		})
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage the control keymap (keybinds.json)",
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a keymap file (defaults to the config one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.KeybindsValidate(keybindsPath(args))
		})
	},
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the default keymap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *cli.App) error {
			return app.KeybindsInit(keybindsPath(args), flagForce)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.NewApp(nil, i18n.Default())
		return app.Version(cmd.Context(), version, flagCheck)
	},
}

// Flags
var (
	flagOutput     string
	flagFilter     string
	flagQuery      string
	flagFormat     string
	flagExportPath string
	flagLimit      int
	flagForce      bool
	flagCheck      bool
	flagDebug      bool
	flagLocale     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Override the locale from settings.yaml")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the capture state under the form")
	captureCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the capture state under the form")

	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml/toml)")
	listCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter over the records")
	listCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(command)")
	showCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml/toml)")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum entries to show")

	exportCmd.Flags().StringVarP(&flagExportPath, "output", "o", "", "Output file (defaults to stdout)")
	exportCmd.Flags().StringVar(&flagFormat, "format", "", "Format (json/yaml/toml), defaults to the file extension")
	importCmd.Flags().StringVar(&flagFormat, "format", "", "Format (json/yaml/toml), defaults to the file extension")

	keybindsInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")

	keybindsCmd.AddCommand(keybindsValidateCmd)
	keybindsCmd.AddCommand(keybindsInitCmd)

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(versionCmd)
}

// environment is everything a command needs once configuration is loaded
type environment struct {
	settings config.Settings
	catalog  *i18n.Catalog
	store    *store.Manager
	closeLog func() error
}

func (e *environment) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.closeLog != nil {
		e.closeLog()
	}
}

// setup initializes configuration, logging, the locale catalog and the store
func setup() (*environment, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if flagLocale != "" {
		settings.Locale = flagLocale
	}

	closeLog, err := logging.Init(logging.Options{
		Dir:     config.LogDir,
		Level:   settings.LogLevel,
		Version: version,
	})
	if err != nil {
		return nil, err
	}
	env := &environment{settings: settings, closeLog: closeLog}

	env.catalog, err = i18n.Load(config.LocalesDir, settings.Locale)
	if err != nil {
		env.Close()
		return nil, err
	}

	env.store, err = store.NewManager(config.DatabasePath)
	if err != nil {
		env.Close()
		return nil, err
	}

	return env, nil
}

// withApp runs fn with a CLI app over a freshly set up environment
func withApp(fn func(app *cli.App) error) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	return fn(cli.NewApp(env.store, env.catalog))
}

// runCapture opens the capture form, asking for a field when none is given
func runCapture(field string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if field == "" {
		records, err := env.store.List()
		if err != nil {
			return err
		}
		field, err = cli.PickField(records, registry)
		if errors.Is(err, cli.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	value, err := tui.Run(tui.Options{
		Field:    field,
		Store:    env.store,
		Catalog:  env.catalog,
		Keybinds: registry,
		Settings: env.settings,
		Debug:    flagDebug,
	})
	if err != nil {
		return err
	}

	if value != nil {
		fmt.Printf("%s: %s\n", field, value.KeysText)
	}
	return nil
}

// keybindsPath returns the file argument or the configured keymap file
func keybindsPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.KeybindsFile
}
