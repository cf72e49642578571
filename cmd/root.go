package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/marktime/internal/app"
	"github.com/zjrosen/marktime/internal/config"
	"github.com/zjrosen/marktime/internal/document"
	"github.com/zjrosen/marktime/internal/infrastructure/sqlite"
	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/sessions/domain"
	"github.com/zjrosen/marktime/internal/ui/styles"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply does not land in the editor.
	_ = lipgloss.HasDarkBackground()
}

// defaultFile is opened when no file argument is given.
const defaultFile = "notes.md"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "marktime [file]",
	Short:   "Take timecoded notes against a media transport",
	Long:    `A terminal notes editor that inserts [HH:MM:SS] timecodes for the playback position, highlights markdown, and seeks when a timecode is clicked.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/marktime/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also MARKTIME_DEBUG; path from MARKTIME_LOG)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when another program writes it")
}

func initConfig() {
	cfg = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads configuration into v. Lookup order: explicit path,
// .marktime/config.yaml, ~/.config/marktime/config.yaml. When nothing is
// found the commented default is written to .marktime/config.yaml.
func loadConfig(v *viper.Viper, explicit string) config.Config {
	setDefaults(v, config.Defaults())

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if _, err := os.Stat(".marktime/config.yaml"); err == nil {
		v.SetConfigFile(".marktime/config.yaml")
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "marktime"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := ".marktime/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				v.SetConfigFile(defaultPath)
				_ = v.ReadInConfig()
			}
		} else {
			log.Warn(log.CatConfig, "Failed to read config", "error", err)
		}
	}

	var out config.Config
	if err := v.Unmarshal(&out); err != nil {
		log.Warn(log.CatConfig, "Failed to decode config, using defaults", "error", err)
		return config.Defaults()
	}
	return out
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("editor.show_line_numbers", d.Editor.ShowLineNumbers)
	v.SetDefault("editor.autosave", d.Editor.Autosave)
	v.SetDefault("editor.markdown_style", d.Editor.MarkdownStyle)
	v.SetDefault("timecode.multi_offsets", d.Timecode.MultiOffsets)
	v.SetDefault("timecode.seek_step", d.Timecode.SeekStep)
	v.SetDefault("keys.single", d.Keys.Single)
	v.SetDefault("keys.multi", d.Keys.Multi)
	v.SetDefault("keys.play", d.Keys.Play)
	v.SetDefault("keys.back", d.Keys.Back)
	v.SetDefault("keys.forward", d.Keys.Forward)
	v.SetDefault("keys.copy", d.Keys.Copy)
	v.SetDefault("keys.save", d.Keys.Save)
	v.SetDefault("keys.help", d.Keys.Help)
	v.SetDefault("keys.quit", d.Keys.Quit)
	v.SetDefault("store.enabled", d.Store.Enabled)
	v.SetDefault("store.path", d.Store.Path)
}

// initLogging starts the debug log when requested. The returned cleanup is
// never nil.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("MARKTIME_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("MARKTIME_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "marktime starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("marktime")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.Colors); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	path := defaultFile
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	var sessions domain.SessionRepository
	if cfg.Store.Enabled {
		db, err := sqlite.NewDB(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer func() { _ = db.Close() }()
		sessions = db.SessionRepository()
	}

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	model := app.New(app.Config{
		Settings: cfg,
		Document: doc,
		Sessions: sessions,
		Watch:    !noWatch,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
