package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/internal/app"
	"github.com/iw2rmb/quire/internal/config"
	"github.com/iw2rmb/quire/internal/logging"
)

var errNoTerminal = errors.New("quire needs an interactive terminal")

var rootCmd = &cobra.Command{
	Use:   "quire [file]",
	Short: "Terminal rich-text editor",
	Long: `quire edits a document of paragraphs, headings, quotes and code blocks
in the terminal. A plain-text file, when given, supplies the initial content
(one block per line); quire never writes it back.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: initConfig,
	RunE:              runEditor,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/quire/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().Bool("read-only", false, "open the document read-only")
	rootCmd.Flags().Bool("line-numbers", false, "show block numbers")
	_ = viper.BindPFlag("editor.read_only", rootCmd.Flags().Lookup("read-only"))
	_ = viper.BindPFlag("ui.line_numbers", rootCmd.Flags().Lookup("line-numbers"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	return config.Setup(viper.GetString("config"))
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closer, err := logging.Setup(logging.Options{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Pretty: cfg.Logging.Pretty,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errNoTerminal
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	value, err := loadDocument(path)
	if err != nil {
		return err
	}

	var title string
	if path != "" {
		title = filepath.Base(path)
	}
	m, err := app.New(app.Options{Config: cfg, Value: value, Title: title})
	if err != nil {
		return err
	}
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithReportFocus()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	config.Watch(func(c *config.Config, err error) {
		p.Send(app.ConfigMsg{Config: c, Err: err})
	})

	log.Info().Str("file", path).Int("blocks", len(value)).Msg("editor started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// loadDocument reads path as plain text, one block per line. An empty path
// or a missing file yields an empty document.
func loadDocument(path string) (document.Value, error) {
	if path == "" {
		return document.FromText(""), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return document.FromText(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return document.FromText(text), nil
}
