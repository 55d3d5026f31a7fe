package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timetabler config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(path, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Config file to edit (defaults to the user config)")
	return cmd
}

func runConfigInteractive(path string, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(path)
	if os.IsNotExist(fileErr) {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	p := prompter{r: reader, w: out}
	if !p.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Timetable.Name = p.value("Timetable name", cfg.Timetable.Name)
	cfg.Timetable.UserID = p.number("User id", cfg.Timetable.UserID)
	cfg.Subject.ID = p.number("Subject id (0 for none)", cfg.Subject.ID)
	cfg.Subject.Name = p.value("Subject name", cfg.Subject.Name)
	cfg.Subject.Code = p.value("Subject code", cfg.Subject.Code)
	cfg.Subject.Color = p.value("Subject color (#RRGGBB)", cfg.Subject.Color)
	cfg.Remote.BaseURL = p.value("Remote base URL (empty for offline)", cfg.Remote.BaseURL)
	cfg.LLM.Provider = p.value("LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = p.value("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL", cfg.LLM.BaseURL)
	cfg.Storage.CacheBackend = p.value("Cache backend (sqlite, redis)", cfg.Storage.CacheBackend)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.Storage.RedisAddr = p.value("Redis address", cfg.Storage.RedisAddr)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Current configuration:")
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[timetable]")
	_, _ = fmt.Fprintf(w, "  name             = %s\n", cfg.Timetable.Name)
	_, _ = fmt.Fprintf(w, "  user_id          = %d\n", cfg.Timetable.UserID)
	if cfg.HasSubject() {
		_, _ = fmt.Fprintln(w, "\n[subject]")
		_, _ = fmt.Fprintf(w, "  id               = %d\n", cfg.Subject.ID)
		_, _ = fmt.Fprintf(w, "  name             = %s\n", cfg.Subject.Name)
		_, _ = fmt.Fprintf(w, "  code             = %s\n", cfg.Subject.Code)
		_, _ = fmt.Fprintf(w, "  color            = %s\n", cfg.Subject.Color)
	}
	_, _ = fmt.Fprintln(w, "\n[remote]")
	_, _ = fmt.Fprintf(w, "  base_url         = %s\n", cfg.Remote.BaseURL)
	_, _ = fmt.Fprintf(w, "  timeout          = %s\n", cfg.Remote.Timeout.Std())
	_, _ = fmt.Fprintln(w, "\n[llm]")
	_, _ = fmt.Fprintf(w, "  provider         = %s\n", cfg.LLM.Provider)
	_, _ = fmt.Fprintf(w, "  model            = %s\n", cfg.LLM.Model)
	_, _ = fmt.Fprintf(w, "  base_url         = %s\n", cfg.LLM.BaseURL)
	_, _ = fmt.Fprintln(w, "\n[storage]")
	_, _ = fmt.Fprintf(w, "  cache_backend    = %s\n", cfg.Storage.CacheBackend)
	_, _ = fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	if cfg.Storage.CacheBackend == config.BackendRedis {
		_, _ = fmt.Fprintf(w, "  redis_addr       = %s\n", cfg.Storage.RedisAddr)
	}
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
}

type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p prompter) read() string {
	input, _ := p.r.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p prompter) yesNo(question string) bool {
	_, _ = fmt.Fprintf(p.w, "%s [y/N]: ", question)
	input := strings.ToLower(p.read())
	return input == "y" || input == "yes"
}

func (p prompter) value(label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(p.w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(p.w, "  %s [%s]: ", label, current)
	}
	input := p.read()
	if input == "" {
		return current
	}
	return input
}

func (p prompter) number(label string, current int) int {
	for {
		v := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		_, _ = fmt.Fprintf(p.w, "  Invalid number %q\n", v)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(p.w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
