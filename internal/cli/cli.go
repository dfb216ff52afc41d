package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/studiowebux/keycap/internal/config"
	"github.com/studiowebux/keycap/internal/export"
	"github.com/studiowebux/keycap/internal/filter"
	"github.com/studiowebux/keycap/internal/i18n"
	"github.com/studiowebux/keycap/internal/keybinds"
	"github.com/studiowebux/keycap/internal/shortcut"
	"github.com/studiowebux/keycap/internal/store"
	"github.com/studiowebux/keycap/internal/types"
	"github.com/studiowebux/keycap/internal/version"
)

// ErrValidationFailed is returned when a validation command found errors
var ErrValidationFailed = errors.New("validation failed")

var (
	fieldStyle   = lipgloss.NewStyle().Bold(true)
	keysStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// App runs the non-interactive commands against one store
type App struct {
	Store   *store.Manager
	Catalog *i18n.Catalog
	Out     io.Writer
	Err     io.Writer

	// Clipboard writes text to the system clipboard
	Clipboard func(text string) error
}

// NewApp wires an App to stdout, stderr and the system clipboard
func NewApp(st *store.Manager, catalog *i18n.Catalog) *App {
	if catalog == nil {
		catalog = i18n.Default()
	}
	return &App{
		Store:     st,
		Catalog:   catalog,
		Out:       os.Stdout,
		Err:       os.Stderr,
		Clipboard: clipboard.WriteAll,
	}
}

// ListOptions controls the list command
type ListOptions struct {
	OutputFormat string // text, json, yaml, toml
	Filter       string // JMESPath filter narrowing the records
	Query        string // JMESPath query or $(command), replaces the output
}

// List prints stored shortcuts
func (a *App) List(opts ListOptions) error {
	records, err := a.Store.List()
	if err != nil {
		return err
	}

	records, err = filter.Select(records, opts.Filter)
	if err != nil {
		return err
	}

	if opts.Query != "" {
		out, err := filter.Query(records, opts.Query)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, out)
		return nil
	}

	return a.writeRecords(records, opts.OutputFormat)
}

// Show prints one stored shortcut
func (a *App) Show(field, outputFormat string) error {
	rec, err := a.Store.Get(field)
	if err != nil {
		return err
	}
	return a.writeRecords([]types.ShortcutRecord{*rec}, outputFormat)
}

func (a *App) writeRecords(records []types.ShortcutRecord, outputFormat string) error {
	if outputFormat == "" || outputFormat == "text" {
		fmt.Fprint(a.Out, formatRecords(records))
		return nil
	}

	format, err := export.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	return export.Encode(a.Out, format, records)
}

// formatRecords renders records as an aligned text table
func formatRecords(records []types.ShortcutRecord) string {
	if len(records) == 0 {
		return subtleStyle.Render("No shortcuts stored") + "\n"
	}

	width := 0
	for _, rec := range records {
		width = max(width, runewidth.StringWidth(rec.Field))
	}

	var sb strings.Builder
	for _, rec := range records {
		keysText := rec.Shortcut.KeysText
		if rec.Shortcut.IsEmpty() {
			keysText = "-"
		}
		sb.WriteString(fieldStyle.Render(runewidth.FillRight(rec.Field, width)))
		sb.WriteString("  ")
		sb.WriteString(keysStyle.Render(keysText))
		sb.WriteString("  ")
		sb.WriteString(subtleStyle.Render(fmt.Sprintf("%s [%s]", rec.Shortcut.Keys, rec.Mode)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Validate checks stored shortcuts; with no fields every stored field is checked
func (a *App) Validate(fields []string) error {
	var records []types.ShortcutRecord
	if len(fields) == 0 {
		all, err := a.Store.List()
		if err != nil {
			return err
		}
		records = all
	} else {
		for _, field := range fields {
			rec, err := a.Store.Get(field)
			if err != nil {
				return err
			}
			records = append(records, *rec)
		}
	}

	result := keybinds.ValidateShortcuts(records, a.Catalog)
	if result.HasErrors() {
		fmt.Fprintln(a.Out, errorStyle.Render(result.String()))
		return ErrValidationFailed
	}
	if result.HasWarnings() {
		fmt.Fprintln(a.Out, result.String())
		return nil
	}
	fmt.Fprintln(a.Out, successStyle.Render(a.Catalog.T("status:valid", nil)))
	return nil
}

// Render prints the display text of raw keys and their token count
func (a *App) Render(keys string) error {
	if keys == "" {
		return fmt.Errorf("keys cannot be empty")
	}
	text := a.Catalog.Normalizer().Render(keys)
	fmt.Fprintf(a.Out, "%s %s\n", keysStyle.Render(text), subtleStyle.Render(fmt.Sprintf("(%d keys)", shortcut.TokenCount(keys))))
	return nil
}

// History prints the commits of a field, newest first
func (a *App) History(field string, limit int) error {
	if _, err := a.Store.Get(field); err != nil {
		return err
	}

	entries, err := a.Store.History(field, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.Out, subtleStyle.Render("No history"))
		return nil
	}

	for _, e := range entries {
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(a.Out, "%s  %s  %s  %s  %s\n",
			subtleStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
			runewidth.FillRight(string(e.Reason), 6),
			subtleStyle.Render(runewidth.FillRight(session, 8)),
			keysStyle.Render(e.Shortcut.KeysText),
			subtleStyle.Render(e.Shortcut.Keys),
		)
	}
	return nil
}

// Delete removes a field and its history
func (a *App) Delete(field string) error {
	if err := a.Store.Delete(field); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deleted %s\n", fieldStyle.Render(field))
	return nil
}

// Export writes every stored shortcut to path, or to Out when path is empty.
// The format defaults to the path extension, then json.
func (a *App) Export(formatName, path string) error {
	format, err := resolveFormat(formatName, path)
	if err != nil {
		return err
	}

	records, err := a.Store.List()
	if err != nil {
		return err
	}

	if path == "" {
		return export.Encode(a.Out, format, records)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Encode(f, format, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.Err, "Exported %d shortcuts to %s\n", len(records), path)
	return nil
}

// Import loads shortcuts from an export file. Every imported value is
// recorded in history under one session id.
func (a *App) Import(path, formatName string) error {
	format, err := resolveFormat(formatName, path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	records, err := export.Decode(f, format)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	commits := make([]store.Commit, 0, len(records))
	for _, rec := range records {
		commits = append(commits, store.Commit{
			Field:     rec.Field,
			Mode:      rec.Mode,
			Shortcut:  rec.Shortcut,
			SessionID: sessionID,
			Reason:    types.ReasonImport,
		})
	}
	if err := a.Store.SaveAll(commits); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "Imported %d shortcuts\n", len(commits))

	if result := keybinds.ValidateShortcuts(records, a.Catalog); result.HasErrors() || result.HasWarnings() {
		fmt.Fprintln(a.Err, result.String())
	}
	return nil
}

func resolveFormat(formatName, path string) (export.Format, error) {
	if formatName != "" {
		return export.ParseFormat(formatName)
	}
	if path != "" {
		return export.FormatFromPath(path)
	}
	return export.FormatJSON, nil
}

// Copy puts the raw keys of a field on the clipboard
func (a *App) Copy(field string) error {
	rec, err := a.Store.Get(field)
	if err != nil {
		return err
	}
	if rec.Shortcut.Keys == "" {
		return fmt.Errorf("%s has no shortcut to copy", field)
	}
	if err := a.Clipboard(rec.Shortcut.Keys); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintf(a.Out, "Copied %s\n", keysStyle.Render(rec.Shortcut.Keys))
	return nil
}

// Match prints the fields bound to keys. Exact matches win; otherwise the
// keys are compared regardless of order.
func (a *App) Match(keys string) error {
	records, err := a.Store.FindByKeys(keys)
	if err != nil {
		return err
	}

	var fields []string
	for _, rec := range records {
		fields = append(fields, rec.Field)
	}

	if len(fields) == 0 {
		all, err := a.Store.List()
		if err != nil {
			return err
		}
		fields = keybinds.NewMatcher(all).Match(keys)
	}

	if len(fields) == 0 {
		return fmt.Errorf("%s: %w", keys, store.ErrNotFound)
	}
	for _, field := range fields {
		fmt.Fprintln(a.Out, field)
	}
	return nil
}

// KeybindsValidate validates the control keymap file at path.
// A missing file validates the defaults.
func (a *App) KeybindsValidate(path string) error {
	cfg := &keybinds.Config{}
	if _, err := os.Stat(path); err == nil {
		loaded, err := keybinds.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	result := keybinds.NewValidator().ValidateConfig(cfg)
	fmt.Fprintln(a.Out, result.String())
	if result.HasErrors() {
		return ErrValidationFailed
	}
	return nil
}

// KeybindsInit writes the default control keymap to path
func (a *App) KeybindsInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := keybinds.CreateExampleConfig(path); err != nil {
		return fmt.Errorf("failed to write keybinds: %w", err)
	}
	fmt.Fprintf(a.Out, "Wrote %s\n", path)
	return nil
}

// Version prints the version and, when check is set, looks for a newer release
func (a *App) Version(ctx context.Context, current string, check bool) error {
	fmt.Fprintf(a.Out, "keycap %s\n", current)
	if !check {
		return nil
	}

	info, err := version.NewChecker().Check(ctx, current)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if info.Available {
		fmt.Fprintf(a.Out, "A new version is available: %s\n%s\n", successStyle.Render(info.Latest), info.URL)
	} else {
		fmt.Fprintln(a.Out, subtleStyle.Render("You are running the latest version"))
	}
	return nil
}
