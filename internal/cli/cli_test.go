package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/keycap/internal/i18n"
	"github.com/studiowebux/keycap/internal/store"
	"github.com/studiowebux/keycap/internal/types"
)

type testApp struct {
	*App
	out, err  *bytes.Buffer
	clipboard string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	st, err := store.NewManager(filepath.Join(t.TempDir(), "keycap.db"))
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ta := &testApp{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	ta.App = &App{
		Store:   st,
		Catalog: i18n.Default(),
		Out:     ta.out,
		Err:     ta.err,
		Clipboard: func(text string) error {
			ta.clipboard = text
			return nil
		},
	}
	return ta
}

func (ta *testApp) seed(t *testing.T, field string, mode types.CaptureMode, keys, text string) {
	t.Helper()
	err := ta.Store.Save(store.Commit{
		Field:    field,
		Mode:     mode,
		Shortcut: types.Shortcut{Keys: keys, KeysText: text},
		Reason:   types.ReasonKey,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", field, err)
	}
}

func TestApp_ListText(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
	ta.seed(t, "paste", types.ModeCode, "ControlLeft+KeyV", "ControlLeft+KeyV")

	if err := ta.List(ListOptions{}); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	out := ta.out.String()
	for _, want := range []string{"copy", "Ctrl+C", "paste", "[code]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestApp_ListEmpty(t *testing.T) {
	ta := newTestApp(t)
	if err := ta.List(ListOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.out.String(), "No shortcuts stored") {
		t.Errorf("output = %q", ta.out.String())
	}
}

func TestApp_ListFilterAndQuery(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
	ta.seed(t, "paste", types.ModeCode, "ControlLeft+KeyV", "ControlLeft+KeyV")

	err := ta.List(ListOptions{Filter: "[?mode=='code']", Query: "[].field"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	out := ta.out.String()
	if !strings.Contains(out, `"paste"`) || strings.Contains(out, `"copy"`) {
		t.Errorf("output = %s", out)
	}
}

func TestApp_ListStructuredFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			ta := newTestApp(t)
			ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
			if err := ta.List(ListOptions{OutputFormat: format}); err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if !strings.Contains(ta.out.String(), "Control+c") {
				t.Errorf("output = %s", ta.out.String())
			}
		})
	}

	ta := newTestApp(t)
	if err := ta.List(ListOptions{OutputFormat: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestApp_ShowNotFound(t *testing.T) {
	ta := newTestApp(t)
	if err := ta.Show("missing", ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Show() error = %v", err)
	}
}

func TestApp_Validate(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")

	if err := ta.Validate(nil); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !strings.Contains(ta.out.String(), "Shortcut is valid") {
		t.Errorf("output = %q", ta.out.String())
	}

	ta.seed(t, "broken", types.ModeContent, "Control+c+x", "Ctrl+C")
	ta.out.Reset()
	if err := ta.Validate([]string{"broken"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Validate(broken) error = %v", err)
	}
	if !strings.Contains(ta.out.String(), "The text must have as many keys as the shortcut") {
		t.Errorf("output = %q", ta.out.String())
	}

	if err := ta.Validate([]string{"missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Validate(missing) error = %v", err)
	}
}

func TestApp_Render(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"Control+a", "Ctrl+A (2 keys)"},
		{"Control++", "Ctrl++ (2 keys)"},
		{"Control+blur", "Ctrl+? (2 keys)"},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			ta := newTestApp(t)
			if err := ta.Render(tt.keys); err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(ta.out.String()); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}

	ta := newTestApp(t)
	if err := ta.Render(""); err == nil {
		t.Error("expected error for empty keys")
	}
}

func TestApp_History(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control", "Ctrl")
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")

	if err := ta.History("copy", 0); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), ta.out.String())
	}
	if !strings.Contains(lines[0], "Ctrl+C") {
		t.Errorf("newest line = %q", lines[0])
	}

	if err := ta.History("missing", 0); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("History(missing) error = %v", err)
	}
}

func TestApp_Delete(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")

	if err := ta.Delete("copy"); err != nil {
		t.Fatal(err)
	}
	if err := ta.Delete("copy"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestApp_ExportImport(t *testing.T) {
	src := newTestApp(t)
	src.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
	src.seed(t, "zoom", types.ModeCode, "ControlLeft+Equal", "ControlLeft+Equal")

	for _, ext := range []string{"json", "yaml", "toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shortcuts."+ext)
			if err := src.Export("", path); err != nil {
				t.Fatalf("Export() error: %v", err)
			}

			dst := newTestApp(t)
			if err := dst.Import(path, ""); err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if !strings.Contains(dst.out.String(), "Imported 2 shortcuts") {
				t.Errorf("output = %q", dst.out.String())
			}

			rec, err := dst.Store.Get("zoom")
			if err != nil {
				t.Fatal(err)
			}
			if rec.Mode != types.ModeCode || rec.Shortcut.Keys != "ControlLeft+Equal" {
				t.Errorf("imported record = %+v", rec)
			}

			entries, _ := dst.Store.History("copy", 0)
			if len(entries) != 1 || entries[0].Reason != types.ReasonImport || entries[0].SessionID == "" {
				t.Errorf("history = %+v", entries)
			}
		})
	}
}

func TestApp_ExportStdout(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
	if err := ta.Export("yaml", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ta.out.String(), "keysText: Ctrl+C") {
		t.Errorf("output = %s", ta.out.String())
	}
}

func TestApp_ImportWarnsOnInvalid(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(t.TempDir(), "in.json")
	data := `{"shortcuts":[{"field":"bad","shortcut":{"keys":"Control+a","keysText":"Ctrl"}}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ta.Import(path, ""); err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !strings.Contains(ta.err.String(), "bad") {
		t.Errorf("stderr = %q", ta.err.String())
	}
}

func TestApp_Copy(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")

	if err := ta.Copy("copy"); err != nil {
		t.Fatal(err)
	}
	if ta.clipboard != "Control+c" {
		t.Errorf("clipboard = %q", ta.clipboard)
	}

	ta.Clipboard = func(string) error { return errors.New("no clipboard") }
	if err := ta.Copy("copy"); err == nil {
		t.Error("expected clipboard error")
	}
}

func TestApp_Match(t *testing.T) {
	ta := newTestApp(t)
	ta.seed(t, "copy", types.ModeContent, "Control+c", "Ctrl+C")
	ta.seed(t, "cut", types.ModeContent, "Control+x", "Ctrl+X")

	tests := []struct {
		keys    string
		want    string
		wantErr bool
	}{
		{keys: "Control+c", want: "copy"},
		{keys: "x+Control", want: "cut"},
		{keys: "Control+v", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			ta.out.Reset()
			err := ta.Match(tt.keys)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Match() error = %v", err)
			}
			if tt.wantErr {
				if !errors.Is(err, store.ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if got := strings.TrimSpace(ta.out.String()); got != tt.want {
				t.Errorf("Match() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApp_Keybinds(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(t.TempDir(), "keybinds.json")

	if err := ta.KeybindsValidate(path); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}

	if err := ta.KeybindsInit(path, false); err != nil {
		t.Fatalf("KeybindsInit() error: %v", err)
	}
	if err := ta.KeybindsInit(path, false); err == nil {
		t.Error("expected error when file exists")
	}
	if err := ta.KeybindsInit(path, true); err != nil {
		t.Errorf("forced KeybindsInit() error: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"global":{"ctrl+c":"copy"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ta.KeybindsValidate(path); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("KeybindsValidate() error = %v", err)
	}
}

func TestApp_Version(t *testing.T) {
	ta := newTestApp(t)
	if err := ta.Version(context.Background(), "0.1.0", false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(ta.out.String()) != "keycap 0.1.0" {
		t.Errorf("output = %q", ta.out.String())
	}
}
