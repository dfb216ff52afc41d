package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studiowebux/keycap/internal/shortcut"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// keyLabelPrefix marks catalog entries that relabel a raw key ("key:Control")
const keyLabelPrefix = "key:"

var defaultMessages = map[string]string{
	"setShortcut":           "Set shortcut",
	"clickToSet":            "Press 'Set shortcut' then type the keys",
	"alternativeText":       "Text shown for the shortcut",
	"unknownKey":            shortcut.DefaultUnknownLabel,
	"key:Control":           shortcut.DefaultControlLabel,
	"error:mustBeFilled":    "A shortcut must be set",
	"error:invalidShortcut": "The text must have as many keys as the shortcut",
	"label:keys":            "Shortcut",
	"label:keysText":        "Text",
	"label:mode":            "Mode",
	"status:armed":          "Type the shortcut, click elsewhere to finish",
	"status:saved":          "Saved :keys",
	"status:resynced":       "Text did not match the shortcut and was reset",
	"status:blur":           "Focus left the window, an unknown key was recorded",
	"status:valid":          "Shortcut is valid",
	"status:copied":         "Copied :keys",
	"status:mode":           "Capture mode: :mode",
	"status:conflict":       "Also used by :fields",
	"error:nothingToCopy":   "Nothing to copy yet",
	"error:saveFailed":      "Could not save: :error",
}

// Catalog holds the translated strings of one locale
type Catalog struct {
	tag      language.Tag
	messages map[string]string
}

// Default returns the built-in English catalog
func Default() *Catalog {
	messages := make(map[string]string, len(defaultMessages))
	for k, v := range defaultMessages {
		messages[k] = v
	}
	return &Catalog{tag: language.English, messages: messages}
}

// Load returns the catalog from dir that best matches locale, layered over
// the English defaults. Locale files are YAML maps named after their tag
// (fr.yaml, pt-BR.yaml). A missing dir or an unmatched locale yields the
// defaults.
func Load(dir, locale string) (*Catalog, error) {
	c := Default()
	if dir == "" || locale == "" {
		return c, nil
	}

	want, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	// index 0 is the built-in catalog
	tags := []language.Tag{language.English}
	paths := []string{""}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(entry.Name(), ext))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No || index == 0 {
		return c, nil
	}

	if err := c.merge(paths[index]); err != nil {
		return nil, err
	}
	c.tag = tags[index]
	return c, nil
}

func (c *Catalog) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read locale file: %w", err)
	}

	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("invalid locale file %s: %w", filepath.Base(path), err)
	}

	for k, v := range messages {
		c.messages[k] = v
	}
	return nil
}

// Tag returns the language of the catalog
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// T returns the message for key with :name placeholders replaced from params.
// Unknown keys come back as "[missing translation: key]".
func (c *Catalog) T(key string, params map[string]string) string {
	msg, ok := c.messages[key]
	if !ok {
		return "[missing translation: " + key + "]"
	}
	if len(params) == 0 {
		return msg
	}

	// Longest names first so ":keysText" is not eaten by ":keys"
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	pairs := make([]string, 0, len(params)*2)
	for _, name := range names {
		pairs = append(pairs, ":"+name, params[name])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// KeyLabels returns the raw key -> label table declared with "key:" entries
func (c *Catalog) KeyLabels() map[string]string {
	labels := make(map[string]string)
	for k, v := range c.messages {
		if raw, ok := strings.CutPrefix(k, keyLabelPrefix); ok {
			labels[raw] = v
		}
	}
	return labels
}

// Normalizer returns a token normalizer using this catalog's labels
func (c *Catalog) Normalizer() *shortcut.Normalizer {
	return shortcut.NewNormalizer(c.KeyLabels(), c.T("unknownKey", nil))
}
