package keybinds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/studiowebux/keycap/internal/shortcut"
	"github.com/studiowebux/keycap/internal/types"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

func (r *ValidationResult) addError(kind string, context Context, key, message string) {
	r.Errors = append(r.Errors, ValidationError{Type: kind, Context: context, Key: key, Message: message})
}

func (r *ValidationResult) addWarning(context Context, key, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Type: "warning", Context: context, Key: key, Message: message})
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys maps keys that must not be rebound to their only allowed action
	reservedKeys map[string]Action

	// contextHierarchy defines context inheritance
	contextHierarchy map[Context]Context
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce, // Force quit should always work
		},
		contextHierarchy: map[Context]Context{
			ContextNormal:    ContextGlobal,
			ContextCapture:   ContextGlobal,
			ContextTextInput: ContextGlobal,
			ContextPicker:    ContextGlobal,
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkKeysAndActions(registry, result)
	v.checkReservedKeys(registry, result)
	v.checkShadowing(registry, result)
	v.checkCaptureExit(registry, result)

	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(cfg *Config) *ValidationResult {
	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, cfg); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{{
				Type:    "invalid",
				Message: err.Error(),
			}},
			Warnings: []ValidationError{},
		}
	}

	return v.ValidateRegistry(registry)
}

func (v *Validator) checkKeysAndActions(registry *Registry, result *ValidationResult) {
	for _, context := range registry.Contexts() {
		for _, b := range registry.ListBindings(context) {
			if b.Context != context {
				continue
			}
			if err := ValidateKey(b.Key); err != nil {
				result.addError("invalid", context, b.Key, err.Error())
			}
			if !b.Action.IsKnown() {
				result.addError("invalid", context, b.Key, fmt.Sprintf("unknown action %q", b.Action))
			}
			if _, known := v.contextHierarchy[context]; !known && context != ContextGlobal {
				result.addWarning(context, b.Key, "context is not used by the application")
			}
		}
	}
}

// checkReservedKeys checks if any reserved keys have been rebound
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for _, context := range registry.Contexts() {
		for key, action := range registry.bindings[context] {
			if want, reserved := v.reservedKeys[key]; reserved && action != want {
				result.addError("conflict", context, key, fmt.Sprintf("reserved key rebound to %s", action))
			}
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for _, context := range registry.Contexts() {
		if context == ContextGlobal {
			continue
		}
		for key, action := range registry.bindings[context] {
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.addWarning(context, key, fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action))
			}
		}
	}
}

// checkCaptureExit warns when the raw input can only be left with the mouse
// or by switching terminal windows.
func (v *Validator) checkCaptureExit(registry *Registry, result *ValidationResult) {
	if len(registry.GetBinding(ContextCapture, ActionEndCapture)) == 0 {
		result.addWarning(ContextCapture, "", "no key ends capturing; use the mouse or switch windows")
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(cfg *Config) []string {
	validator := NewValidator()
	result := validator.ValidateConfig(cfg)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	validModifiers := []string{"ctrl+", "alt+", "shift+", "super+"}
	rest := key
	for {
		trimmed := rest
		for _, mod := range validModifiers {
			trimmed = strings.TrimPrefix(trimmed, mod)
		}
		if trimmed == rest {
			break
		}
		rest = trimmed
	}

	if rest == "" {
		return fmt.Errorf("modifier without key: %s", key)
	}

	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !Action(actionStr).IsKnown() {
		return fmt.Errorf("unknown action %q", actionStr)
	}
	return nil
}

// ShortcutContext is the context reported for stored shortcut problems
const ShortcutContext Context = "shortcuts"

// Translator supplies the user-facing messages of shortcut errors
type Translator interface {
	T(key string, params map[string]string) string
}

// ValidateShortcuts checks stored shortcuts: structural errors per field,
// fields sharing the same keys, and values holding a focus-loss marker.
// tr may be nil.
func ValidateShortcuts(records []types.ShortcutRecord, tr Translator) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	owners := make(map[string][]string)
	for _, rec := range records {
		value := rec.Shortcut
		var ptr *types.Shortcut
		if !value.IsEmpty() {
			ptr = &value
		}
		for _, kind := range shortcut.Validate(ptr) {
			result.addError("invalid", ShortcutContext, rec.Field, errorMessage(kind, tr))
		}
		if shortcut.Contains(value.Keys, shortcut.BlurToken) {
			result.addWarning(ShortcutContext, rec.Field, "contains a key lost to window focus change")
		}
		if canonical := CanonicalKeys(value.Keys); canonical != "" {
			owners[canonical] = append(owners[canonical], rec.Field)
		}
	}

	canonicals := make([]string, 0, len(owners))
	for canonical := range owners {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)
	for _, canonical := range canonicals {
		fields := owners[canonical]
		if len(fields) < 2 {
			continue
		}
		sort.Strings(fields)
		for _, field := range fields {
			result.addError("conflict", ShortcutContext, field,
				fmt.Sprintf("%s shared with %s", canonical, strings.Join(others(fields, field), ", ")))
		}
	}

	return result
}

func errorMessage(kind shortcut.ErrorKind, tr Translator) string {
	if tr == nil {
		return string(kind)
	}
	return tr.T(kind.TranslationKey(), nil)
}

func others(fields []string, self string) []string {
	out := make([]string, 0, len(fields)-1)
	for _, f := range fields {
		if f != self {
			out = append(out, f)
		}
	}
	return out
}
