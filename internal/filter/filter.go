// Package filter narrows and reshapes shortcut listings with JMESPath.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/keycap/internal/types"
)

const (
	// QueryShellTimeout is the maximum time allowed for query shell command execution
	QueryShellTimeout = 30 * time.Second
)

var (
	// Shell command pattern: $(command)
	shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)
)

// Select keeps the records picked by a JMESPath expression evaluated
// against the record list, e.g. [?mode=='content'] or [?contains(shortcut.keys, 'Control')].
// The expression must produce a list of records.
func Select(records []types.ShortcutRecord, expression string) ([]types.ShortcutRecord, error) {
	if expression == "" {
		return records, nil
	}

	result, err := search(records, expression)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}
	if result == nil {
		return []types.ShortcutRecord{}, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter result: %w", err)
	}

	var selected []types.ShortcutRecord
	if err := json.Unmarshal(data, &selected); err != nil {
		return nil, fmt.Errorf("filter must select a list of shortcuts: %w", err)
	}
	return selected, nil
}

// Query transforms the records into free-form JSON.
// If query is $(...), it runs as a shell command with the records piped to stdin.
func Query(records []types.ShortcutRecord, query string) (string, error) {
	if matches := shellPattern.FindStringSubmatch(query); len(matches) > 1 {
		body, err := json.Marshal(records)
		if err != nil {
			return "", fmt.Errorf("failed to marshal shortcuts: %w", err)
		}
		out, err := executeShellCommand(string(body), matches[1])
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}

	result, err := search(records, query)
	if err != nil {
		return "", fmt.Errorf("failed to apply query: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

// search runs a JMESPath expression over the JSON form of records
func search(records []types.ShortcutRecord, expression string) (interface{}, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	data, err := toGeneric(records)
	if err != nil {
		return nil, err
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// toGeneric converts records to the map/slice shape JMESPath walks
func toGeneric(records []types.ShortcutRecord) (interface{}, error) {
	if records == nil {
		records = []types.ShortcutRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shortcuts: %w", err)
	}
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return data, nil
}

// executeShellCommand executes a shell command with the body piped to stdin
func executeShellCommand(body string, command string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), QueryShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := err.Error()
		if stderr.Len() > 0 {
			errMsg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand checks if a query is a shell command (starts with $(...))
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}
