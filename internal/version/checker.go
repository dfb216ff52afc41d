package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// ReleasesURL is the endpoint of the latest keycap release
	ReleasesURL  = "https://api.github.com/repos/studiowebux/keycap/releases/latest"
	checkTimeout = 5 * time.Second
)

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// UpdateInfo is the outcome of an update check
type UpdateInfo struct {
	Available bool
	Current   string
	Latest    string
	URL       string
}

// Checker queries the release endpoint
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a checker for the public release endpoint
func NewChecker() *Checker {
	return &Checker{
		URL:    ReleasesURL,
		Client: &http.Client{Timeout: checkTimeout},
	}
}

// Check reports whether a release newer than currentVersion exists
func (c *Checker) Check(ctx context.Context, currentVersion string) (UpdateInfo, error) {
	info := UpdateInfo{Current: strings.TrimPrefix(currentVersion, "v")}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return info, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "keycap/"+info.Current)
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: checkTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return info, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return info, fmt.Errorf("failed to decode response: %w", err)
	}

	info.Latest = strings.TrimPrefix(release.TagName, "v")
	info.URL = release.HTMLURL
	info.Available = info.Latest != "" && isNewerVersion(info.Latest, info.Current)
	return info, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] != currentParts[i] {
			return latestParts[i] > currentParts[i]
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
