// Package update checks for newer sheetdb releases.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/sheetdb/cli/internal/ui"
)

const releaseURL = "https://api.github.com/repos/satishbabariya/sheetdb/releases/latest"

// Check fetches the latest released version and notifies the user when the
// running binary is behind it.
func Check(ctx context.Context, currentVersion string) error {
	current, err := version.NewVersion(strings.TrimPrefix(currentVersion, "v"))
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latestStr, err := fetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	latest, err := version.NewVersion(latestStr)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", current)
		fmt.Printf("Latest version:  %s\n", latest)
		fmt.Printf("\nUpdate with: go install github.com/satishbabariya/sheetdb/cli@latest\n")
	}

	return nil
}

func fetchLatest(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
