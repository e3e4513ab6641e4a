package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	oldFs := AppFs
	AppFs = fs
	defer func() { AppFs = oldFs }()

	cfg := &Config{
		SheetURL:     "https://example.com/sheet.csv",
		CacheTTL:     10 * time.Minute,
		DefaultLimit: 50,
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := afero.ReadFile(fs, ".sheetdb.yaml")
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	content := string(data)
	for _, want := range []string{"https://example.com/sheet.csv", "10m0s", "50"} {
		if !strings.Contains(content, want) {
			t.Errorf("config file missing %q:\n%s", want, content)
		}
	}
}
