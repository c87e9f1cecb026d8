package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/lifter/internal/config"
)

func TestOpenSession_CreatesDefaultPlan(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	session, err := openSession(config.Config{DataDir: dir}, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}

	view := session.View()
	if view.TemplateName() != "Default Plan" || view.Day != 0 {
		t.Fatalf("view = %q day %d, want Default Plan on Monday", view.TemplateName(), view.Day)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestOpenSession_CorruptPlansFail(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "workout_templates.toml"), []byte("templates = ["), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := openSession(config.Config{DataDir: dir}, time.Now())
	if err == nil {
		t.Fatal("expected error for unreadable plans")
	}
	if !strings.Contains(err.Error(), "load saved data") {
		t.Fatalf("err = %v, want load saved data context", err)
	}
}

func TestCatalogLoader_Bundled(t *testing.T) {
	idx, err := catalogLoader("bundled")(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if idx.Len() == 0 {
		t.Fatal("bundled catalog is empty")
	}
}

func TestCatalogLoader_MissingFileNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := catalogLoader(path)(context.Background())
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("err = %v, want it to name %s", err, path)
	}
}
