package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope"))

	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Missing directory should not be an error: %v", err)
	}
	if len(configs) != 0 {
		t.Errorf("Expected no configs, got %d", len(configs))
	}
}

func TestLoader_DefaultsAndNaming(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "cumcm.yml", `type: html
url: https://www.mcm.edu.cn/index_cn.html
enabled: true
list:
  keywords: ["通知", "公告"]
`)

	configs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("Expected 1 config, got %d", len(configs))
	}

	config := configs[0]
	if config.Name != "cumcm" {
		t.Errorf("Name should derive from the filename, got %q", config.Name)
	}
	if config.Timeout != 20 {
		t.Errorf("Expected default timeout 20, got %d", config.Timeout)
	}
	if config.List.Selector != "a" {
		t.Errorf("Expected default selector 'a', got %q", config.List.Selector)
	}
	if config.List.Limit != 30 {
		t.Errorf("Expected default list limit 30, got %d", config.List.Limit)
	}
	if config.Detail.Limit != 5 || config.Detail.DelayMs != 800 {
		t.Errorf("Detail defaults incorrect: %+v", config.Detail)
	}
}

func TestLoader_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b-source.yml", "type: rss\nurl: https://example.com/b.xml\nenabled: true\n")
	writeSource(t, dir, "a-source.yml", "type: rss\nurl: https://example.com/a.xml\nenabled: true\n")

	configs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}
	if configs[0].Name != "a-source" || configs[1].Name != "b-source" {
		t.Errorf("Configs should be sorted by file name: %s, %s", configs[0].Name, configs[1].Name)
	}
}

func TestLoader_RejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.yml", "type: gopher\nurl: gopher://example.com\nenabled: true\n")

	if _, err := NewLoader(dir).LoadAll(); err == nil {
		t.Errorf("Expected an error for an unknown source type")
	}
}

func TestLoader_RejectsMissingURL(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.yml", "type: rss\nenabled: true\n")

	if _, err := NewLoader(dir).LoadAll(); err == nil {
		t.Errorf("Expected an error for a missing URL")
	}
}
