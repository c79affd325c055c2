package catalog

import (
	"path/filepath"
	"testing"
)

func TestStore_MissingFileYieldsEmptyCatalog(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "catalog.json"))

	catalog, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if catalog.Version != CurrentVersion {
		t.Errorf("Expected version %d, got %d", CurrentVersion, catalog.Version)
	}
	if len(catalog.Items) != 0 {
		t.Errorf("Expected empty catalog, got %d items", len(catalog.Items))
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	store := NewStore(path)

	original := &Catalog{
		Version:   1,
		UpdatedAt: "2025-03-21T00:00:00Z",
		Items: []Item{
			{
				ID:          "abc123",
				Title:       "第十届全国大学生数学建模竞赛",
				BonusAmount: 100000,
				BonusText:   "10万元",
				Deadline:    "2025-06-01",
				Status:      StatusOpen,
				Category:    []string{"数学建模"},
				Tags:        []string{"国家级", "高校"},
				SourceName:  "cumcm",
				SourceURL:   "https://www.mcm.edu.cn/notice/1",
				CreatedAt:   "2025-03-01T00:00:00Z",
				RankReasons: []string{"白名单:数学建模", "官方来源"},
				IsWhitelist: true,
				Level:       "National",
			},
		},
	}

	if err := store.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.UpdatedAt != original.UpdatedAt {
		t.Errorf("UpdatedAt mismatch: %q vs %q", loaded.UpdatedAt, original.UpdatedAt)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(loaded.Items))
	}

	item := loaded.Items[0]
	if item.Title != original.Items[0].Title {
		t.Errorf("Title mismatch: %q", item.Title)
	}
	if item.BonusAmount != 100000 || item.BonusText != "10万元" {
		t.Errorf("Bonus fields mismatch: %d %q", item.BonusAmount, item.BonusText)
	}
	if !item.IsWhitelist || item.Level != "National" {
		t.Errorf("Ranking fields mismatch: %+v", item)
	}
}
