package dedupe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fundclean/fundclean/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), IndexFileName))
}

func section(name string, lines ...string) model.Section {
	return model.Section{Name: name, Title: name, Lines: lines}
}

func TestStore_EvaluateNeverSeenIsNew(t *testing.T) {
	store := testStore(t)

	results, err := store.Evaluate("FUND1", "2025Q1", []model.Section{
		section("important_information", "risk disclosure"),
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	r := results[0]
	if r.Status != model.StatusNew {
		t.Errorf("status = %q, want new", r.Status)
	}
	if r.PreviousHash != "" {
		t.Errorf("previous hash = %q, want empty", r.PreviousHash)
	}
	if r.Key != "important_information:0" {
		t.Errorf("key = %q", r.Key)
	}
	if r.CurrentHash != Hash("risk disclosure") {
		t.Errorf("current hash mismatch")
	}
}

func TestStore_EvaluateSameQuarterRerunIsReuse(t *testing.T) {
	store := testStore(t)
	sections := []model.Section{section("fees_charges", "management fee 1.5%")}

	if _, err := store.Evaluate("FUND1", "2025Q1", sections); err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	results, err := store.Evaluate("FUND1", "2025Q1", sections)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}

	r := results[0]
	if r.Status != model.StatusReuse {
		t.Errorf("status = %q, want reuse", r.Status)
	}
	if r.PreviousHash != r.CurrentHash {
		t.Errorf("previous hash %q != current %q", r.PreviousHash, r.CurrentHash)
	}
}

func TestStore_EvaluateChangedAcrossQuarters(t *testing.T) {
	store := testStore(t)

	first := []model.Section{section("performance", "return 5%")}
	if _, err := store.Evaluate("FUND1", "2025Q1", first); err != nil {
		t.Fatalf("Evaluate Q1: %v", err)
	}

	second := []model.Section{section("performance", "return 7%")}
	results, err := store.Evaluate("FUND1", "2025Q2", second)
	if err != nil {
		t.Fatalf("Evaluate Q2: %v", err)
	}

	r := results[0]
	if r.Status != model.StatusUpdated {
		t.Errorf("status = %q, want updated", r.Status)
	}
	if r.PreviousHash != Hash("return 5%") {
		t.Errorf("previous hash = %q, want hash of the Q1 text", r.PreviousHash)
	}
}

func TestStore_EvaluateUnchangedAcrossQuartersIsReuse(t *testing.T) {
	store := testStore(t)
	sections := []model.Section{section("other_information", "contact us")}

	if _, err := store.Evaluate("FUND1", "2024Q4", sections); err != nil {
		t.Fatalf("Evaluate 2024Q4: %v", err)
	}
	results, err := store.Evaluate("FUND1", "2025Q1", sections)
	if err != nil {
		t.Fatalf("Evaluate 2025Q1: %v", err)
	}
	if results[0].Status != model.StatusReuse {
		t.Errorf("status = %q, want reuse", results[0].Status)
	}
}

func TestStore_EvaluateComparesMostRecentOtherQuarter(t *testing.T) {
	store := testStore(t)

	if _, err := store.Evaluate("FUND1", "2024Q3", []model.Section{section("performance", "old")}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Evaluate("FUND1", "2024Q4", []model.Section{section("performance", "newer")}); err != nil {
		t.Fatal(err)
	}

	results, err := store.Evaluate("FUND1", "2025Q1", []model.Section{section("performance", "latest")})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].PreviousHash != Hash("newer") {
		t.Errorf("previous hash should come from 2024Q4, the most recent other quarter")
	}
}

func TestStore_QuarterMapFullyReplaced(t *testing.T) {
	store := testStore(t)

	if _, err := store.Evaluate("FUND1", "2025Q1", []model.Section{
		section("important_information", "a"),
		section("fees_charges", "b"),
	}); err != nil {
		t.Fatal(err)
	}
	// Re-run with only one section; the stale key must disappear.
	if _, err := store.Evaluate("FUND1", "2025Q1", []model.Section{
		section("important_information", "a"),
	}); err != nil {
		t.Fatal(err)
	}

	index, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	quarterMap := index["FUND1"]["2025Q1"]
	if len(quarterMap) != 1 {
		t.Errorf("quarter map = %v, want exactly the current run's keys", quarterMap)
	}
	if _, ok := quarterMap["fees_charges:1"]; ok {
		t.Error("stale key survived the full replace")
	}
}

func TestStore_FundsAreIndependent(t *testing.T) {
	store := testStore(t)
	sections := []model.Section{section("performance", "shared text")}

	if _, err := store.Evaluate("FUND1", "2025Q1", sections); err != nil {
		t.Fatal(err)
	}
	results, err := store.Evaluate("FUND2", "2025Q2", sections)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != model.StatusNew {
		t.Errorf("status = %q, other funds' history must not leak", results[0].Status)
	}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := testStore(t)
	index, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(index) != 0 {
		t.Errorf("index = %v, want empty", index)
	}
}

func TestStore_LoadCorruptIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, IndexFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, err := store.Load(); err == nil {
		t.Fatal("corrupt index must be a fatal parse error")
	}
	if _, err := store.Evaluate("FUND1", "2025Q1", nil); err == nil {
		t.Fatal("Evaluate must propagate the parse error")
	}
}

func TestStore_SaveKeepsUTF8Readable(t *testing.T) {
	store := testStore(t)

	if _, err := store.Evaluate("基金A", "2025Q1", []model.Section{
		section("important_information", "重要事項内容"),
	}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "基金A") {
		t.Error("fund id should be stored unescaped")
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("index file should be indented")
	}
}
