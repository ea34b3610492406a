package ledger

import (
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	fs := NewFileStore(path)

	// A missing file means no snapshot yet, not an error.
	s, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatal("missing file should load as nil")
	}

	if err := fs.Save(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	loaded, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || len(loaded.Loans) != 1 || loaded.Loans[0].Name != "Bike" {
		t.Errorf("loaded snapshot = %+v", loaded)
	}
}

func TestOpenAgainstFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	store, err := Open(NewFileStore(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AddExpense(Expense{Category: "Grocery", Amount: M(450), Date: Today()}); err != nil {
		t.Fatal(err)
	}

	// A second store hydrates the state written through the first.
	again, err := Open(NewFileStore(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Get().Expenses) != 1 {
		t.Errorf("rehydrated %d expenses, want 1", len(again.Get().Expenses))
	}
}
