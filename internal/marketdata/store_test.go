package marketdata

import (
	"path/filepath"
	"testing"
	"time"

	"stock-risk-explorer/internal/types"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	f := types.Fundamentals{
		ShortName: "Apple Inc.",
		Sector:    "Technology",
		MarketCap: types.Float(3e12),
	}
	if err := store.Put("AAPL", snapshotFundamentals, &f); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got types.Fundamentals
	hit, err := store.Get("AAPL", snapshotFundamentals, time.Hour, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatal("Expected a snapshot hit")
	}
	if got.ShortName != "Apple Inc." || got.Sector != "Technology" {
		t.Errorf("Unexpected snapshot content: %+v", got)
	}
	if got.MarketCap == nil || *got.MarketCap != 3e12 {
		t.Errorf("Expected market cap 3e12, got %v", got.MarketCap)
	}
}

func TestSnapshotStoreMissAndExpiry(t *testing.T) {
	store, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	var f types.Fundamentals
	hit, err := store.Get("NONE", snapshotFundamentals, time.Hour, &f)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Error("Expected a miss for an unknown symbol")
	}

	if err := store.Put("OLD", snapshotFundamentals, &types.Fundamentals{Sector: "Utilities"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	// TTL of zero makes any stored snapshot stale
	hit, err = store.Get("OLD", snapshotFundamentals, 0, &f)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Error("Expected stale snapshot to miss")
	}
}

func TestSnapshotStoreReplace(t *testing.T) {
	store, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	store.Put("MSFT", snapshotFundamentals, &types.Fundamentals{Sector: "Technology"})
	store.Put("MSFT", snapshotFundamentals, &types.Fundamentals{Sector: "Communication Services"})

	var got types.Fundamentals
	hit, err := store.Get("MSFT", snapshotFundamentals, time.Hour, &got)
	if err != nil || !hit {
		t.Fatalf("Expected a hit, got hit=%v err=%v", hit, err)
	}
	if got.Sector != "Communication Services" {
		t.Errorf("Expected replaced snapshot, got sector %s", got.Sector)
	}
}
