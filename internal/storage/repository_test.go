package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"zakat/internal/core"
	"zakat/internal/services"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "zakat.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testContribution(name string) core.Contribution {
	return core.Contribution{
		Name:   name,
		Kind:   "fitrah",
		Amount: decimal.RequireFromString("35000"),
		Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestContributionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateContribution(ctx, testContribution("Ahmad"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetContribution(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ahmad" || got.Kind != "fitrah" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("35000")) {
		t.Fatalf("amount round trip lost precision: %s", got.Amount)
	}
	if got.Date.Format(core.DateLayout) != "2024-01-15" {
		t.Fatalf("date round trip: %v", got.Date)
	}

	got.Name = "Ahmad bin Umar"
	got.Amount = decimal.RequireFromString("40000.50")
	if err := repo.UpdateContribution(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, err := repo.GetContribution(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Name != "Ahmad bin Umar" || !updated.Amount.Equal(decimal.RequireFromString("40000.50")) {
		t.Fatalf("update not persisted: %+v", updated)
	}

	if err := repo.DeleteContribution(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetContribution(ctx, id); !errors.Is(err, core.ErrContributionNotFound) {
		t.Fatalf("expected ErrContributionNotFound, got %v", err)
	}
}

func TestContributionUpdateMissingRow(t *testing.T) {
	repo := newTestRepo(t)

	c := testContribution("X")
	c.ID = 99
	if err := repo.UpdateContribution(context.Background(), c); !errors.Is(err, core.ErrContributionNotFound) {
		t.Fatalf("expected ErrContributionNotFound, got %v", err)
	}
	if err := repo.DeleteContribution(context.Background(), 99); !errors.Is(err, core.ErrContributionNotFound) {
		t.Fatalf("expected ErrContributionNotFound, got %v", err)
	}
}

func TestContributionIDsNotReusedAfterDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreateContribution(ctx, testContribution("A"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteContribution(ctx, first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, err := repo.CreateContribution(ctx, testContribution("B"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second <= first {
		t.Fatalf("id %d reused after deleting %d", second, first)
	}
}

func TestRiceTypePrice(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateRiceType(ctx, core.RiceType{
		Name:       "Premium",
		PricePerKg: decimal.RequireFromString("12000.00"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	price, err := repo.RiceTypePrice(ctx, id)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("12000.00")) {
		t.Fatalf("price = %s", price)
	}

	if _, err := repo.RiceTypePrice(ctx, 42); !errors.Is(err, core.ErrRiceTypeNotFound) {
		t.Fatalf("expected ErrRiceTypeNotFound, got %v", err)
	}

	types, err := repo.ListRiceTypes(ctx)
	if err != nil || len(types) != 1 || types[0].Name != "Premium" {
		t.Fatalf("list = %+v (%v)", types, err)
	}
}

func TestRecordAndListTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	rec := services.NewRecorder(repo)

	contribID, err := repo.CreateContribution(ctx, testContribution("Ahmad"))
	if err != nil {
		t.Fatalf("create contribution: %v", err)
	}
	riceID, err := repo.CreateRiceType(ctx, core.RiceType{
		Name:       "Premium",
		PricePerKg: decimal.RequireFromString("12000.00"),
	})
	if err != nil {
		t.Fatalf("create rice type: %v", err)
	}

	date, _ := core.ParseDate("2024-01-15")
	txID, err := rec.RecordTransaction(ctx, core.TransactionInput{
		ContributionID: contribID,
		RiceTypeID:     riceID,
		QuantityKg:     decimal.NewFromInt(10),
		Date:           date,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	views, err := repo.ListTransactionViews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	v := views[0]
	if v.ID != txID || v.ContributorName != "Ahmad" || v.RiceTypeName != "Premium" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.TotalPrice.StringFixed(2) != "120000.00" {
		t.Fatalf("total = %s, want 120000.00", v.TotalPrice)
	}
}

func TestFailedRecordingLeavesCountUnchanged(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	rec := services.NewRecorder(repo)

	riceID, err := repo.CreateRiceType(ctx, core.RiceType{
		Name:       "Premium",
		PricePerKg: decimal.RequireFromString("12000.00"),
	})
	if err != nil {
		t.Fatalf("create rice type: %v", err)
	}

	date, _ := core.ParseDate("2024-01-15")
	_, err = rec.RecordTransaction(ctx, core.TransactionInput{
		ContributionID: 999, // absent
		RiceTypeID:     riceID,
		QuantityKg:     decimal.NewFromInt(5),
		Date:           date,
	})
	if !errors.Is(err, core.ErrContributionNotFound) {
		t.Fatalf("expected ErrContributionNotFound, got %v", err)
	}

	n, err := repo.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("failed recording left %d rows", n)
	}
}

func TestForeignKeysBackstopDirectInserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// bypass the recorder entirely: the schema must still refuse the row
	err := repo.Transact(ctx, func(s services.RecorderStores) error {
		_, err := s.InsertTransaction(ctx, core.Transaction{
			ContributionID: 123,
			RiceTypeID:     456,
			QuantityKg:     decimal.NewFromInt(1),
			TotalPrice:     decimal.NewFromInt(1),
			Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		})
		return err
	})
	if err == nil {
		t.Fatalf("insert with dangling references must fail")
	}

	n, err := repo.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("dangling row persisted")
	}
}

func TestDeleteReferencedContributionBlocked(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	rec := services.NewRecorder(repo)

	contribID, err := repo.CreateContribution(ctx, testContribution("Ahmad"))
	if err != nil {
		t.Fatalf("create contribution: %v", err)
	}
	riceID, err := repo.CreateRiceType(ctx, core.RiceType{
		Name:       "Premium",
		PricePerKg: decimal.RequireFromString("12000.00"),
	})
	if err != nil {
		t.Fatalf("create rice type: %v", err)
	}
	date, _ := core.ParseDate("2024-01-15")
	if _, err := rec.RecordTransaction(ctx, core.TransactionInput{
		ContributionID: contribID,
		RiceTypeID:     riceID,
		QuantityKg:     decimal.NewFromInt(2),
		Date:           date,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := repo.DeleteContribution(ctx, contribID); err == nil {
		t.Fatalf("deleting a referenced contribution must fail")
	}
}

func TestListTransactionViewsEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	views, err := repo.ListTransactionViews(context.Background())
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no views, got %d", len(views))
	}
}
