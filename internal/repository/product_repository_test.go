package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"techmarket/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestBuildUpdateOnlySetsPatchedColumns(t *testing.T) {
	price := decimal.RequireFromString("12.5")
	query, args := buildUpdate(9, domain.ProductPatch{Title: strPtr("Mouse"), Price: &price})

	if !strings.HasPrefix(query, "UPDATE products SET title = $1, price = $2 WHERE id = $3 RETURNING ") {
		t.Errorf("unexpected query: %s", query)
	}
	if strings.Contains(query, "description =") || strings.Contains(query, "image =") {
		t.Errorf("query sets unpatched columns: %s", query)
	}
	if len(args) != 3 || args[0] != "Mouse" || args[2] != int64(9) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildUpdateImageOnly(t *testing.T) {
	query, args := buildUpdate(1, domain.ProductPatch{Image: strPtr("http://x/y.png")})

	if !strings.HasPrefix(query, "UPDATE products SET image = $1 WHERE id = $2 ") {
		t.Errorf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestUpdateByIDRejectsEmptyPatch(t *testing.T) {
	repo := NewProductRepository(nil, time.Second)
	if _, err := repo.UpdateByID(context.Background(), 1, domain.ProductPatch{}); err == nil {
		t.Fatal("expected error for empty patch")
	}
}

func TestInsertAssignsIDAndListOrdersByID(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProductRepository(testDB, 5*time.Second)
	ctx := context.Background()

	titles := []string{"Mouse", "Keyboard", "Monitor"}
	var ids []int64
	for _, title := range titles {
		p := &domain.Product{
			Title:       title,
			Price:       decimal.RequireFromString("49.90"),
			Description: "Wireless",
			Image:       "http://x/y.png",
			Category:    "app-add",
		}
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if p.ID == 0 {
			t.Fatal("expected server-assigned id")
		}
		ids = append(ids, p.ID)
	}

	products, err := repo.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	if len(products) != len(titles) {
		t.Fatalf("expected %d products, got %d", len(titles), len(products))
	}
	for i, p := range products {
		if p.ID != ids[i] || p.Title != titles[i] {
			t.Errorf("row %d: got (%d, %s), want (%d, %s)", i, p.ID, p.Title, ids[i], titles[i])
		}
		if i > 0 && products[i-1].ID >= p.ID {
			t.Errorf("rows not ordered by id: %d then %d", products[i-1].ID, p.ID)
		}
		if !p.Price.Equal(decimal.RequireFromString("49.9")) || p.Category != "app-add" {
			t.Errorf("row %d: unexpected price/category %s/%s", i, p.Price, p.Category)
		}
	}
}

// Updating applies only the patched columns; other columns keep their values.
func TestProperty_SparseUpdateKeepsOtherColumns(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProductRepository(testDB, 5*time.Second)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("unpatched columns are unchanged", prop.ForAll(
		func(newTitle string, newImage string) bool {
			original := &domain.Product{
				Title:       "Original",
				Price:       decimal.RequireFromString("10.00"),
				Description: "Original description",
				Image:       "http://orig/img.png",
				Category:    "app-add",
			}
			if err := repo.Insert(ctx, original); err != nil {
				t.Logf("FAIL: insert: %v", err)
				return false
			}

			updated, err := repo.UpdateByID(ctx, original.ID, domain.ProductPatch{
				Title: strPtr(newTitle),
				Image: strPtr(newImage),
			})
			if err != nil || len(updated) != 1 {
				t.Logf("FAIL: update: %v (%d rows)", err, len(updated))
				return false
			}

			got := updated[0]
			return got.ID == original.ID &&
				got.Title == newTitle &&
				got.Image == newImage &&
				got.Description == original.Description &&
				got.Price.Equal(original.Price) &&
				got.Category == original.Category
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{1,40}`),
		gen.RegexMatch(`https?://[a-z0-9.-]+/[a-z0-9/._-]{1,30}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUpdateAndDeleteUnknownIDReturnNoRows(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProductRepository(testDB, 5*time.Second)
	ctx := context.Background()

	updated, err := repo.UpdateByID(ctx, 424242, domain.ProductPatch{Title: strPtr("x")})
	if err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}
	if len(updated) != 0 {
		t.Errorf("expected no updated rows, got %d", len(updated))
	}

	deleted, err := repo.DeleteByID(ctx, 424242)
	if err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("expected no deleted rows, got %d", len(deleted))
	}
}

func TestDeleteByIDRemovesRow(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProductRepository(testDB, 5*time.Second)
	ctx := context.Background()

	p := &domain.Product{Title: "Cable", Price: decimal.NewFromInt(5), Description: "USB", Image: "http://x/c.png", Category: "app-add"}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	deleted, err := repo.DeleteByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0].Title != "Cable" {
		t.Fatalf("unexpected deleted rows: %v", deleted)
	}

	products, err := repo.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty table, got %d rows", len(products))
	}
}

func TestInsertKeepsPriceExactly(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProductRepository(testDB, 5*time.Second)
	ctx := context.Background()

	for _, in := range []string{"49.999", "1e12", "0.0001"} {
		want := decimal.RequireFromString(in)
		p := &domain.Product{Title: in, Price: want, Description: "d", Image: "i", Category: "app-add"}
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatalf("Insert(%s) failed: %v", in, err)
		}
		if !p.Price.Equal(want) {
			t.Errorf("Insert(%s) returned price %s", in, p.Price)
		}
	}

	products, err := repo.ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	for _, p := range products {
		if want := decimal.RequireFromString(p.Title); !p.Price.Equal(want) {
			t.Errorf("stored price %s, want %s", p.Price, want)
		}
	}
}

func TestMissingTableIsClassified(t *testing.T) {
	requireDB(t)

	_, err := testDB.Exec(`SELECT id FROM missing_products`)
	if err == nil {
		t.Fatal("expected an error selecting from a missing table")
	}
	if !errors.Is(classify(err), ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", classify(err))
	}
}
