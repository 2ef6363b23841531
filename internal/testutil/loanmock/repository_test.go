package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "p2p-lending-ledger/internal/domain/loan"
)

func TestApplicationRepo_Create(t *testing.T) {
	ctx := context.Background()
	a := &domain.Application{ApplicationID: "APP-1"}

	called := false
	wantErr := errors.New("boom")
	m := &ApplicationRepo{
		CreateFn: func(gotCtx context.Context, got *domain.Application) error {
			called = true
			if gotCtx != ctx || got != a {
				t.Fatalf("Create args mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, a); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &ApplicationRepo{}
	if err := m.Create(ctx, a); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := m.Save(ctx, a); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func TestApplicationRepo_ReadDefaults(t *testing.T) {
	ctx := context.Background()
	m := &ApplicationRepo{}
	if _, err := m.GetByApplicationID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByApplicationID default: got %v", err)
	}
	if _, err := m.GetByApplicationIDForUpdate(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByApplicationIDForUpdate default: got %v", err)
	}
	if _, err := m.GetPendingByBorrowerID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetPendingByBorrowerID default: got %v", err)
	}
}

func TestApplicationRepo_GetPendingByBorrowerID(t *testing.T) {
	want := &domain.Application{ApplicationID: "APP-2", BorrowerID: "B1"}
	m := &ApplicationRepo{
		GetPendingByBorrowerIDFn: func(_ context.Context, borrowerID string) (*domain.Application, error) {
			if borrowerID != "B1" {
				t.Fatalf("borrowerID mismatch: %s", borrowerID)
			}
			return want, nil
		},
	}
	got, err := m.GetPendingByBorrowerID(context.Background(), "B1")
	if err != nil || got != want {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestProductRepo(t *testing.T) {
	ctx := context.Background()
	p := &domain.Product{ID: 3, ProductID: "PRD-3"}
	m := &ProductRepo{
		GetByProductIDFn: func(context.Context, string) (*domain.Product, error) { return p, nil },
		GetByIDFn:        func(context.Context, uint64) (*domain.Product, error) { return p, nil },
	}
	if got, _ := m.GetByProductID(ctx, "PRD-3"); got != p {
		t.Fatalf("GetByProductID mismatch")
	}
	if got, _ := m.GetByID(ctx, 3); got != p {
		t.Fatalf("GetByID mismatch")
	}
	if _, err := (&ProductRepo{}).GetByID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByID default: got %v", err)
	}
}
