package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
)

func TestUserService_Create(t *testing.T) {
	users := service.NewUserService(newTestDB(t).Users())
	ctx := context.Background()

	user, err := users.Create(ctx, "  Alice  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || all[0].ID != user.ID {
		t.Fatalf("expected the created user exactly once, got %+v", all)
	}
}

func TestUserService_CreateValidation(t *testing.T) {
	users := service.NewUserService(newTestDB(t).Users())

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "name is required"},
		{"whitespace", "   ", "name is required"},
		{"too long", strings.Repeat("x", 101), "name must be 100 characters or fewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Create(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	users := service.NewUserService(newTestDB(t).Users())

	if _, err := users.GetByID(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
