package authz

import (
	"context"
	"errors"
	"testing"
)

func TestUserFromContext(t *testing.T) {
	if got := UserFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}

	user := &AuthUser{ID: 7, Username: "desk", Role: RoleAdmin}
	ctx := ContextWithUser(context.Background(), user)
	if got := UserFromContext(ctx); got != user {
		t.Fatalf("expected stored user, got %+v", got)
	}

	wrongType := context.WithValue(context.Background(), userContextKey{}, "admin")
	if got := UserFromContext(wrongType); got != nil {
		t.Fatalf("expected nil for mismatched value, got %+v", got)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		user *AuthUser
		want error
	}{
		{name: "anonymous", user: nil, want: ErrUnauthenticated},
		{name: "other role", user: &AuthUser{ID: 1, Role: "PLAYER"}, want: ErrForbidden},
		{name: "admin", user: &AuthUser{ID: 1, Role: RoleAdmin}, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.user != nil {
				ctx = ContextWithUser(ctx, tc.user)
			}
			err := RequireAdmin(ctx)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	var nilUser *AuthUser
	if nilUser.IsAdmin() {
		t.Fatal("nil user must not be admin")
	}
	if !(&AuthUser{Role: RoleAdmin}).IsAdmin() {
		t.Fatal("expected admin")
	}
}
