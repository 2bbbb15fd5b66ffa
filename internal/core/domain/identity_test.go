package domain

import "testing"

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleCitizen, RoleNgo, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("%q must be valid", r)
		}
	}
	for _, r := range []Role{"", "USER", "citizen"} {
		if r.Valid() {
			t.Fatalf("%q must be invalid", r)
		}
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{"full name", Identity{Username: "al", FirstName: "Alice", LastName: "Lidell"}, "Alice Lidell"},
		{"first only", Identity{Username: "al", FirstName: "Alice"}, "Alice"},
		{"falls back to username", Identity{Username: "al"}, "al"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.DisplayName(); got != tt.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityPatch_Apply(t *testing.T) {
	id := Identity{Username: "al", Email: "old@example.com", FirstName: "Alice", Role: RoleCitizen}

	email := "new@example.com"
	role := RoleAdmin
	IdentityPatch{Email: &email, Role: &role}.Apply(&id)

	if id.Email != "new@example.com" || id.Role != RoleAdmin {
		t.Fatalf("patch not applied: %+v", id)
	}
	if id.FirstName != "Alice" || id.Username != "al" {
		t.Fatalf("nil fields must leave values untouched: %+v", id)
	}
}
