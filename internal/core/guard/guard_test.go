package guard

import (
	"testing"

	"github.com/civicflow/civic-portal/internal/core/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		st        State
		req       Requirement
		requested string
		want      Decision
	}{
		{
			name:      "loading defers any route",
			st:        State{Loading: true},
			req:       Authenticated(),
			requested: "/dashboard",
			want:      Decision{Kind: Wait},
		},
		{
			name:      "loading defers even admin routes",
			st:        State{Loading: true},
			req:       AdminOnly(),
			requested: "/admin/users",
			want:      Decision{Kind: Wait},
		},
		{
			name:      "anonymous is sent to login with the origin",
			st:        State{},
			req:       Authenticated(),
			requested: "/dashboard",
			want:      Decision{Kind: Redirect, Target: LoginPath, From: "/dashboard"},
		},
		{
			name:      "anonymous on an admin route still goes to login, not unauthorized",
			st:        State{},
			req:       AdminOnly(),
			requested: "/admin/users",
			want:      Decision{Kind: Redirect, Target: LoginPath, From: "/admin/users"},
		},
		{
			name:      "citizen may enter a plain authenticated route",
			st:        State{Authenticated: true, Role: domain.RoleCitizen},
			req:       Authenticated(),
			requested: "/dashboard",
			want:      Decision{Kind: Render},
		},
		{
			name:      "citizen is barred from admin routes",
			st:        State{Authenticated: true, Role: domain.RoleCitizen},
			req:       AdminOnly(),
			requested: "/admin/users",
			want:      Decision{Kind: Redirect, Target: UnauthorizedPath},
		},
		{
			name:      "ngo is barred from admin routes",
			st:        State{Authenticated: true, Role: domain.RoleNgo},
			req:       AdminOnly(),
			requested: "/admin/users",
			want:      Decision{Kind: Redirect, Target: UnauthorizedPath},
		},
		{
			name:      "admin passes the admin gate",
			st:        State{Authenticated: true, Role: domain.RoleAdmin},
			req:       AdminOnly(),
			requested: "/admin/users",
			want:      Decision{Kind: Render},
		},
		{
			name:      "ngo passes the ngo gate",
			st:        State{Authenticated: true, Role: domain.RoleNgo},
			req:       RoleOnly(domain.RoleNgo),
			requested: "/ngo/dashboard",
			want:      Decision{Kind: Render},
		},
		{
			name:      "citizen is barred from the ngo gate",
			st:        State{Authenticated: true, Role: domain.RoleCitizen},
			req:       RoleOnly(domain.RoleNgo),
			requested: "/ngo/dashboard",
			want:      Decision{Kind: Redirect, Target: UnauthorizedPath},
		},
		{
			name:      "admin does not pass a different role gate",
			st:        State{Authenticated: true, Role: domain.RoleAdmin},
			req:       RoleOnly(domain.RoleNgo),
			requested: "/ngo/dashboard",
			want:      Decision{Kind: Redirect, Target: UnauthorizedPath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.st, tt.req, tt.requested)
			if got != tt.want {
				t.Fatalf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecide_IsStateless(t *testing.T) {
	st := State{Authenticated: true, Role: domain.RoleCitizen}

	first := Decide(st, AdminOnly(), "/admin")
	if first.Kind != Redirect {
		t.Fatalf("expected a redirect, got %+v", first)
	}

	// The same call after a role change gives a different answer. Nothing
	// is remembered between evaluations.
	st.Role = domain.RoleAdmin
	second := Decide(st, AdminOnly(), "/admin")
	if second.Kind != Render {
		t.Fatalf("expected a render after promotion, got %+v", second)
	}
}
