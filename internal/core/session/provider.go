package session

import (
	"context"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// Provider is the façade the rest of the portal depends on for identity and
// authorization questions. All role flags are derived from the identity on
// every read — never stored — so they can never diverge from Identity.Role.
type Provider struct {
	store *Store
}

// NewProvider wraps a Store. Passing nil is a wiring mistake and panics
// immediately rather than handing out a façade that silently answers
// "anonymous" to every question.
func NewProvider(store *Store) *Provider {
	if store == nil {
		panic("session: NewProvider called with nil store")
	}
	return &Provider{store: store}
}

// Identity returns a copy of the current identity, or nil for an anonymous
// session.
func (p *Provider) Identity() *domain.Identity {
	id, _ := p.store.snapshot()
	return id
}

// Loading reports whether the initial bootstrap is still outstanding.
func (p *Provider) Loading() bool {
	_, loading := p.store.snapshot()
	return loading
}

// IsAuthenticated reports whether an identity is present.
func (p *Provider) IsAuthenticated() bool {
	return p.Identity() != nil
}

// IsAdmin reports whether the current identity holds the ADMIN role.
func (p *Provider) IsAdmin() bool {
	id := p.Identity()
	return id != nil && id.Role == domain.RoleAdmin
}

// IsNgo reports whether the current identity holds the NGO role.
func (p *Provider) IsNgo() bool {
	id := p.Identity()
	return id != nil && id.Role == domain.RoleNgo
}

// Token returns the bearer credential of the current identity, or "" for an
// anonymous session. Handlers use it to call the backend on the visitor's
// behalf; they never touch the token store directly.
func (p *Provider) Token() string {
	id := p.Identity()
	if id == nil {
		return ""
	}
	return id.Token
}

// The four session operations pass through to the store unchanged.

func (p *Provider) Bootstrap(ctx context.Context) { p.store.Bootstrap(ctx) }

func (p *Provider) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	return p.store.Login(ctx, creds)
}

func (p *Provider) Register(ctx context.Context, reg ports.Registration) error {
	return p.store.Register(ctx, reg)
}

func (p *Provider) Logout() { p.store.Logout() }

func (p *Provider) UpdateIdentity(patch domain.IdentityPatch) { p.store.UpdateIdentity(patch) }
