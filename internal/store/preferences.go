package store

import "context"

// Preference keys
const (
	KeyAPIServer   = "apiServer"
	KeyImageServer = "imageServer"
	KeyJWTToken    = "jwtToken"
	KeyUserEmail   = "userEmail"
)

// Preferences gives typed access to the well-known keys of a Store.
// Missing keys read as empty strings.
type Preferences struct {
	store Store
}

// NewPreferences wraps s
func NewPreferences(s Store) *Preferences {
	return &Preferences{store: s}
}

// Store returns the underlying store
func (p *Preferences) Store() Store {
	return p.store
}

func (p *Preferences) get(ctx context.Context, key string) (string, error) {
	v, _, err := p.store.Get(ctx, key)
	return v, err
}

func (p *Preferences) APIServer(ctx context.Context) (string, error) {
	return p.get(ctx, KeyAPIServer)
}

func (p *Preferences) SetAPIServer(ctx context.Context, server string) error {
	return p.store.Set(ctx, KeyAPIServer, server)
}

func (p *Preferences) ImageServer(ctx context.Context) (string, error) {
	return p.get(ctx, KeyImageServer)
}

func (p *Preferences) SetImageServer(ctx context.Context, server string) error {
	return p.store.Set(ctx, KeyImageServer, server)
}

func (p *Preferences) JWTToken(ctx context.Context) (string, error) {
	return p.get(ctx, KeyJWTToken)
}

func (p *Preferences) SetJWTToken(ctx context.Context, token string) error {
	return p.store.Set(ctx, KeyJWTToken, token)
}

func (p *Preferences) RemoveJWTToken(ctx context.Context) error {
	return p.store.Remove(ctx, KeyJWTToken)
}

func (p *Preferences) UserEmail(ctx context.Context) (string, error) {
	return p.get(ctx, KeyUserEmail)
}

func (p *Preferences) SetUserEmail(ctx context.Context, email string) error {
	return p.store.Set(ctx, KeyUserEmail, email)
}

func (p *Preferences) RemoveUserEmail(ctx context.Context) error {
	return p.store.Remove(ctx, KeyUserEmail)
}
