package session

import (
	"context"
	"strings"

	"firstresponse/models"
)

// DefaultLanguage is used until the user picks one in settings.
const DefaultLanguage = "en"

// Reader is the read side of a client session handed to dashboard pages.
type Reader interface {
	Load(ctx context.Context) (models.Session, error)
	AuthToken(ctx context.Context) (string, bool, error)
	Username(ctx context.Context) (string, error)
	Language(ctx context.Context) (string, error)
}

// Writer mutates a client session. Only the auth flow, sign-out and the
// settings page hold one.
type Writer interface {
	BeginOTP(ctx context.Context, preliminaryToken string) error
	Establish(ctx context.Context, authToken, username string) error
	SignOut(ctx context.Context) error
	SetLanguage(ctx context.Context, lang string) error
}

// Context is the session of one client backed by its Store.
type Context struct {
	store Store
}

func New(store Store) *Context {
	return &Context{store: store}
}

func (c *Context) get(ctx context.Context, key string) (string, error) {
	v, _, err := c.store.Get(ctx, key)
	return strings.TrimSpace(v), err
}

func (c *Context) Load(ctx context.Context) (models.Session, error) {
	var s models.Session
	var err error
	if s.PreliminaryToken, err = c.get(ctx, models.KeyPreliminaryToken); err != nil {
		return models.Session{}, err
	}
	if s.AuthToken, err = c.get(ctx, models.KeyAuthToken); err != nil {
		return models.Session{}, err
	}
	if s.Username, err = c.get(ctx, models.KeyUsername); err != nil {
		return models.Session{}, err
	}
	if s.Language, err = c.Language(ctx); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// AuthToken reports the stored bearer token. A blank value counts as absent.
func (c *Context) AuthToken(ctx context.Context) (string, bool, error) {
	tok, err := c.get(ctx, models.KeyAuthToken)
	if err != nil {
		return "", false, err
	}
	return tok, tok != "", nil
}

func (c *Context) Username(ctx context.Context) (string, error) {
	return c.get(ctx, models.KeyUsername)
}

func (c *Context) Language(ctx context.Context) (string, error) {
	lang, err := c.get(ctx, models.KeyLanguage)
	if err != nil {
		return "", err
	}
	if lang == "" {
		return DefaultLanguage, nil
	}
	return lang, nil
}

// BeginOTP records the preliminary token and drops any earlier auth token so
// only one token is current.
func (c *Context) BeginOTP(ctx context.Context, preliminaryToken string) error {
	if err := c.store.Delete(ctx, models.KeyAuthToken, models.KeyUsername); err != nil {
		return err
	}
	return c.store.Set(ctx, models.KeyPreliminaryToken, preliminaryToken)
}

// Establish replaces the preliminary token with the auth token.
func (c *Context) Establish(ctx context.Context, authToken, username string) error {
	if err := c.store.Delete(ctx, models.KeyPreliminaryToken); err != nil {
		return err
	}
	if err := c.store.Set(ctx, models.KeyAuthToken, authToken); err != nil {
		return err
	}
	return c.store.Set(ctx, models.KeyUsername, username)
}

func (c *Context) SignOut(ctx context.Context) error {
	return c.store.Delete(ctx, models.KeyAuthToken, models.KeyUsername)
}

func (c *Context) SetLanguage(ctx context.Context, lang string) error {
	return c.store.Set(ctx, models.KeyLanguage, lang)
}

// PreliminaryToken is read by the auth flow only.
func (c *Context) PreliminaryToken(ctx context.Context) (string, error) {
	return c.get(ctx, models.KeyPreliminaryToken)
}

// State derives the flow position from the stored tokens.
func (c *Context) State(ctx context.Context) (models.AuthState, error) {
	s, err := c.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.State(), nil
}
