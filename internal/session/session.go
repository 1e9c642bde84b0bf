package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sixlab/storefront/internal/config"
)

var ErrNoSession = errors.New("no session")

// Manager stores the authenticated Discord user id in a signed httpOnly
// cookie. The cookie is the whole session: set on OAuth callback, read
// by protected handlers, cleared on logout.
type Manager struct {
	secret []byte
	name   string
	ttl    time.Duration
	secure bool
}

func NewManager(cfg config.Session) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		name:   cfg.CookieName,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
	}
}

func (m *Manager) Issue(w http.ResponseWriter, userID string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	})
	return nil
}

// UserID returns the Discord user id from the request cookie.
// Missing, expired and tampered cookies all map to ErrNoSession.
func (m *Manager) UserID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return "", ErrNoSession
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrNoSession
	}
	return claims.Subject, nil
}

func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	})
}
