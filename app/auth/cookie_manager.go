package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieManager is the stateless session backend: the identity is embedded
// in an HMAC-SHA256 signed token, so Resolve is a pure function of the
// cookie bytes and the server secret and never touches the data store.
type CookieManager struct {
	secret []byte
	ttl    time.Duration
}

// NewCookieManager builds the stateless backend. The secret must be
// non-empty; startup validation enforces the stronger requirements.
func NewCookieManager(secret []byte, ttl time.Duration) (*CookieManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty session secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieManager{secret: secret, ttl: ttl}, nil
}

func (m *CookieManager) Begin(w http.ResponseWriter, r *http.Request, identity Identity) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":      identity.UserID,
		"username": identity.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}
	setSessionCookie(w, token, m.ttl)
	return nil
}

func (m *CookieManager) Resolve(r *http.Request) State {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Anonymous
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Anonymous
	}

	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return Anonymous
	}
	username, _ := claims["username"].(string)

	return State{Identity: Identity{UserID: int64(uid), Username: username}}
}

// End clears the cookie. The token itself stays valid until expiry; that is
// the documented trade-off of the stateless backend.
func (m *CookieManager) End(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
}
