package patients

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned when a session token fails verification
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the session token payload.
type Claims struct {
	PatientID string `json:"patient_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator hashes passwords and issues session tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator creates an authenticator. ttl defaults to seven days.
func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// HashPassword returns the bcrypt hash of password.
func (a *Authenticator) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("patients: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func (a *Authenticator) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a session token for p.
func (a *Authenticator) IssueToken(p Patient) (string, error) {
	now := a.now()
	claims := Claims{
		PatientID: p.ID,
		Email:     p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("patients: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token.
func (a *Authenticator) VerifyToken(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
