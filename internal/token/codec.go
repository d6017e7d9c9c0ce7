package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/superstudio/showcase-api/pkg/errors"
)

// Kind discriminates the two token families sharing one signing secret.
type Kind string

const (
	KindMagic   Kind = "magic"
	KindSession Kind = "session"
)

// Claims is the signed payload carried by both magic-link and session tokens.
type Claims struct {
	Email        string `json:"email"`
	SubmissionID string `json:"submissionId"`
	TokenKind    Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Codec issues and verifies kind-discriminated HS256 tokens.
type Codec struct {
	secret     []byte
	magicTTL   time.Duration
	sessionTTL time.Duration
}

// NewCodec constructs a codec. A missing secret is a deployment error and is
// rejected here so the process fails at startup instead of minting forgeable
// tokens.
func NewCodec(secret string, magicTTL, sessionTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("token codec: signing secret is required")
	}
	if magicTTL <= 0 {
		magicTTL = 15 * time.Minute
	}
	if sessionTTL <= 0 {
		sessionTTL = 2 * time.Hour
	}
	return &Codec{secret: []byte(secret), magicTTL: magicTTL, sessionTTL: sessionTTL}, nil
}

// Issue signs a token of the given kind scoped to the email and submission.
func (c *Codec) Issue(kind Kind, email, submissionID string) (string, error) {
	issuedAt := time.Now().UTC()
	ttl := c.sessionTTL
	if kind == KindMagic {
		ttl = c.magicTTL
	}

	claims := &Claims{
		Email:        email,
		SubmissionID: submissionID,
		TokenKind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   submissionID,
			ID:        newNonce(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify validates signature and expiry and checks the embedded kind. All
// failure causes collapse into the same error so callers respond with a
// uniform unauthorized message.
func (c *Codec) Verify(tokenString string, expected Kind) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidToken.Code, appErrors.ErrInvalidToken.Status, appErrors.ErrInvalidToken.Message)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	if claims.TokenKind != expected {
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// MagicLinkTTL reports the configured magic-link lifetime.
func (c *Codec) MagicLinkTTL() time.Duration {
	return c.magicTTL
}

// SessionTTL reports the configured session lifetime.
func (c *Codec) SessionTTL() time.Duration {
	return c.sessionTTL
}

func newNonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
