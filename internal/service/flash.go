package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/msomdec/moviweb/internal/domain"
)

// FlashTTL bounds how long a notice survives between redirect and render.
const FlashTTL = 5 * time.Minute

var errInvalidFlash = errors.New("invalid flash token")

// FlashService signs and verifies notices carried across a redirect in a cookie.
type FlashService struct {
	key []byte
}

type flashClaims struct {
	Kind    domain.NoticeKind `json:"kind"`
	Message string            `json:"msg"`
	jwt.RegisteredClaims
}

// NewFlashService derives a dedicated HMAC key from the application secret
// so the raw secret never signs anything directly.
func NewFlashService(secret string) (*FlashService, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("moviweb flash v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive flash key: %w", err)
	}
	return &FlashService{key: key}, nil
}

// Encode returns a signed token for the notice.
func (s *FlashService) Encode(n domain.Notice) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Kind:    n.Kind,
		Message: n.Message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(FlashTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Decode verifies a token produced by Encode and returns its notice.
func (s *FlashService) Decode(tokenString string) (domain.Notice, error) {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return domain.Notice{}, errInvalidFlash
	}

	switch claims.Kind {
	case domain.NoticeSuccess, domain.NoticeError:
	default:
		return domain.Notice{}, errInvalidFlash
	}
	return domain.Notice{Kind: claims.Kind, Message: claims.Message}, nil
}
