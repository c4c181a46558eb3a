package config

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenLifetime = 30 * 24 * time.Hour

type PlayerClaims struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewPlayerClaims(playerID int64, username string) *PlayerClaims {
	return &PlayerClaims{
		PlayerID: playerID,
		Username: username,
	}
}

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	Lifetime      time.Duration
}

func NewJWT() (*JWT, error) {
	privatePEM, err := secret("JWT_PRIVATE_KEY")
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}

	publicPEM, err := secret("JWT_PUBLIC_KEY")
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	return NewJWTWithKeys(privateKey, publicKey), nil
}

func NewJWTWithKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *JWT {
	return &JWT{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
		Lifetime:      defaultTokenLifetime,
	}
}

// Sign issues a token for claims valid for the configured lifetime.
func (j *JWT) Sign(claims *PlayerClaims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.Lifetime))
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) Parse(token string) (*PlayerClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&PlayerClaims{},
		func(t *jwt.Token) (any, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
