package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

// Cookies stores a JWT split in two: header and payload in a script-readable
// "auth" cookie, the signature in an HttpOnly "sign" cookie.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(j *JWT) (*Cookies, error) {
	domain, ok := os.LookupEnv("COOKIES_DOMAIN")
	if !ok {
		return nil, fmt.Errorf("COOKIES_DOMAIN env variable is not set")
	}

	secureStr, ok := os.LookupEnv("COOKIES_SECURE")
	if !ok {
		return nil, fmt.Errorf("COOKIES_SECURE env variable is not set")
	}

	sameSiteStr, ok := os.LookupEnv("COOKIES_SAMESITE")
	if !ok {
		return nil, fmt.Errorf("COOKIES_SAMESITE env variable is not set")
	}

	return &Cookies{
		Domain:   domain,
		Secure:   secureStr != "0",
		SameSite: ParseSameSite(sameSiteStr),
		jwt:      j,
	}, nil
}

func NewCookiesWith(domain string, secure bool, sameSite http.SameSite, j *JWT) *Cookies {
	return &Cookies{Domain: domain, Secure: secure, SameSite: sameSite, jwt: j}
}

// ParseSameSite defaults to strict for unknown values.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func (c *Cookies) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{authCookie, signCookie} {
		cookie := c.cookie(name, "delete", name == signCookie)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// Refresh signs claims and sets both cookies.
func (c *Cookies) Refresh(w http.ResponseWriter, claims *PlayerClaims) error {
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return fmt.Errorf("unable to sign claims: %w", err)
	}

	header, payload, signature, ok := splitToken(token)
	if !ok {
		return fmt.Errorf("malformed JWT token generated")
	}

	expires := time.Now().Add(c.jwt.Lifetime)
	auth := c.cookie(authCookie, header+"."+payload, false)
	auth.Expires = expires
	sign := c.cookie(signCookie, signature, true)
	sign.Expires = expires

	http.SetCookie(w, auth)
	http.SetCookie(w, sign)
	return nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.jwt.Parse(auth.Value + "." + sign.Value)
}

func splitToken(token string) (header, payload, signature string, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
