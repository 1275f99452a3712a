package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Cookies carries a session token split in two: the header and payload in a
// script-readable "auth" cookie and the signature in an HttpOnly "sign"
// cookie. Both are scoped to the session's path, so a browser holding tokens
// for several games sends each game only its own.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(jwt *JWT, development bool) (*Cookies, error) {
	domain := os.Getenv("COOKIES_DOMAIN")

	secure := !development
	if secureStr, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		secure = secureStr != "0"
	}

	sameSite := http.SameSiteStrictMode
	if development {
		sameSite = http.SameSiteLaxMode
	}
	if sameSiteStr, ok := os.LookupEnv("COOKIES_SAMESITE"); ok {
		switch strings.ToUpper(sameSiteStr) {
		case "DEFAULT":
			sameSite = http.SameSiteDefaultMode
		case "LAX":
			sameSite = http.SameSiteLaxMode
		case "STRICT":
			sameSite = http.SameSiteStrictMode
		case "NONE":
			sameSite = http.SameSiteNoneMode
		default:
			return nil, fmt.Errorf("unknown COOKIES_SAMESITE value %q", sameSiteStr)
		}
	}

	cookies := &Cookies{
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		jwt:      jwt,
	}

	return cookies, nil
}

func (c *Cookies) Clear(w http.ResponseWriter, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     path,
		Value:    "delete",
		MaxAge:   -1,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     path,
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string, path string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := time.Now().Add(c.jwt.tokenLifetime)
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     path,
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     path,
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

// ParseSessionClaims reads the session token from the Authorization header,
// falling back to the auth and sign cookies.
func (c *Cookies) ParseSessionClaims(r *http.Request) (*SessionClaims, error) {
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return c.jwt.ParseSessionClaims(bearer)
	}
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	return c.jwt.ParseSessionClaims(authCookie.Value + "." + signCookie.Value)
}
