// Package auth resolves the calling band member from a bearer token issued by
// the external identity provider, or from headers set by a trusted gateway.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID    string
	Email string
	Name  string
}

// DisplayName is the metadata name, else the local part of the email,
// else "Unknown".
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown"
}

type Claims struct {
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type userMetadata struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type ctxUserKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxUserKey{}).(User)
	return u, ok && u.ID != ""
}

type Options struct {
	Secret []byte
	// TrustHeaders accepts X-User-Id / X-User-Email / X-User-Name when no
	// bearer token is present.
	TrustHeaders bool
}

// Middleware attaches the caller to the request context. Requests without
// credentials pass through anonymously; a malformed or invalid token is
// rejected with 401.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if opts.TrustHeaders {
					if id := strings.TrimSpace(r.Header.Get("X-User-Id")); id != "" {
						r = r.WithContext(WithUser(r.Context(), User{
							ID:    id,
							Email: r.Header.Get("X-User-Email"),
							Name:  r.Header.Get("X-User-Name"),
						}))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}
			if len(opts.Secret) == 0 {
				writeError(w, http.StatusUnauthorized, "token verification is not configured")
				return
			}

			user, err := ParseToken(opts.Secret, parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// ParseToken verifies an HS256 token and returns the user it names.
func ParseToken(secret []byte, raw string) (User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return User{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return User{}, jwt.ErrTokenInvalidClaims
	}

	name := claims.UserMetadata.Name
	if name == "" {
		name = claims.UserMetadata.FullName
	}
	return User{ID: claims.Subject, Email: claims.Email, Name: name}, nil
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
