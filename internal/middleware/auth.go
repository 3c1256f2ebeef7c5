package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pdfquiz-gateway/internal/models"
)

type contextKey string

const (
	BearerTokenKey contextKey = "bearer_token"
	UserIDKey      contextKey = "user_id"
)

// Identity lifts the bearer token out of the Authorization header so the proxy
// layer can forward it verbatim. When a secret is configured the token is also
// verified (HS256) and the user_id claim attached to the context; without one
// the gateway stays a pure passthrough and the backend remains the authority.
type Identity struct {
	Secret []byte
}

func NewIdentity(secret string) *Identity {
	return &Identity{Secret: []byte(secret)}
}

func (i *Identity) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// The upload and fetch endpoints treat the token as optional.
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		tokenStr := parts[1]
		ctx := context.WithValue(r.Context(), BearerTokenKey, tokenStr)

		if len(i.Secret) > 0 {
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return i.Secret, nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if idStr, ok := claims["user_id"].(string); ok {
					if userID, err := uuid.Parse(idStr); err == nil {
						ctx = context.WithValue(ctx, UserIDKey, userID)
					}
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the raw token from the request context, or "" when the
// request carried no Authorization header.
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(BearerTokenKey).(string)
	return token
}

// UserID returns the verified user id, or uuid.Nil when verification is off.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}
