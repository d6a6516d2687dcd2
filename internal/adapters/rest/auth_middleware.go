package rest

import (
	"net/http"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type AuthMiddleware struct {
	tokenSvc port.TokenServicePort
}

func NewAuthMiddleware(tokenSvc port.TokenServicePort) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate - middleware для проверки JWT
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Извлекаем токен из заголовка Authorization
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := am.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		// Добавляем информацию о пользователе в контекст запроса
		ctx := contextkeys.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin - middleware для проверки привилегированной роли.
// Вешается после Authenticate.
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := contextkeys.ClaimsFromContext(r.Context())
		if claims == nil {
			WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if claims.Role != domain.RoleAdmin {
			WriteJSONError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
