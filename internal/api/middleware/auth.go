package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	adminContextKey contextKey = "admin"
)

const (
	// DefaultUserHeader заголовок с логином, выставляемый gateway
	DefaultUserHeader = "X-User"

	msgMissingUser = "пользователь не аутентифицирован"
)

// AdminResolver определяет роль администратора на стороне сервера
type AdminResolver interface {
	IsAdmin(ctx context.Context, login string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает пользователя из заголовка и определяет, администратор ли он.
// Флаги администратора от клиента не принимаются.
func Auth(header string, resolver AdminResolver, logger Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultUserHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.Header.Get(header))
			if user == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, header)
				handlers.RespondUnauthorized(w, msgMissingUser)
				return
			}

			isAdmin := false
			if resolver != nil {
				var err error
				isAdmin, err = resolver.IsAdmin(r.Context(), user)
				if err != nil {
					// без подтверждения роли пользователь обычный
					logger.Error("%s %s - failed to resolve role of %s: %v", r.Method, r.URL.Path, user, err)
					isAdmin = false
				}
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, adminContextKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает логин аутентифицированного пользователя
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userContextKey).(string)
	return user, ok && user != ""
}

// IsAdminFromContext true, если роль администратора подтверждена сервером
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(adminContextKey).(bool)
	return isAdmin
}

// WithUser кладёт пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, user string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, adminContextKey, isAdmin)
}
