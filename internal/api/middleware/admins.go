package middleware

import (
	"context"
	"strings"
)

// DirectoryClient внешний справочник ролей пользователей
type DirectoryClient interface {
	IsAdmin(ctx context.Context, login string) (bool, error)
}

// Admins статический список администраторов с необязательным справочником ролей
type Admins struct {
	static    map[string]struct{}
	directory DirectoryClient
}

// NewAdmins создает резолвер. directory может быть nil.
func NewAdmins(logins []string, directory DirectoryClient) *Admins {
	static := make(map[string]struct{}, len(logins))
	for _, l := range logins {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			static[l] = struct{}{}
		}
	}
	return &Admins{static: static, directory: directory}
}

// IsAdmin сначала проверяет статический список, затем справочник
func (a *Admins) IsAdmin(ctx context.Context, login string) (bool, error) {
	if _, ok := a.static[strings.ToLower(strings.TrimSpace(login))]; ok {
		return true, nil
	}
	if a.directory == nil {
		return false, nil
	}
	return a.directory.IsAdmin(ctx, login)
}
