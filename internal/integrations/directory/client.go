package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RoleAdmin роль, дающая право отменять любые бронирования
const RoleAdmin = "admin"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога сотрудников
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRoles получает роли сотрудника по логину
func (c *Client) GetRoles(ctx context.Context, login string) (*Roles, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s/roles", c.baseURL, url.PathEscape(login))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var roles Roles
	if err := json.NewDecoder(resp.Body).Decode(&roles); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &roles, nil
}

// IsAdmin сообщает, есть ли у сотрудника роль администратора.
// Неизвестный сотрудник не является администратором, остальные ошибки пробрасываются.
func (c *Client) IsAdmin(ctx context.Context, login string) (bool, error) {
	roles, err := c.GetRoles(ctx, login)
	if err != nil {
		if err == ErrUserNotFound {
			c.log.Info("Directory: user %q not found, treating as non-admin", login)
			return false, nil
		}
		c.log.Error("Directory: failed to resolve roles for %q: %v", login, err)
		return false, err
	}

	return roles.Has(RoleAdmin), nil
}
