package directory

import "strings"

// Roles роли сотрудника из каталога
type Roles struct {
	Login string   `json:"login"`
	Roles []string `json:"roles"`
}

// Has проверяет наличие роли без учёта регистра
func (r *Roles) Has(role string) bool {
	for _, candidate := range r.Roles {
		if strings.EqualFold(candidate, role) {
			return true
		}
	}
	return false
}
