package domain

import "github.com/google/uuid"

// Provider мастер, принимающий записи
type Provider struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DisplayName string
}

// IsOwnedBy проверяет, что мастер принадлежит пользователю
func (p *Provider) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
