package repo

import (
	"TokenGate/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository минимальный контракт хранилища статусов токенов.
type TokenRepository interface {
	// MarkValidated создаёт или перезаписывает запись токена с validated=true.
	MarkValidated(ctx context.Context, token string) error
	// IsValidated возвращает false для неизвестных токенов; отсутствие записи ошибкой не считается.
	IsValidated(ctx context.Context, token string) (bool, error)
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepository создаёт реализацию репозитория поверх gorm.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

// MarkValidated делает upsert записи токена.
func (r *tokenRepo) MarkValidated(ctx context.Context, token string) error {
	t := &model.Token{Token: token, Validated: true}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"validated", "updated_at"}),
	}).Create(t)
	if tx.Error != nil {
		return fmt.Errorf("upsert token: %w", tx.Error)
	}
	return nil
}

func (r *tokenRepo) IsValidated(ctx context.Context, token string) (bool, error) {
	var t model.Token
	err := r.db.WithContext(ctx).Where("token = ?", token).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get token: %w", err)
	}
	return t.Validated, nil
}
