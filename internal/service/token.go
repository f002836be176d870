package service

import (
	"TokenGate/internal/repo"
	"context"
	"errors"
)

// Статусы токена
const (
	StatusValidated = "validated"
	StatusPending   = "pending"
)

// Сообщения ответов
const (
	MsgMarked    = "Token has been validated!"
	MsgValidated = "Token is validated."
	MsgPending   = "Token is not validated yet."
)

// ErrEmptyToken возвращается для пустого токена.
var ErrEmptyToken = errors.New("empty token")

// Result результат операции над токеном.
type Result struct {
	Status  string
	Message string
}

// Validated сообщает, подтверждён ли токен.
func (r Result) Validated() bool {
	return r.Status == StatusValidated
}

// TokenService инкапсулирует переходы pending → validated поверх репозитория.
type TokenService struct {
	repo repo.TokenRepository
}

func NewTokenService(r repo.TokenRepository) *TokenService {
	return &TokenService{repo: r}
}

// Validate помечает токен подтверждённым. Повторный вызов ничего не меняет.
func (s *TokenService) Validate(ctx context.Context, token string) (Result, error) {
	if token == "" {
		return Result{}, ErrEmptyToken
	}
	if err := s.repo.MarkValidated(ctx, token); err != nil {
		return Result{}, err
	}
	return Result{Status: StatusValidated, Message: MsgMarked}, nil
}

// Status читает статус токена без побочных эффектов. Неизвестный токен считается pending.
func (s *TokenService) Status(ctx context.Context, token string) (Result, error) {
	if token == "" {
		return Result{}, ErrEmptyToken
	}
	ok, err := s.repo.IsValidated(ctx, token)
	if err != nil {
		return Result{}, err
	}
	if ok {
		return Result{Status: StatusValidated, Message: MsgValidated}, nil
	}
	return Result{Status: StatusPending, Message: MsgPending}, nil
}
