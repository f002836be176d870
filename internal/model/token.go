package model

import "time"

// Token серверная модель записи о токене.
// Отсутствие строки равносильно Validated=false.
type Token struct {
	Token     string `gorm:"primaryKey"`
	Validated bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
