package models

import "time"

// User representa quem abre ocorrências (na interface, o "cliente" da loja).
type User struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username     string     `gorm:"not null;unique_index" json:"username" form:"username"`
	Email        string     `gorm:"not null;unique_index" json:"email" form:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// AdminUser representa a equipe de triagem. Domínio de identidade separado do
// User de propósito: uma credencial nunca vale no outro domínio.
type AdminUser struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username     string     `gorm:"not null;unique_index" json:"username" form:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
