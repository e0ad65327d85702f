package models

import "time"

// OccurrenceStatusHistory é a trilha de auditoria de status, append-only.
// A linha de criação tem PreviousStatus e ChangedByAdminID nulos (sistema).
type OccurrenceStatusHistory struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OccurrenceID     int64      `gorm:"not null;index" json:"occurrence_id"`
	ChangedByAdminID *int64     `gorm:"index" json:"changed_by_admin_id"`
	PreviousStatus   *string    `json:"previous_status"`
	NewStatus        string     `gorm:"not null" json:"new_status"`
	ChangedAt        *time.Time `json:"changed_at"`
}

// OccurrenceNote é uma anotação interna da equipe de triagem. Nunca aparece
// para o usuário que abriu a ocorrência.
type OccurrenceNote struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OccurrenceID int64      `gorm:"not null;index" json:"occurrence_id"`
	AdminUserID  int64      `gorm:"not null" json:"admin_user_id"`
	NoteText     string     `gorm:"type:text;not null" json:"note_text"`
	CreatedAt    *time.Time `json:"created_at"`
}

// OccurrenceUserMessage é uma mensagem do titular da ocorrência para a
// equipe de triagem. Visível para o titular e para a equipe.
type OccurrenceUserMessage struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OccurrenceID int64      `gorm:"not null;index" json:"occurrence_id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	MessageText  string     `gorm:"type:text;not null" json:"message_text"`
	CreatedAt    *time.Time `json:"created_at"`
}
