// Package occurrences concentra o núcleo do sistema: a tradução do carrinho
// em ocorrência e o gerenciador de ciclo de vida (status, auditoria, notas e
// mensagens), com o controle de acesso por Principal.
package occurrences

import (
	"strings"
	"time"

	"alomana/models"

	"github.com/jinzhu/gorm"
)

// MaxMessageLength limita a mensagem do usuário para a triagem.
const MaxMessageLength = 2000

// CanTransition decide se a mudança from -> to é permitida. Hoje qualquer
// status válido alcança qualquer outro, inclusive reabrir Concluído; o grafo
// fica isolado aqui para poder apertar sem mexer no resto do serviço.
func CanTransition(from, to string) bool {
	_ = from
	return models.IsValidStatus(to)
}

// Detail é a visão completa de uma ocorrência. Notes só vem preenchido para
// a equipe de triagem.
type Detail struct {
	Occurrence models.Occurrence                `json:"occurrence"`
	Items      []models.OccurrenceItem          `json:"items"`
	History    []models.OccurrenceStatusHistory `json:"history"`
	Messages   []models.OccurrenceUserMessage   `json:"messages"`
	Notes      []models.OccurrenceNote          `json:"notes,omitempty"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create persiste a ocorrência junto com a linha de auditoria de criação
// (previous nulo, ator nulo) em uma transação só: ou grava as duas ou nenhuma.
func (s *Service) Create(occurrence *models.Occurrence) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(occurrence).Error; err != nil {
		tx.Rollback()
		return err
	}

	now := time.Now()
	history := models.OccurrenceStatusHistory{
		OccurrenceID: occurrence.ID,
		NewStatus:    occurrence.Status,
		ChangedAt:    &now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ListForStaff lista todas as ocorrências, mais recentes primeiro. Termo de
// busca só com dígitos vira filtro exato por id; qualquer outra coisa vira
// busca por substring (case-insensitive) em categoria, contatos, observação
// e usuário dono.
func (s *Service) ListForStaff(p models.Principal, statusFilter, searchTerm string) ([]models.Occurrence, error) {
	if !p.IsStaff() {
		return nil, ErrForbidden
	}

	query := s.db.Model(&models.Occurrence{}).
		Select("occurrences.*").
		Joins("LEFT JOIN users ON users.id = occurrences.user_id")

	if models.IsValidStatus(statusFilter) {
		query = query.Where("occurrences.status = ?", statusFilter)
	}

	searchTerm = strings.TrimSpace(searchTerm)
	if searchTerm != "" {
		if isAllDigits(searchTerm) {
			query = query.Where("occurrences.id = ?", searchTerm)
		} else {
			like := "%" + strings.ToLower(searchTerm) + "%"
			query = query.Where(
				"LOWER(occurrences.mapped_category) LIKE ? OR LOWER(occurrences.contact_phone) LIKE ? OR LOWER(occurrences.contact_email) LIKE ? OR LOWER(occurrences.observation) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ?",
				like, like, like, like, like, like,
			)
		}
	}

	var occurrences []models.Occurrence
	err := query.Order("occurrences.created_at desc").Order("occurrences.id desc").Find(&occurrences).Error
	if err != nil {
		return nil, err
	}
	return occurrences, nil
}

// ListForReporter lista só as ocorrências do próprio usuário, mais recentes
// primeiro.
func (s *Service) ListForReporter(p models.Principal) ([]models.Occurrence, error) {
	if !p.IsReporter() {
		return nil, ErrForbidden
	}

	var occurrences []models.Occurrence
	err := s.db.Where("user_id = ?", p.ID).
		Order("created_at desc").Order("id desc").
		Find(&occurrences).Error
	if err != nil {
		return nil, err
	}
	return occurrences, nil
}

// GetDetail carrega a ocorrência com histórico e mensagens. Equipe enxerga
// qualquer uma (e também as notas internas); usuário só enxerga a própria —
// tentativa de acesso cruzado recebe o mesmo ErrNotFound de um id
// inexistente.
func (s *Service) GetDetail(p models.Principal, id int64) (*Detail, error) {
	occurrence, err := s.find(id)
	if err != nil {
		return nil, err
	}

	switch {
	case p.IsStaff():
		// equipe enxerga tudo
	case p.IsReporter():
		if occurrence.UserID == nil || *occurrence.UserID != p.ID {
			return nil, ErrNotFound
		}
	default:
		return nil, ErrForbidden
	}

	detail := Detail{
		Occurrence: *occurrence,
		Items:      occurrence.Items(),
	}

	if err := s.db.Where("occurrence_id = ?", id).
		Order("changed_at desc").Order("id desc").
		Find(&detail.History).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("occurrence_id = ?", id).
		Order("created_at desc").Order("id desc").
		Find(&detail.Messages).Error; err != nil {
		return nil, err
	}

	if p.IsStaff() {
		if err := s.db.Where("occurrence_id = ?", id).
			Order("created_at desc").Order("id desc").
			Find(&detail.Notes).Error; err != nil {
			return nil, err
		}
	}

	return &detail, nil
}

// TransitionStatus muda o status e grava a linha de auditoria na mesma
// transação. Status igual ao atual é um não-evento: devolve changed=false e
// não escreve nada.
func (s *Service) TransitionStatus(p models.Principal, id int64, newStatus string) (bool, error) {
	if !p.IsStaff() {
		return false, ErrForbidden
	}
	if !models.IsValidStatus(newStatus) {
		return false, ValidationError{Reason: "status inválido"}
	}

	occurrence, err := s.find(id)
	if err != nil {
		return false, err
	}

	if occurrence.Status == newStatus {
		return false, nil
	}
	if !CanTransition(occurrence.Status, newStatus) {
		return false, ValidationError{Reason: "transição de status não permitida"}
	}

	previous := occurrence.Status
	actor := p.ID

	tx := s.db.Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	occurrence.Status = newStatus
	if err := tx.Save(occurrence).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	now := time.Now()
	history := models.OccurrenceStatusHistory{
		OccurrenceID:     occurrence.ID,
		ChangedByAdminID: &actor,
		PreviousStatus:   &previous,
		NewStatus:        newStatus,
		ChangedAt:        &now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	return true, nil
}

// AddStaffNote registra uma nota interna da triagem.
func (s *Service) AddStaffNote(p models.Principal, id int64, text string) (*models.OccurrenceNote, error) {
	if !p.IsStaff() {
		return nil, ErrForbidden
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Reason: "a nota não pode ser vazia"}
	}

	occurrence, err := s.find(id)
	if err != nil {
		return nil, err
	}

	note := models.OccurrenceNote{
		OccurrenceID: occurrence.ID,
		AdminUserID:  p.ID,
		NoteText:     text,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// AddReporterMessage registra uma mensagem do titular para a triagem. Só o
// dono da ocorrência pode mandar; acesso cruzado vira ErrNotFound.
func (s *Service) AddReporterMessage(p models.Principal, id int64, text string) (*models.OccurrenceUserMessage, error) {
	if !p.IsReporter() {
		return nil, ErrForbidden
	}

	occurrence, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if occurrence.UserID == nil || *occurrence.UserID != p.ID {
		return nil, ErrNotFound
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationError{Reason: "a mensagem não pode ser vazia"}
	}
	if len([]rune(text)) > MaxMessageLength {
		return nil, ValidationError{Reason: "a mensagem deve ter no máximo 2000 caracteres"}
	}

	message := models.OccurrenceUserMessage{
		OccurrenceID: occurrence.ID,
		UserID:       p.ID,
		MessageText:  text,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Service) find(id int64) (*models.Occurrence, error) {
	var occurrence models.Occurrence
	err := s.db.First(&occurrence, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &occurrence, nil
}
