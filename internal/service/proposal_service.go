package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-builder/internal/templates"
	"github.com/ignatzorin/proposal-builder/internal/validation"
)

// ProposalGateway описывает зависимости ProposalService от слоя хранилища.
type ProposalGateway interface {
	Create(ctx context.Context, p *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	List(ctx context.Context) ([]models.Proposal, error)
	Update(ctx context.Context, p *models.Proposal) error
	UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, section models.Section) (*models.Proposal, error)
	UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, element models.Element) (*models.Proposal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProposalService инкапсулирует бизнес-логику работы с предложениями.
type ProposalService struct {
	repo ProposalGateway
}

// NewProposalService создаёт сервис предложений.
func NewProposalService(repo ProposalGateway) *ProposalService {
	return &ProposalService{repo: repo}
}

// CreateProposalInput содержит данные нового предложения.
// Template — необязательное название шаблона: если разделы не переданы,
// документ наполняется стартовыми разделами шаблона.
type CreateProposalInput struct {
	Title       string
	Description string
	Sections    models.SectionList
	Settings    *models.Settings
	Client      models.ClientInfo
	ExpiryDate  *time.Time
	TotalValue  *float64
	Template    string
	CreatedBy   uuid.UUID
}

// UpdateProposalInput содержит частичное обновление: заполняются только
// переданные поля, остальные сохраняют текущее значение документа.
type UpdateProposalInput struct {
	Title       *string
	Description *string
	Sections    *models.SectionList
	Settings    *models.Settings
	Client      *models.ClientInfo
	Status      *string
	ExpiryDate  *time.Time
	TotalValue  *float64
}

// Create собирает документ, валидирует его и сохраняет.
// Автор берётся из аутентифицированного запроса, а не из тела.
func (s *ProposalService) Create(ctx context.Context, in CreateProposalInput) (*models.Proposal, error) {
	if err := validation.ValidateProposalTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.CreatedBy == uuid.Nil {
		return nil, apperror.Validation("автор предложения обязателен")
	}
	if in.TotalValue != nil {
		if err := validation.ValidateTotalValue(*in.TotalValue); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	sections := in.Sections
	if len(sections) == 0 && in.Template != "" {
		sections = templates.Materialize(templates.ByName(in.Template))
	}
	if err := validateSectionElements(sections); err != nil {
		return nil, err
	}

	proposal := &models.Proposal{
		Title:       in.Title,
		Description: in.Description,
		Sections:    sections,
		Metadata: models.Metadata{
			Client:     in.Client,
			CreatedBy:  in.CreatedBy,
			Status:     models.StatusDraft,
			ExpiryDate: in.ExpiryDate,
			TotalValue: in.TotalValue,
		},
	}
	if in.Settings != nil {
		if err := validateSettings(*in.Settings); err != nil {
			return nil, err
		}
		proposal.Settings = *in.Settings
	}

	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	return proposal, nil
}

// Get возвращает предложение по идентификатору.
func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает все предложения.
func (s *ProposalService) List(ctx context.Context) ([]models.Proposal, error) {
	return s.repo.List(ctx)
}

// Update применяет частичное обновление к существующему документу.
// Источник истины — текущее состояние в базе: незаполненные поля
// ввода не трогаются, createdBy изменить нельзя.
func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, in UpdateProposalInput) (*models.Proposal, error) {
	proposal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateProposalTitle(*in.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		proposal.Title = *in.Title
	}
	if in.Description != nil {
		if err := validation.ValidateDescription(*in.Description); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		proposal.Description = *in.Description
	}
	if in.Sections != nil {
		if err := validateSectionElements(*in.Sections); err != nil {
			return nil, err
		}
		proposal.Sections = *in.Sections
	}
	if in.Settings != nil {
		if err := validateSettings(*in.Settings); err != nil {
			return nil, err
		}
		proposal.Settings = *in.Settings
	}
	if in.Client != nil {
		proposal.Metadata.Client = *in.Client
	}
	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			return nil, apperror.Validation("недопустимый статус %q", *in.Status)
		}
		proposal.Metadata.Status = *in.Status
	}
	if in.ExpiryDate != nil {
		proposal.Metadata.ExpiryDate = in.ExpiryDate
	}
	if in.TotalValue != nil {
		if err := validation.ValidateTotalValue(*in.TotalValue); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		proposal.Metadata.TotalValue = in.TotalValue
	}

	if err := s.repo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	return proposal, nil
}

// UpdateSection заменяет раздел документа целиком.
func (s *ProposalService) UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, section models.Section) (*models.Proposal, error) {
	for _, el := range section.Elements {
		if err := validateElement(el); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateSection(ctx, proposalID, sectionID, section)
}

// UpdateElement заменяет один блок документа.
func (s *ProposalService) UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, element models.Element) (*models.Proposal, error) {
	if err := validateElement(element); err != nil {
		return nil, err
	}
	return s.repo.UpdateElement(ctx, proposalID, sectionID, elementID, element)
}

// Delete удаляет предложение. Повторное удаление не считается ошибкой.
func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// validateElement проверяет тип блока и размер его содержимого.
// Ограничение действует на всех путях записи блоков: создание документа,
// частичное обновление, замена раздела и замена отдельного блока.
func validateElement(el models.Element) error {
	if !models.ValidElementType(el.Type) {
		return apperror.Validation("недопустимый тип блока %q", el.Type)
	}
	if len(el.Content) > validation.MaxElementContentBytes {
		return apperror.Validation("содержимое блока превышает %d байт", validation.MaxElementContentBytes)
	}
	return nil
}

// validateSectionElements прогоняет validateElement по всем блокам разделов.
func validateSectionElements(sections models.SectionList) error {
	for _, section := range sections {
		for _, el := range section.Elements {
			if err := validateElement(el); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateSettings проверяет цветовую схему оформления.
func validateSettings(settings models.Settings) error {
	checks := []struct {
		name  string
		value string
	}{
		{"основной цвет", settings.Colors.Primary},
		{"дополнительный цвет", settings.Colors.Secondary},
		{"акцентный цвет", settings.Colors.Accent},
	}
	for _, check := range checks {
		if err := validation.ValidateHexColor(check.name, check.value); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	return nil
}
