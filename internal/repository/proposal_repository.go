package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/pkg/apperror"
)

// Ошибки уровня хранилища предложений.
var (
	ErrProposalNotFound = apperror.ErrProposalNotFound
	ErrSectionNotFound  = apperror.ErrSectionNotFound
	ErrElementNotFound  = apperror.ErrElementNotFound
)

// ProposalRepository хранит документы предложений в PostgreSQL.
// Каждое предложение — одна строка, вложенные разделы и блоки лежат в JSONB.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт экземпляр репозитория.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, title, description, sections, settings, metadata, created_at, updated_at`

// Create сохраняет новое предложение. Идентификатор и метки времени
// назначает база данных, документ предварительно валидируется.
func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	query := `
		INSERT INTO proposals (title, description, sections, settings, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		p.Title,
		p.Description,
		p.Sections,
		p.Settings,
		p.Metadata,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("proposal repository: insert %w", err)
	}

	return nil
}

// GetByID возвращает предложение по идентификатору.
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	var p models.Proposal
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposal repository: get by id %w", err)
	}

	return &p, nil
}

// List возвращает все предложения, недавно изменённые первыми.
// Пагинации и фильтрации нет — осознанное ограничение текущей версии.
func (r *ProposalRepository) List(ctx context.Context) ([]models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals ORDER BY updated_at DESC`

	var proposals []models.Proposal
	if err := r.db.SelectContext(ctx, &proposals, query); err != nil {
		return nil, fmt.Errorf("proposal repository: list %w", err)
	}

	return proposals, nil
}

// Update заменяет документ целиком: merge частичных полей в существующий
// документ выполняет сервисный слой, сюда приходит уже готовое состояние.
func (r *ProposalRepository) Update(ctx context.Context, p *models.Proposal) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	query := `
		UPDATE proposals
		SET title = $1,
		    description = $2,
		    sections = $3,
		    settings = $4,
		    metadata = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		p.Title,
		p.Description,
		p.Sections,
		p.Settings,
		p.Metadata,
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProposalNotFound
		}
		return fmt.Errorf("proposal repository: update %w", err)
	}

	return nil
}

// UpdateSection заменяет один раздел документа. Оба идентификатора должны
// совпасть, иначе документ остаётся нетронутым и возвращается NotFound.
func (r *ProposalRepository) UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, section models.Section) (*models.Proposal, error) {
	return r.mutateSections(ctx, proposalID, func(p *models.Proposal) error {
		if !p.Sections.ReplaceSection(sectionID, section) {
			return ErrSectionNotFound
		}
		return nil
	})
}

// UpdateElement заменяет один блок. Совпасть должны все три идентификатора:
// предложение, раздел и блок.
func (r *ProposalRepository) UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, element models.Element) (*models.Proposal, error) {
	return r.mutateSections(ctx, proposalID, func(p *models.Proposal) error {
		if !p.Sections.ReplaceElement(sectionID, elementID, element) {
			return ErrElementNotFound
		}
		return nil
	})
}

// mutateSections выполняет read-modify-write над одним документом под
// блокировкой строки. Это и есть "атомарное обновление документа":
// конкурентные изменения сериализуются на уровне строки, побеждает
// последняя запись.
func (r *ProposalRepository) mutateSections(ctx context.Context, proposalID uuid.UUID, mutate func(*models.Proposal) error) (p *models.Proposal, err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("proposal repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var doc models.Proposal
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &doc, query, proposalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposal repository: lock row %w", err)
	}

	if err = mutate(&doc); err != nil {
		return nil, err
	}

	doc.Normalize()
	if err = doc.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	updateQuery := `
		UPDATE proposals
		SET sections = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`
	if err = tx.QueryRowxContext(ctx, updateQuery, doc.Sections, doc.ID).Scan(&doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("proposal repository: update sections %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("proposal repository: commit %w", err)
	}

	return &doc, nil
}

// Delete удаляет предложение. Отсутствующий идентификатор не считается
// ошибкой: повторное удаление идемпотентно.
func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("proposal repository: delete %w", err)
	}
	return nil
}
