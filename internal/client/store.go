package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/dto"
	"github.com/ignatzorin/proposal-builder/internal/models"
)

// Store хранит клиентское состояние редактора предложений: кэш списка,
// открытый документ, флаг загрузки и последнюю ошибку. Неудачный запрос
// никогда не портит закэшированные данные — меняется только поле ошибки.
type Store struct {
	mu        sync.RWMutex
	api       *API
	proposals []models.Proposal
	current   *models.Proposal
	loading   bool
	lastErr   error
}

// NewStore создаёт хранилище поверх API клиента.
func NewStore(api *API) *Store {
	return &Store{api: api}
}

// NewProposalForm — данные формы создания из интерфейса.
type NewProposalForm struct {
	Title         string
	Description   string
	ClientName    string
	ClientEmail   string
	ClientCompany string
	Template      string
}

// Proposals возвращает копию закэшированного списка.
func (s *Store) Proposals() []models.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Proposal, len(s.proposals))
	copy(out, s.proposals)
	return out
}

// Current возвращает открытый документ либо nil.
func (s *Store) Current() *models.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loading сообщает, выполняется ли сейчас запрос.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err возвращает ошибку последнего запроса либо nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// FetchProposals обновляет кэш списка с сервера.
func (s *Store) FetchProposals(ctx context.Context) error {
	s.begin()

	proposals, err := s.api.ListProposals(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.proposals = proposals
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// FetchProposal загружает документ и делает его текущим.
func (s *Store) FetchProposal(ctx context.Context, id uuid.UUID) error {
	s.begin()

	proposal, err := s.api.GetProposal(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.current = proposal
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// CreateProposal создаёт документ из плоской формы и добавляет его в кэш.
func (s *Store) CreateProposal(ctx context.Context, form NewProposalForm) (*models.Proposal, error) {
	s.begin()

	req := dto.CreateProposalRequest{
		Title:       form.Title,
		Description: form.Description,
		Template:    form.Template,
		Client: models.ClientInfo{
			Name:    form.ClientName,
			Email:   form.ClientEmail,
			Company: form.ClientCompany,
		},
	}

	proposal, err := s.api.CreateProposal(ctx, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.proposals = append([]models.Proposal{*proposal}, s.proposals...)
	s.current = proposal
	s.finishLocked()
	s.mu.Unlock()
	return proposal, nil
}

// UpdateProposal отправляет частичное обновление и синхронизирует кэш.
func (s *Store) UpdateProposal(ctx context.Context, id uuid.UUID, req dto.UpdateProposalRequest) (*models.Proposal, error) {
	s.begin()

	proposal, err := s.api.UpdateProposal(ctx, id, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.replaceCachedLocked(proposal)
	s.finishLocked()
	s.mu.Unlock()
	return proposal, nil
}

// UpdateSection заменяет раздел открытого документа.
func (s *Store) UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, req dto.UpdateSectionRequest) (*models.Proposal, error) {
	s.begin()

	proposal, err := s.api.UpdateSection(ctx, proposalID, sectionID, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.replaceCachedLocked(proposal)
	s.finishLocked()
	s.mu.Unlock()
	return proposal, nil
}

// UpdateElement заменяет блок внутри раздела открытого документа.
func (s *Store) UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, req dto.UpdateElementRequest) (*models.Proposal, error) {
	s.begin()

	proposal, err := s.api.UpdateElement(ctx, proposalID, sectionID, elementID, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.replaceCachedLocked(proposal)
	s.finishLocked()
	s.mu.Unlock()
	return proposal, nil
}

// DeleteProposal удаляет документ на сервере и из кэша.
func (s *Store) DeleteProposal(ctx context.Context, id uuid.UUID) error {
	s.begin()

	if err := s.api.DeleteProposal(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	filtered := s.proposals[:0]
	for _, p := range s.proposals {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.proposals = filtered
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) finishLocked() {
	s.loading = false
	s.lastErr = nil
}

// replaceCachedLocked обновляет документ в списке и текущий документ,
// если их идентификаторы совпадают. Вызывается под мьютексом.
func (s *Store) replaceCachedLocked(proposal *models.Proposal) {
	for i := range s.proposals {
		if s.proposals[i].ID == proposal.ID {
			s.proposals[i] = *proposal
			break
		}
	}
	if s.current != nil && s.current.ID == proposal.ID {
		s.current = proposal
	}
}
