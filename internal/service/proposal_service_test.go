package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-builder/internal/repository"
	"github.com/ignatzorin/proposal-builder/internal/validation"
)

// mockProposalGateway реализует ProposalGateway поверх map, повторяя
// семантику хранилища: нормализацию, поиск вложенных разделов и блоков.
type mockProposalGateway struct {
	proposals map[uuid.UUID]*models.Proposal
}

func newMockProposalGateway() *mockProposalGateway {
	return &mockProposalGateway{proposals: make(map[uuid.UUID]*models.Proposal)}
}

func (m *mockProposalGateway) Create(ctx context.Context, p *models.Proposal) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	p.ID = uuid.New()
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalGateway) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	if p, ok := m.proposals[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repository.ErrProposalNotFound
}

func (m *mockProposalGateway) List(ctx context.Context) ([]models.Proposal, error) {
	out := make([]models.Proposal, 0, len(m.proposals))
	for _, p := range m.proposals {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProposalGateway) Update(ctx context.Context, p *models.Proposal) error {
	if _, ok := m.proposals[p.ID]; !ok {
		return repository.ErrProposalNotFound
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalGateway) UpdateSection(ctx context.Context, proposalID, sectionID uuid.UUID, section models.Section) (*models.Proposal, error) {
	p, ok := m.proposals[proposalID]
	if !ok {
		return nil, repository.ErrProposalNotFound
	}
	if !p.Sections.ReplaceSection(sectionID, section) {
		return nil, repository.ErrSectionNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProposalGateway) UpdateElement(ctx context.Context, proposalID, sectionID, elementID uuid.UUID, element models.Element) (*models.Proposal, error) {
	p, ok := m.proposals[proposalID]
	if !ok {
		return nil, repository.ErrProposalNotFound
	}
	if !p.Sections.ReplaceElement(sectionID, elementID, element) {
		return nil, repository.ErrElementNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProposalGateway) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.proposals, id)
	return nil
}

func TestProposalService_Create(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()
	creator := uuid.New()

	proposal, err := service.Create(ctx, CreateProposalInput{
		Title:     "Разработка сайта",
		Client:    models.ClientInfo{Name: "ООО Ромашка", Email: "info@romashka.ru"},
		CreatedBy: creator,
	})
	if err != nil {
		t.Fatalf("создание вернуло ошибку: %v", err)
	}

	if proposal.ID == uuid.Nil {
		t.Fatalf("документ должен получить идентификатор")
	}
	if proposal.Metadata.Status != models.StatusDraft {
		t.Fatalf("новый документ должен быть черновиком, получили %q", proposal.Metadata.Status)
	}
	if proposal.Metadata.CreatedBy != creator {
		t.Fatalf("автор должен браться из входных данных")
	}
	if proposal.Metadata.Client.Name != "ООО Ромашка" {
		t.Fatalf("данные клиента потерялись")
	}
}

func TestProposalService_Create_RequiresTitleAndCreator(t *testing.T) {
	service := NewProposalService(newMockProposalGateway())
	ctx := context.Background()

	if _, err := service.Create(ctx, CreateProposalInput{CreatedBy: uuid.New()}); !apperror.IsValidation(err) {
		t.Fatalf("создание без заголовка должно вернуть ошибку валидации, получили %v", err)
	}
	if _, err := service.Create(ctx, CreateProposalInput{Title: "КП"}); !apperror.IsValidation(err) {
		t.Fatalf("создание без автора должно вернуть ошибку валидации, получили %v", err)
	}
}

func TestProposalService_Create_SeedsFromTemplate(t *testing.T) {
	service := NewProposalService(newMockProposalGateway())
	ctx := context.Background()

	proposal, err := service.Create(ctx, CreateProposalInput{
		Title:     "КП по шаблону",
		Template:  "Basic Proposal",
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("создание вернуло ошибку: %v", err)
	}
	if len(proposal.Sections) == 0 {
		t.Fatalf("документ должен наполниться разделами шаблона")
	}

	// Переданные разделы имеют приоритет над шаблоном.
	own := models.SectionList{{Title: "Свой раздел"}}
	proposal, err = service.Create(ctx, CreateProposalInput{
		Title:     "КП со своими разделами",
		Template:  "Basic Proposal",
		Sections:  own,
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("создание вернуло ошибку: %v", err)
	}
	if len(proposal.Sections) != 1 || proposal.Sections[0].Title != "Свой раздел" {
		t.Fatalf("собственные разделы не должны подменяться шаблоном")
	}
}

func TestProposalService_Update_MergesFields(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()
	creator := uuid.New()

	created, err := service.Create(ctx, CreateProposalInput{
		Title:       "Первая версия",
		Description: "Описание",
		Client:      models.ClientInfo{Name: "Клиент"},
		CreatedBy:   creator,
	})
	if err != nil {
		t.Fatalf("создание вернуло ошибку: %v", err)
	}

	newTitle := "Вторая версия"
	status := models.StatusSent
	updated, err := service.Update(ctx, created.ID, UpdateProposalInput{
		Title:  &newTitle,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("обновление вернуло ошибку: %v", err)
	}

	if updated.Title != newTitle {
		t.Fatalf("заголовок не обновился")
	}
	if updated.Metadata.Status != models.StatusSent {
		t.Fatalf("статус не обновился")
	}
	// Непереданные поля сохраняют старые значения.
	if updated.Description != "Описание" {
		t.Fatalf("описание не должно меняться")
	}
	if updated.Metadata.Client.Name != "Клиент" {
		t.Fatalf("клиент не должен меняться")
	}
	if updated.Metadata.CreatedBy != creator {
		t.Fatalf("автор не должен меняться")
	}
}

func TestProposalService_Update_RejectsBadStatus(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()

	created, _ := service.Create(ctx, CreateProposalInput{
		Title:     "КП",
		CreatedBy: uuid.New(),
	})

	bad := "archived"
	if _, err := service.Update(ctx, created.ID, UpdateProposalInput{Status: &bad}); !apperror.IsValidation(err) {
		t.Fatalf("недопустимый статус должен вернуть ошибку валидации, получили %v", err)
	}
}

func TestProposalService_Update_NotFound(t *testing.T) {
	service := NewProposalService(newMockProposalGateway())
	title := "КП"
	_, err := service.Update(context.Background(), uuid.New(), UpdateProposalInput{Title: &title})
	if err != repository.ErrProposalNotFound {
		t.Fatalf("ожидалась ошибка отсутствия документа, получили %v", err)
	}
}

func TestProposalService_UpdateSection(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()

	created, _ := service.Create(ctx, CreateProposalInput{
		Title:     "КП",
		Sections:  models.SectionList{{Title: "Введение"}},
		CreatedBy: uuid.New(),
	})
	sectionID := created.Sections[0].ID

	updated, err := service.UpdateSection(ctx, created.ID, sectionID, models.Section{
		Title:    "Новое введение",
		Elements: []models.Element{{Type: models.ElementText}},
	})
	if err != nil {
		t.Fatalf("обновление раздела вернуло ошибку: %v", err)
	}
	if updated.Sections[0].Title != "Новое введение" {
		t.Fatalf("раздел не заменился")
	}
	if updated.Sections[0].ID != sectionID {
		t.Fatalf("идентификатор раздела должен сохраниться")
	}

	if _, err := service.UpdateSection(ctx, created.ID, uuid.New(), models.Section{Title: "Чужой"}); err != repository.ErrSectionNotFound {
		t.Fatalf("ожидалась ошибка отсутствия раздела, получили %v", err)
	}

	if _, err := service.UpdateSection(ctx, created.ID, sectionID, models.Section{
		Elements: []models.Element{{Type: "video"}},
	}); !apperror.IsValidation(err) {
		t.Fatalf("недопустимый тип блока должен вернуть ошибку валидации, получили %v", err)
	}
}

func TestProposalService_UpdateElement(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()

	created, _ := service.Create(ctx, CreateProposalInput{
		Title: "КП",
		Sections: models.SectionList{
			{Title: "Введение", Elements: []models.Element{{Type: models.ElementText}}},
		},
		CreatedBy: uuid.New(),
	})
	sectionID := created.Sections[0].ID
	elementID := created.Sections[0].Elements[0].ID

	updated, err := service.UpdateElement(ctx, created.ID, sectionID, elementID, models.Element{
		Type:    models.ElementPricing,
		Content: json.RawMessage(`{"total":50000}`),
	})
	if err != nil {
		t.Fatalf("обновление блока вернуло ошибку: %v", err)
	}
	if updated.Sections[0].Elements[0].Type != models.ElementPricing {
		t.Fatalf("блок не заменился")
	}

	// Для попадания должны совпасть оба идентификатора.
	if _, err := service.UpdateElement(ctx, created.ID, uuid.New(), elementID, models.Element{Type: models.ElementText}); err != repository.ErrElementNotFound {
		t.Fatalf("несуществующий раздел должен вернуть ошибку отсутствия блока, получили %v", err)
	}
	if _, err := service.UpdateElement(ctx, created.ID, sectionID, uuid.New(), models.Element{Type: models.ElementText}); err != repository.ErrElementNotFound {
		t.Fatalf("несуществующий блок должен вернуть ошибку отсутствия, получили %v", err)
	}

	if _, err := service.UpdateElement(ctx, created.ID, sectionID, elementID, models.Element{Type: "video"}); !apperror.IsValidation(err) {
		t.Fatalf("недопустимый тип блока должен вернуть ошибку валидации, получили %v", err)
	}
}

func TestProposalService_Delete_Idempotent(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()

	created, _ := service.Create(ctx, CreateProposalInput{Title: "КП", CreatedBy: uuid.New()})

	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("удаление вернуло ошибку: %v", err)
	}
	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("повторное удаление не должно возвращать ошибку: %v", err)
	}
	if _, err := service.Get(ctx, created.ID); err != repository.ErrProposalNotFound {
		t.Fatalf("удалённый документ не должен находиться, получили %v", err)
	}
}

func TestProposalService_RejectsOversizedContent(t *testing.T) {
	gateway := newMockProposalGateway()
	service := NewProposalService(gateway)
	ctx := context.Background()

	// Содержимое ровно на байт больше лимита.
	oversized := json.RawMessage(`"` + strings.Repeat("a", validation.MaxElementContentBytes) + `"`)
	bigElement := models.Element{Type: models.ElementText, Content: oversized}

	if _, err := service.Create(ctx, CreateProposalInput{
		Title:     "КП",
		Sections:  models.SectionList{{Title: "Введение", Elements: []models.Element{bigElement}}},
		CreatedBy: uuid.New(),
	}); !apperror.IsValidation(err) {
		t.Fatalf("создание с переполненным блоком должно вернуть ошибку валидации, получили %v", err)
	}

	created, err := service.Create(ctx, CreateProposalInput{
		Title:     "КП",
		Sections:  models.SectionList{{Title: "Введение", Elements: []models.Element{{Type: models.ElementText}}}},
		CreatedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("создание вернуло ошибку: %v", err)
	}
	sectionID := created.Sections[0].ID
	elementID := created.Sections[0].Elements[0].ID

	big := models.SectionList{{Title: "Введение", Elements: []models.Element{bigElement}}}
	if _, err := service.Update(ctx, created.ID, UpdateProposalInput{Sections: &big}); !apperror.IsValidation(err) {
		t.Fatalf("частичное обновление с переполненным блоком должно вернуть ошибку валидации, получили %v", err)
	}

	if _, err := service.UpdateSection(ctx, created.ID, sectionID, models.Section{
		Title:    "Введение",
		Elements: []models.Element{bigElement},
	}); !apperror.IsValidation(err) {
		t.Fatalf("замена раздела с переполненным блоком должна вернуть ошибку валидации, получили %v", err)
	}

	if _, err := service.UpdateElement(ctx, created.ID, sectionID, elementID, bigElement); !apperror.IsValidation(err) {
		t.Fatalf("замена блока с переполненным содержимым должна вернуть ошибку валидации, получили %v", err)
	}

	// Документ не должен испортиться после отклонённых запросов.
	fresh, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("документ не должен пропасть: %v", err)
	}
	if len(fresh.Sections[0].Elements[0].Content) > validation.MaxElementContentBytes {
		t.Fatalf("отклонённое содержимое не должно сохраниться")
	}
}

func TestProposalService_Create_RejectsBadSettings(t *testing.T) {
	service := NewProposalService(newMockProposalGateway())

	_, err := service.Create(context.Background(), CreateProposalInput{
		Title:     "КП",
		CreatedBy: uuid.New(),
		Settings: &models.Settings{
			Colors: models.Colors{Primary: "красный"},
		},
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("неверный цвет должен вернуть ошибку валидации, получили %v", err)
	}
}
