package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestProposal_Normalize(t *testing.T) {
	p := &Proposal{
		Title: "Сайт под ключ",
		Sections: SectionList{
			{Title: "Введение", Elements: []Element{{Type: ElementText}}},
		},
	}
	p.Normalize()

	if p.Settings.Theme != "default" {
		t.Fatalf("ожидалась тема default, получили %q", p.Settings.Theme)
	}
	if p.Metadata.Status != StatusDraft {
		t.Fatalf("ожидался статус draft, получили %q", p.Metadata.Status)
	}
	if p.Sections[0].ID == uuid.Nil {
		t.Fatalf("раздел должен получить идентификатор")
	}
	if p.Sections[0].Elements[0].ID == uuid.Nil {
		t.Fatalf("блок должен получить идентификатор")
	}
}

func TestProposal_Normalize_KeepsExistingIDs(t *testing.T) {
	sectionID := uuid.New()
	p := &Proposal{
		Title:    "КП",
		Sections: SectionList{{ID: sectionID, Title: "Цены"}},
		Metadata: Metadata{Status: StatusSent},
	}
	p.Normalize()

	if p.Sections[0].ID != sectionID {
		t.Fatalf("существующий идентификатор раздела не должен меняться")
	}
	if p.Metadata.Status != StatusSent {
		t.Fatalf("существующий статус не должен меняться")
	}
}

func TestProposal_Validate(t *testing.T) {
	creator := uuid.New()

	valid := &Proposal{
		Title:    "КП",
		Metadata: Metadata{CreatedBy: creator, Status: StatusDraft},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("валидный документ отклонён: %v", err)
	}

	noTitle := &Proposal{Metadata: Metadata{CreatedBy: creator, Status: StatusDraft}}
	if err := noTitle.Validate(); err == nil {
		t.Fatalf("документ без заголовка должен быть отклонён")
	}

	noCreator := &Proposal{Title: "КП", Metadata: Metadata{Status: StatusDraft}}
	if err := noCreator.Validate(); err == nil {
		t.Fatalf("документ без автора должен быть отклонён")
	}

	badStatus := &Proposal{Title: "КП", Metadata: Metadata{CreatedBy: creator, Status: "archived"}}
	if err := badStatus.Validate(); err == nil {
		t.Fatalf("недопустимый статус должен быть отклонён")
	}

	badElement := &Proposal{
		Title:    "КП",
		Metadata: Metadata{CreatedBy: creator, Status: StatusDraft},
		Sections: SectionList{{ID: uuid.New(), Elements: []Element{{ID: uuid.New(), Type: "video"}}}},
	}
	if err := badElement.Validate(); err == nil {
		t.Fatalf("недопустимый тип блока должен быть отклонён")
	}
}

func TestSectionList_ReplaceSection(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	sections := SectionList{
		{ID: first, Title: "Введение", Order: 0},
		{ID: second, Title: "Цены", Order: 1},
	}

	ok := sections.ReplaceSection(second, Section{Title: "Стоимость", Order: 5})
	if !ok {
		t.Fatalf("существующий раздел должен быть заменён")
	}
	if sections[1].Title != "Стоимость" || sections[1].Order != 5 {
		t.Fatalf("раздел не заменился: %+v", sections[1])
	}
	if sections[1].ID != second {
		t.Fatalf("идентификатор раздела должен сохраниться")
	}
	if sections[0].Title != "Введение" {
		t.Fatalf("соседний раздел не должен меняться")
	}

	if sections.ReplaceSection(uuid.New(), Section{Title: "Чужой"}) {
		t.Fatalf("замена по несуществующему идентификатору должна вернуть false")
	}
}

func TestSectionList_ReplaceElement(t *testing.T) {
	sectionID := uuid.New()
	elementID := uuid.New()
	sections := SectionList{
		{ID: sectionID, Elements: []Element{{ID: elementID, Type: ElementText}}},
		{ID: uuid.New(), Elements: []Element{{ID: uuid.New(), Type: ElementImage}}},
	}

	replacement := Element{Type: ElementPricing, Content: json.RawMessage(`{"total":100}`)}
	if !sections.ReplaceElement(sectionID, elementID, replacement) {
		t.Fatalf("существующий блок должен быть заменён")
	}
	if sections[0].Elements[0].Type != ElementPricing {
		t.Fatalf("блок не заменился: %+v", sections[0].Elements[0])
	}
	if sections[0].Elements[0].ID != elementID {
		t.Fatalf("идентификатор блока должен сохраниться")
	}

	// Совпадение только блока без раздела не считается попаданием.
	otherElement := sections[1].Elements[0].ID
	if sections.ReplaceElement(sectionID, otherElement, replacement) {
		t.Fatalf("блок из другого раздела не должен находиться")
	}
	if sections.ReplaceElement(uuid.New(), elementID, replacement) {
		t.Fatalf("несуществующий раздел не должен находиться")
	}
}

func TestSectionList_JSONBRoundTrip(t *testing.T) {
	sections := SectionList{
		{ID: uuid.New(), Title: "Введение", Elements: []Element{
			{ID: uuid.New(), Type: ElementText, Content: json.RawMessage(`{"text":"Привет"}`), Position: Position{X: 10, Y: 20}},
		}},
	}

	raw, err := sections.Value()
	if err != nil {
		t.Fatalf("сериализация вернула ошибку: %v", err)
	}

	var decoded SectionList
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("чтение вернуло ошибку: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != sections[0].ID {
		t.Fatalf("разделы не восстановились: %+v", decoded)
	}
	if decoded[0].Elements[0].Position.X != 10 {
		t.Fatalf("позиция блока не восстановилась")
	}
}

func TestSectionList_NilValue(t *testing.T) {
	var sections SectionList
	raw, err := sections.Value()
	if err != nil {
		t.Fatalf("сериализация nil вернула ошибку: %v", err)
	}
	if string(raw.([]byte)) != "[]" {
		t.Fatalf("nil список должен сериализоваться в пустой массив, получили %s", raw)
	}
}
