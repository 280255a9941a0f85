package templates

import (
	"testing"

	"github.com/google/uuid"
)

func TestByName_KnownTemplate(t *testing.T) {
	tpl := ByName("Consulting Proposal")
	if tpl.Title != "Consulting Proposal" {
		t.Fatalf("ожидался шаблон Consulting Proposal, получили %q", tpl.Title)
	}
	if len(tpl.Sections) == 0 {
		t.Fatalf("шаблон должен содержать разделы")
	}
}

func TestByName_UnknownFallsBackToBasic(t *testing.T) {
	tpl := ByName("несуществующий шаблон")
	if tpl.Title != basicTemplate.Title {
		t.Fatalf("неизвестное имя должно возвращать базовый шаблон, получили %q", tpl.Title)
	}
	if empty := ByName(""); empty.Title != basicTemplate.Title {
		t.Fatalf("пустое имя должно возвращать базовый шаблон")
	}
}

func TestNames(t *testing.T) {
	infos := Names()
	if len(infos) != len(catalog) {
		t.Fatalf("ожидалось %d шаблонов, получили %d", len(catalog), len(infos))
	}
	for _, info := range infos {
		if info.Title == "" || info.Description == "" {
			t.Fatalf("у шаблона пустой заголовок или описание: %+v", info)
		}
	}
}

func TestMaterialize(t *testing.T) {
	tpl := ByName("Basic Proposal")
	sections := Materialize(tpl)

	if len(sections) != len(tpl.Sections) {
		t.Fatalf("ожидалось %d разделов, получили %d", len(tpl.Sections), len(sections))
	}
	for i, section := range sections {
		if section.ID == uuid.Nil {
			t.Fatalf("раздел %d без идентификатора", i)
		}
		if section.Order != i {
			t.Fatalf("порядок раздела %d нарушен: %d", i, section.Order)
		}
		if section.Title != tpl.Sections[i].Name {
			t.Fatalf("заголовок раздела %d не совпадает с шаблоном", i)
		}
	}

	// Стартовые блоки базового шаблона должны попасть в документ.
	if len(sections[0].Elements) == 0 {
		t.Fatalf("первый раздел базового шаблона должен содержать блоки")
	}
}

func TestMaterialize_FreshIDsEveryCall(t *testing.T) {
	tpl := ByName("Basic Proposal")
	first := Materialize(tpl)
	second := Materialize(tpl)

	seen := make(map[uuid.UUID]struct{})
	for _, section := range first {
		seen[section.ID] = struct{}{}
		for _, el := range section.Elements {
			seen[el.ID] = struct{}{}
		}
	}
	for _, section := range second {
		if _, dup := seen[section.ID]; dup {
			t.Fatalf("повторный вызов переиспользовал идентификатор раздела %s", section.ID)
		}
		for _, el := range section.Elements {
			if _, dup := seen[el.ID]; dup {
				t.Fatalf("повторный вызов переиспользовал идентификатор блока %s", el.ID)
			}
		}
	}
}
