// Package templates содержит статический каталог стартовых шаблонов
// коммерческих предложений. Каталог неизменяемый, детерминированный и не
// выполняет I/O: шаблоны используются только для наполнения нового
// предложения при создании.
package templates

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/proposal-builder/internal/models"
)

// SectionDef описывает раздел шаблона: ключ, отображаемое имя и иконку.
type SectionDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Block — стартовый текстовый блок с фиксированной позицией и размером.
type Block struct {
	X       float64
	Y       float64
	Width   int
	Height  int
	Content json.RawMessage
}

// Template — один шаблон предложения.
type Template struct {
	Title       string
	Description string
	Sections    []SectionDef
	// Content хранит стартовые блоки по ключу раздела.
	Content map[string][]Block
}

// Info — пара заголовок/описание для витрины шаблонов.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ByName возвращает шаблон по названию. Если совпадения нет,
// возвращается базовый шаблон.
func ByName(name string) Template {
	for _, tpl := range catalog {
		if tpl.Title == name {
			return tpl
		}
	}
	return basicTemplate
}

// Names возвращает заголовки и описания всех шаблонов.
func Names() []Info {
	infos := make([]Info, 0, len(catalog))
	for _, tpl := range catalog {
		infos = append(infos, Info{Title: tpl.Title, Description: tpl.Description})
	}
	return infos
}

// Materialize разворачивает шаблон в разделы документа. Каждому разделу и
// блоку назначается свежий uuid, поэтому повторные вызовы никогда не
// порождают совпадающие идентификаторы.
func Materialize(tpl Template) models.SectionList {
	sections := make(models.SectionList, 0, len(tpl.Sections))
	for i, def := range tpl.Sections {
		section := models.Section{
			ID:    uuid.New(),
			Title: def.Name,
			Order: i,
		}
		for _, block := range tpl.Content[def.ID] {
			section.Elements = append(section.Elements, models.Element{
				ID:       uuid.New(),
				Type:     models.ElementText,
				Content:  block.Content,
				Position: models.Position{X: block.X, Y: block.Y},
				Style: models.ElementStyle{
					Width:  fmt.Sprintf("%dpx", block.Width),
					Height: fmt.Sprintf("%dpx", block.Height),
				},
			})
		}
		sections = append(sections, section)
	}
	return sections
}
