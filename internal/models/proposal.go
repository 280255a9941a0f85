package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Статусы коммерческого предложения.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusViewed   = "viewed"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Типы контентных блоков.
const (
	ElementText      = "text"
	ElementImage     = "image"
	ElementTable     = "table"
	ElementSignature = "signature"
	ElementPricing   = "pricing"
)

// ValidStatus проверяет принадлежность статуса к допустимому перечислению.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSent, StatusViewed, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// ValidElementType проверяет принадлежность типа блока к допустимому перечислению.
func ValidElementType(t string) bool {
	switch t {
	case ElementText, ElementImage, ElementTable, ElementSignature, ElementPricing:
		return true
	}
	return false
}

// Proposal описывает документ коммерческого предложения.
type Proposal struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Sections    SectionList `db:"sections" json:"sections"`
	Settings    Settings    `db:"settings" json:"settings"`
	Metadata    Metadata    `db:"metadata" json:"metadata"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Section — раздел документа с упорядоченным набором блоков.
type Section struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Elements []Element `json:"elements"`
}

// Element — один контентный блок внутри раздела.
// Содержимое блока зависит от типа и хранится как непрозрачный JSON.
type Element struct {
	ID       uuid.UUID       `json:"id"`
	Type     string          `json:"type"`
	Content  json.RawMessage `json:"content,omitempty"`
	Position Position        `json:"position"`
	Style    ElementStyle    `json:"style"`
}

// Position задаёт координаты блока на странице.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementStyle описывает визуальные параметры блока.
type ElementStyle struct {
	Width           string `json:"width,omitempty"`
	Height          string `json:"height,omitempty"`
	FontSize        string `json:"font_size,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// Settings хранит оформление документа.
type Settings struct {
	Theme  string `json:"theme"`
	Fonts  Fonts  `json:"fonts"`
	Colors Colors `json:"colors"`
}

// Fonts — выбор шрифтов для заголовков и основного текста.
type Fonts struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Colors — цветовая схема документа.
type Colors struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// Metadata хранит служебные данные предложения.
type Metadata struct {
	Client     ClientInfo `json:"client"`
	CreatedBy  uuid.UUID  `json:"createdBy"`
	Status     string     `json:"status"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	TotalValue *float64   `json:"totalValue,omitempty"`
}

// ClientInfo — данные клиента, для которого готовится предложение.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// SectionList хранится в JSONB колонке целиком.
type SectionList []Section

// Value сериализует разделы для записи в БД.
func (s SectionList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan читает разделы из JSONB колонки.
func (s *SectionList) Scan(src any) error {
	return scanJSONB(src, s, "sections")
}

// Value сериализует настройки для записи в БД.
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan читает настройки из JSONB колонки.
func (s *Settings) Scan(src any) error {
	return scanJSONB(src, s, "settings")
}

// Value сериализует метаданные для записи в БД.
func (m Metadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan читает метаданные из JSONB колонки.
func (m *Metadata) Scan(src any) error {
	return scanJSONB(src, m, "metadata")
}

// scanJSONB разбирает значение JSONB колонки в целевую структуру.
func scanJSONB(src any, dst any, column string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("models: неожиданный тип JSONB колонки %s: %T", column, src)
	}
}

// Normalize выставляет значения по умолчанию и генерирует идентификаторы
// для вложенных разделов и блоков, у которых они отсутствуют.
func (p *Proposal) Normalize() {
	if p.Settings.Theme == "" {
		p.Settings.Theme = "default"
	}
	if p.Metadata.Status == "" {
		p.Metadata.Status = StatusDraft
	}
	for i := range p.Sections {
		if p.Sections[i].ID == uuid.Nil {
			p.Sections[i].ID = uuid.New()
		}
		for j := range p.Sections[i].Elements {
			if p.Sections[i].Elements[j].ID == uuid.Nil {
				p.Sections[i].Elements[j].ID = uuid.New()
			}
		}
	}
}

// Validate проверяет обязательные поля и перечисления документа.
func (p *Proposal) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("models: поле title обязательно")
	}
	if p.Metadata.CreatedBy == uuid.Nil {
		return fmt.Errorf("models: поле metadata.createdBy обязательно")
	}
	if !ValidStatus(p.Metadata.Status) {
		return fmt.Errorf("models: недопустимый статус %q", p.Metadata.Status)
	}
	for _, sec := range p.Sections {
		for _, el := range sec.Elements {
			if !ValidElementType(el.Type) {
				return fmt.Errorf("models: недопустимый тип блока %q", el.Type)
			}
		}
	}
	return nil
}

// ReplaceSection заменяет раздел с указанным идентификатором целиком.
// Возвращает false, если раздел не найден; список при этом не меняется.
func (s SectionList) ReplaceSection(sectionID uuid.UUID, section Section) bool {
	for i := range s {
		if s[i].ID == sectionID {
			section.ID = sectionID
			s[i] = section
			return true
		}
	}
	return false
}

// ReplaceElement заменяет блок внутри раздела. Совпасть должны оба
// идентификатора: и раздела, и блока.
func (s SectionList) ReplaceElement(sectionID, elementID uuid.UUID, element Element) bool {
	for i := range s {
		if s[i].ID != sectionID {
			continue
		}
		for j := range s[i].Elements {
			if s[i].Elements[j].ID == elementID {
				element.ID = elementID
				s[i].Elements[j] = element
				return true
			}
		}
		return false
	}
	return false
}
