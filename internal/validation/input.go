package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinUsernameLength         = 3
	MaxUsernameLength         = 30
	MinProposalTitleLength    = 1
	MaxProposalTitleLength    = 200
	MaxDescriptionLength      = 5000
	MaxSectionTitleLength     = 200
	MaxClientNameLength       = 200
	MaxCompanyNameLength      = 200
	MaxElementContentBytes    = 256 * 1024 // 256KB на один блок
	MaxTotalValue             = 1000000000.0
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateProposalTitle проверяет заголовок предложения.
func ValidateProposalTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок предложения обязателен")
	}
	return ValidateLength("заголовок предложения", strings.TrimSpace(title), MinProposalTitleLength, MaxProposalTitleLength)
}

// ValidateDescription проверяет описание предложения.
func ValidateDescription(description string) error {
	return ValidateLength("описание", description, 0, MaxDescriptionLength)
}

// ValidateHexColor проверяет формат цвета вида #RGB или #RRGGBB.
// Пустое значение допустимо: цвет не задан.
func ValidateHexColor(fieldName, color string) error {
	if color == "" {
		return nil
	}
	colorRegex := regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("%s должен быть цветом в формате #RGB или #RRGGBB", fieldName)
	}
	return nil
}

// ValidateTotalValue проверяет сумму предложения.
func ValidateTotalValue(value float64) error {
	if value < 0 {
		return fmt.Errorf("сумма предложения не может быть отрицательной")
	}
	if value > MaxTotalValue {
		return fmt.Errorf("сумма предложения не может превышать %.0f", MaxTotalValue)
	}
	return nil
}
