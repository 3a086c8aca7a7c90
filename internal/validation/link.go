// Package validation проверяет пользовательский ввод ссылки до записи в хранилище.
//
// Все нарушенные правила собираются вместе, проверка не прерывается на первой ошибке.
package validation

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fsdevblog/shortlinks/internal/models"
)

const (
	ShortCodeMinLength = 3
	ShortCodeMaxLength = 20
)

// Коды нарушений. Проверяются через errors.Is на *Errors.
var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrInvalidShortCode = errors.New("invalid short code")
)

// Сообщения для пользователя.
const (
	MsgInvalidURL         = "Please enter a valid URL"
	MsgShortCodeTooShort  = "Short code must be at least 3 characters"
	MsgShortCodeTooLong   = "Short code must be at most 20 characters"
	MsgShortCodeBadFormat = "Short code can only contain letters, numbers, hyphens, and underscores"
)

var shortCodeCharsRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Issue одно нарушенное правило.
type Issue struct {
	Field   string
	Code    error
	Message string
}

// Errors набор нарушенных правил.
type Errors struct {
	Issues []Issue
}

func (e *Errors) Error() string {
	return strings.Join(e.Messages(), ", ")
}

// Messages возвращает сообщения для пользователя в порядке проверки.
func (e *Errors) Messages() []string {
	messages := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		messages[i] = issue.Message
	}
	return messages
}

// Is позволяет проверять наличие конкретного нарушения: errors.Is(err, ErrInvalidURL).
func (e *Errors) Is(target error) bool {
	for _, issue := range e.Issues {
		if issue.Code == target {
			return true
		}
	}
	return false
}

func (e *Errors) add(field string, code error, message string) {
	e.Issues = append(e.Issues, Issue{Field: field, Code: code, Message: message})
}

// ValidateLink проверяет пару (originalUrl, shortCode) как есть, без нормализации:
// пробелы по краям - такое же нарушение формата, как любой другой недопустимый символ.
//
// Возвращает:
//   - models.LinkInput: проверенные значения
//   - error: *Errors со всеми нарушениями либо nil
func ValidateLink(in models.LinkInput) (models.LinkInput, error) {
	errs := new(Errors)

	if !isAbsoluteURL(in.OriginalURL) {
		errs.add("originalUrl", ErrInvalidURL, MsgInvalidURL)
	}

	codeLen := utf8.RuneCountInString(in.ShortCode)
	if codeLen < ShortCodeMinLength {
		errs.add("shortCode", ErrInvalidShortCode, MsgShortCodeTooShort)
	}
	if codeLen > ShortCodeMaxLength {
		errs.add("shortCode", ErrInvalidShortCode, MsgShortCodeTooLong)
	}
	if !shortCodeCharsRegex.MatchString(in.ShortCode) {
		errs.add("shortCode", ErrInvalidShortCode, MsgShortCodeBadFormat)
	}

	if len(errs.Issues) > 0 {
		return in, errs
	}
	return in, nil
}

// IsShortCode проверяет только форму короткого кода.
func IsShortCode(code string) bool {
	l := len(code)
	return l >= ShortCodeMinLength && l <= ShortCodeMaxLength && shortCodeCharsRegex.MatchString(code)
}

// isAbsoluteURL абсолютный http(s) URL с хостом.
func isAbsoluteURL(rawURL string) bool {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}
	if !parsedURL.IsAbs() {
		return false
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false
	}
	return parsedURL.Hostname() != ""
}
