// Package gormstore предоставляет реализацию репозитория ссылок поверх gorm (sqlite, mysql).
//
// Ошибки драйвера переводятся gorm'ом (TranslateError) и затем конвертируются в ошибки
// уровня репозитория с помощью convertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package gormstore
