// Package pgstore предоставляет реализацию репозитория ссылок для PostgreSQL (pgx).
//
// Все методы репозитория преобразуют ошибки PostgreSQL в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - pgx.ErrNoRows -> repositories.ErrNotFound
//   - uniqueViolationCode (23505) -> repositories.ErrDuplicateKey
//   - другие ошибки -> repositories.ErrUnknown
package pgstore
