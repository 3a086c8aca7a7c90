// Package memstore предоставляет реализацию репозитория ссылок для in-memory хранилища.
//
// Записи хранятся по ключу ID, уникальность короткого кода обеспечивается индексом
// внутри репозитория под общим мьютексом.
//
// Все методы репозитория преобразуют внутренние ошибки хранилища в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package memstore
