package tlscert

import "errors"

// Ошибки проверки существующей пары.
var (
	ErrCertExpired     = errors.New("certificate is expired")       // Срок действия сертификата истек.
	ErrCertNotValidYet = errors.New("certificate is not valid yet") // Сертификат еще не вступил в силу.
	ErrBlankPEM        = errors.New("pem is blank")                 // Файл отсутствует или пуст.
)
