package settlement

import "errors"

var (
	ErrNotFound     = errors.New("kayıt bulunamadı")
	ErrConflict     = errors.New("bu tarih için zaten teslim edilmiş bir kayıt var")
	ErrForbidden    = errors.New("bu kayıt üzerinde yetkiniz yok")
	ErrInvalidState = errors.New("kayıt bu durumda bu işleme izin vermiyor")
)
