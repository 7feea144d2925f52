package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const subjectIDHeader = "X-Subject-ID"

const msgMissingSubjectID = "отсутствует идентификатор пользователя"

type contextKey string

const subjectIDKey contextKey = "subjectID"

// Auth извлекает идентификатор пользователя из заголовка X-Subject-ID
// и кладет его в контекст запроса. Заголовок проставляет API gateway
// после проверки токена, поэтому здесь только парсинг
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(subjectIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingSubjectID)
			return
		}

		subjectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || subjectID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingSubjectID)
			return
		}

		ctx := context.WithValue(r.Context(), subjectIDKey, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectID возвращает идентификатор пользователя из контекста
func GetSubjectID(ctx context.Context) (int64, bool) {
	subjectID, ok := ctx.Value(subjectIDKey).(int64)
	return subjectID, ok
}
