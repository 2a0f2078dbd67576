package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

func newID() string {
	return uuid.NewString()
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func timeOfDayParam(t calendar.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.SinceMidnight() / time.Microsecond), Valid: true}
}

func timeOfDayFromPg(t pgtype.Time) calendar.TimeOfDay {
	return calendar.TimeOfDayFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}

func dateParam(t time.Time) time.Time {
	return calendar.Normalize(t)
}

func dateFromPg(t time.Time) time.Time {
	return calendar.Normalize(t)
}
