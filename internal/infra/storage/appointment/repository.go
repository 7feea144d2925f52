package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// uniqueViolation код ошибки unique_violation в PostgreSQL
const uniqueViolation = "23505"

// activeSlotConstraint имя частичного уникального индекса по активным слотам
// (см. migrations/001_create_appointments.sql)
const activeSlotConstraint = "appointments_active_slot_key"

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// appointmentColumns колонки таблицы appointments в порядке сканирования
var appointmentColumns = []string{
	"id",
	"provider_id",
	"subject_id",
	"appointment_date",
	"slot",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create вставляет новую запись в статусе booked.
// Гарантия эксклюзивности слота обеспечивается частичным уникальным индексом
// (provider_id, appointment_date, slot) WHERE status = 'booked' — никакой
// предварительной проверки занятости здесь нет и быть не должно: две конкурентные
// вставки на один слот разрешаются самим индексом, проигравшая получает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"provider_id",
			"subject_id",
			"appointment_date",
			"slot",
			"status",
		).
		Values(
			appt.ProviderID,
			appt.SubjectID,
			appt.Date,
			appt.Slot,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isActiveSlotViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает запись по ID с блокировкой строки (FOR UPDATE)
// Используется внутри транзакции при отмене записи
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// BookedSlots возвращает метки занятых слотов провайдера на дату
// Только записи в статусе booked: отмененные записи слот не держат
func (r *Repository) BookedSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot").
		From("appointments").
		Where(squirrel.Eq{
			"provider_id":      providerID,
			"appointment_date": date,
			"status":           domain.StatusBooked,
		}).
		OrderBy("slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeRange, 0)
	for rows.Next() {
		var slot types.TimeRange
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: BookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetBySubjectID получает список записей пациента, новые первыми
func (r *Repository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("appointment_date DESC, slot DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubjectID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySubjectID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByProviderWithFilter получает страницу записей провайдера
// Опционально фильтрует по дате и статусу, сортировка по дате и слоту по возрастанию
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		OrderBy("appointment_date ASC, slot ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Пагинация
	page := filter.Page
	if page < 1 {
		page = domain.DefaultPage
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	selectBuilder = selectBuilder.
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountByProviderWithFilter считает записи провайдера под тем же фильтром
// Используется для вычисления числа страниц
func (r *Repository) CountByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountByProviderWithFilter - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// Cancel переводит запись в статус cancelled
// Запись не удаляется: история сохраняется, слот освобождается автоматически,
// потому что частичный индекс учитывает только статус booked
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// isActiveSlotViolation распознает нарушение уникальности активного слота
func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == activeSlotConstraint
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну запись
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ProviderID,
		&appt.SubjectID,
		&appt.Date,
		&appt.Slot,
		&appt.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
