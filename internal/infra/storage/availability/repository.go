package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/psqlbuilder"
)

// Repository читает снимок доступности объявления из БД маркетплейса.
// Только чтение: записи о бронированиях принадлежат другим сервисам.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWindow собирает снимок: недоступные даты, интервалы блокировки и неотмененные бронирования.
// Ограничения по длительности аренды заполняет вызывающий из записи объявления.
func (r *Repository) GetWindow(ctx context.Context, listingID int64) (*domain.AvailabilityWindow, error) {
	dates, err := r.getUnavailableDates(ctx, listingID)
	if err != nil {
		return nil, err
	}

	blockOuts, err := r.getBlockOuts(ctx, listingID)
	if err != nil {
		return nil, err
	}

	reservations, err := r.getReservations(ctx, listingID)
	if err != nil {
		return nil, err
	}

	return &domain.AvailabilityWindow{
		ListingID:        listingID,
		UnavailableDates: dates,
		BlockOuts:        blockOuts,
		Reservations:     reservations,
		MinRentalDays:    domain.DefaultMinRentalDays,
	}, nil
}

func (r *Repository) getUnavailableDates(ctx context.Context, listingID int64) ([]string, error) {

	query, args, err := psqlbuilder.Select("unavailable_date").
		From("listing_unavailable_dates").
		Where(squirrel.Eq{"listing_id": listingID}).
		OrderBy("unavailable_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getUnavailableDates - build query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getUnavailableDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: getUnavailableDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.DayKey(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getUnavailableDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// getBlockOuts возвращает интервалы как есть, включая записи без границ:
// их пропускает резолвер, а не загрузчик
func (r *Repository) getBlockOuts(ctx context.Context, listingID int64) ([]domain.BlockOut, error) {

	query, args, err := psqlbuilder.Select("starts_at", "ends_at").
		From("listing_blockouts").
		Where(squirrel.Eq{"listing_id": listingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBlockOuts - build query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBlockOuts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var blockOuts []domain.BlockOut
	for rows.Next() {
		var start, end sql.NullTime
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("%w: getBlockOuts - scan row: %v", ErrScanRow, err)
		}
		blockOuts = append(blockOuts, domain.BlockOut{Start: start.Time, End: end.Time})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBlockOuts - rows error: %v", ErrScanRow, err)
	}

	return blockOuts, nil
}

func (r *Repository) getReservations(ctx context.Context, listingID int64) ([]domain.Reservation, error) {

	cancelled := make([]string, 0, len(domain.CancelledReservationStatuses))
	for _, s := range domain.CancelledReservationStatuses {
		cancelled = append(cancelled, string(s))
	}

	query, args, err := psqlbuilder.Select("start_date", "end_date", "status").
		From("reservations").
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.NotEq{"status": cancelled}).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getReservations - build query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getReservations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var (
			res    domain.Reservation
			status string
		)
		if err := rows.Scan(&res.Start, &res.End, &status); err != nil {
			return nil, fmt.Errorf("%w: getReservations - scan row: %v", ErrScanRow, err)
		}
		res.Status = domain.ReservationStatus(status)
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
