package dbmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	operation string
	err       error
}

type fakeCollector struct {
	queries []observed
}

func (f *fakeCollector) ObserveDBQuery(operation string, err error, _ time.Duration) {
	f.queries = append(f.queries, observed{operation: operation, err: err})
}

func (f *fakeCollector) SetDBPoolStats(_, _, _ int) {}

func TestDB_ObservesEveryQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	queryErr := errors.New("boom")
	mock.ExpectQuery("SELECT unavailable_date").WillReturnRows(sqlmock.NewRows([]string{"unavailable_date"}))
	mock.ExpectExec("UPDATE listings").WillReturnError(queryErr)

	collector := &fakeCollector{}
	wrapped := Wrap(db, collector)

	rows, err := wrapped.QueryContext(context.Background(), "SELECT unavailable_date FROM listing_unavailable_dates")
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	_, err = wrapped.ExecContext(context.Background(), "  UPDATE listings SET title = 'x'")
	assert.ErrorIs(t, err, queryErr)

	require.Len(t, collector.queries, 2)
	assert.Equal(t, "select", collector.queries[0].operation)
	assert.NoError(t, collector.queries[0].err)
	assert.Equal(t, "update", collector.queries[1].operation)
	assert.ErrorIs(t, collector.queries[1].err, queryErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_NilCollector(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, Wrap(db, nil).QueryRowContext(context.Background(), "SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT * FROM t"))
	assert.Equal(t, "insert", operation("\n\tinsert into t values (1)"))
	assert.Equal(t, "unknown", operation("   "))
}
