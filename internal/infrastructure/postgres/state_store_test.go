package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier registra las sentencias y devuelve filas preparadas.
type fakeQuerier struct {
	execs []execCall
	row   fakeRow
}

type execCall struct {
	sql  string
	args []any
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, execCall{sql, args})
	return pgconn.NewCommandTag("DELETE 3"), nil
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return q.row }

func TestStateStore_GetSinFilaDevuelveNil(t *testing.T) {
	s := NewStateStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}, 0)

	v, err := s.Get(context.Background(), "ws", "token")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStateStore_GetPropagaErrores(t *testing.T) {
	s := NewStateStore(&fakeQuerier{row: fakeRow{err: errors.New("conn reset")}}, 0)

	_, err := s.Get(context.Background(), "ws", "token")
	assert.Error(t, err)
}

func TestStateStore_SetConTTL(t *testing.T) {
	q := &fakeQuerier{}
	s := NewStateStore(q, time.Hour)

	require.NoError(t, s.Set(context.Background(), "ws", "token", []byte("t")))
	require.Len(t, q.execs, 1)
	args := q.execs[0].args
	assert.Equal(t, "ws", args[0])
	assert.Equal(t, "token", args[1])
	exp, ok := args[3].(*time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *exp, time.Minute)
}

func TestStateStore_SetSinTTL(t *testing.T) {
	q := &fakeQuerier{}
	s := NewStateStore(q, 0)

	require.NoError(t, s.Set(context.Background(), "ws", "user", []byte("{}")))
	assert.Nil(t, q.execs[0].args[3])
}

func TestStateStore_PurgeExpired(t *testing.T) {
	s := NewStateStore(&fakeQuerier{}, 0)

	n, err := s.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
