package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom([]string{"companies"}, []string{"id", "name"}).
		WillReturnResult(2)

	n, err := CopyFrom(context.Background(), mock, "companies", []string{"id", "name"}, [][]any{
		{"id-1", "Acme Corp"},
		{"id-2", "Beta LLC"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_EmptyRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	n, err := CopyFrom(context.Background(), mock, "companies", []string{"id"}, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFromSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom([]string{"staging", "filing_rows"}, []string{"ack_id"}).
		WillReturnResult(1)

	n, err := CopyFromSchema(context.Background(), mock, "staging", "filing_rows",
		[]string{"ack_id"}, [][]any{{"ACK001"}})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom([]string{"companies"}, []string{"id"}).
		WillReturnError(fmt.Errorf("connection lost"))

	_, err = CopyFrom(context.Background(), mock, "companies", []string{"id"}, [][]any{{"id-1"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO companies")
	assert.NoError(t, mock.ExpectationsWereMet())
}
