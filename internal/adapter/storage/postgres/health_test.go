package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Error(t, hc.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
