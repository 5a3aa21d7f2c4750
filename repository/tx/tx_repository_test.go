package tx_test

import (
	"context"
	"testing"

	"github.com/muhammadheryan/stock-coordinator/repository/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRepository_BeginTx_Disabled(t *testing.T) {
	repo := tx.NewTxRepository(nil, true)

	got, err := repo.BeginTx(context.Background())

	require.ErrorIs(t, err, tx.ErrTxNotSupported)
	assert.Nil(t, got)
}
