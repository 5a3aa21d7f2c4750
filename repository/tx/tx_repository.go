package tx

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ErrTxNotSupported signals that the underlying store cannot run
// multi-statement transactions. The coordinator falls back to its sequential
// compensation path; this error never reaches API callers.
var ErrTxNotSupported = errors.New("transactions not supported by datastore")

// MySQL error numbers that indicate the deployment cannot serve transactions
// (non-transactional engine or XA/storage engine feature disabled).
var txUnsupportedErrNos = map[uint16]struct{}{
	1178: {}, // ER_CHECK_NOT_IMPLEMENTED
	1235: {}, // ER_NOT_SUPPORTED_YET
}

type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type txRepo struct {
	db       *sqlx.DB
	disabled bool
}

// NewTxRepository returns a TxRepository. With disabled=true every BeginTx
// reports ErrTxNotSupported, for single-node deployments that must use the
// compensation path.
func NewTxRepository(db *sqlx.DB, disabled bool) TxRepository {
	return &txRepo{db: db, disabled: disabled}
}

func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	if r.disabled {
		return nil, ErrTxNotSupported
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			if _, unsupported := txUnsupportedErrNos[mysqlErr.Number]; unsupported {
				return nil, ErrTxNotSupported
			}
		}
		return nil, err
	}
	return tx, nil
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}
