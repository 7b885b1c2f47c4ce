package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx runs fn inside one transaction; fn reaches the transaction
	// through the context it receives
	ExecTx(ctx context.Context, fn TxFn) error
}
