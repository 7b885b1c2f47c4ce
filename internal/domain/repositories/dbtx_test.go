package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies pgx.Tx through embedding; no method is ever called
type fakeTx struct {
	pgx.Tx
	id int
}

func TestTxContext_RoundTrip(t *testing.T) {
	if tx := GetTx(context.Background()); tx != nil {
		t.Errorf("GetTx on a bare context = %v, want nil", tx)
	}

	want := fakeTx{id: 1}
	ctx := SetTx(context.Background(), want)

	got, ok := GetTx(ctx).(fakeTx)
	if !ok || got.id != want.id {
		t.Errorf("GetTx() = %v, want the transaction stored by SetTx", got)
	}
}

func TestTxContext_InnerTxWins(t *testing.T) {
	outer := SetTx(context.Background(), fakeTx{id: 1})
	inner := SetTx(outer, fakeTx{id: 2})

	if got, _ := GetTx(inner).(fakeTx); got.id != 2 {
		t.Errorf("nested SetTx: GetTx() = %v, want the innermost transaction", got)
	}
	if got, _ := GetTx(outer).(fakeTx); got.id != 1 {
		t.Errorf("outer context disturbed: GetTx() = %v", got)
	}
}
