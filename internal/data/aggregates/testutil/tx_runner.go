package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/aggregates"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
)

// InjectedTxRunner runs aggregate bodies in a real transaction on DB and can
// inject failures around the body. FailCommit rolls the transaction back after
// the body succeeded, so nothing the body wrote becomes visible.
// With a nil DB the body runs without a transaction.
type InjectedTxRunner struct {
	DB *gorm.DB

	FailBegin  error
	FailCommit error

	mu            sync.Mutex
	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	var err error
	if r.DB == nil {
		if fn != nil {
			err = fn(dbctx.Context{Ctx: ctx})
		}
		if err == nil {
			err = failCommit
		}
	} else {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if fn != nil {
				if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
					return err
				}
			}
			return failCommit
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
