package testutil

import (
	"context"
	"errors"
	"testing"

	repotest "github.com/yungbote/redmane-backend/internal/data/repos/testutil"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
)

func TestInjectedTxRunner_CommitsOnSuccess(t *testing.T) {
	db := repotest.DB(t)
	r := &InjectedTxRunner{DB: db}
	err := r.InTx(context.Background(), func(dbc dbctx.Context) error {
		return dbc.Tx.Create(&domain.Project{Name: "onj"}).Error
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var n int64
	db.Model(&domain.Project{}).Count(&n)
	if n != 1 {
		t.Fatalf("committed rows: got=%d want=1", n)
	}
	if r.BeginCalls != 1 || r.CommitCalls != 1 || r.RollbackCalls != 0 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", r.BeginCalls, r.CommitCalls, r.RollbackCalls)
	}
}

func TestInjectedTxRunner_FailCommitDiscardsWrites(t *testing.T) {
	db := repotest.DB(t)
	commitErr := errors.New("commit failed")
	r := &InjectedTxRunner{DB: db, FailCommit: commitErr}
	err := r.InTx(context.Background(), func(dbc dbctx.Context) error {
		return dbc.Tx.Create(&domain.Project{Name: "onj"}).Error
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit err, got %v", err)
	}
	var n int64
	db.Model(&domain.Project{}).Count(&n)
	if n != 0 {
		t.Fatalf("rolled back rows visible: got=%d want=0", n)
	}
	if r.CommitCalls != 0 || r.RollbackCalls != 1 {
		t.Fatalf("unexpected counters commit=%d rollback=%d", r.CommitCalls, r.RollbackCalls)
	}
}

func TestInjectedTxRunner_FailBeginSkipsBody(t *testing.T) {
	beginErr := errors.New("begin failed")
	r := &InjectedTxRunner{FailBegin: beginErr}
	called := false
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, beginErr) || called {
		t.Fatalf("expected begin failure without body: err=%v called=%v", err, called)
	}
}
