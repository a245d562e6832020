package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestRunInTxCommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM expenses").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err = RunInTx(context.Background(), mock, func(q Querier) error {
		_, err := q.Exec(context.Background(), "DELETE FROM expenses WHERE id = $1", int64(7))
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	defer mock.Close()

	sentinel := errors.New("category in use")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = RunInTx(context.Background(), mock, func(q Querier) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx() error = %v, want %v", err, sentinel)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTxRollsBackOnPanic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	func() {
		defer func() {
			if r := recover(); r != "nil category" {
				t.Errorf("recovered %v, want the original panic value", r)
			}
		}()

		_ = RunInTx(context.Background(), mock, func(q Querier) error {
			panic("nil category")
		})
	}()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTxBeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err = RunInTx(context.Background(), mock, func(q Querier) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("RunInTx() error = nil, want begin failure")
	}
	if called {
		t.Error("fn must not run when the transaction cannot begin")
	}
}

func TestRunInTxCommitFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err = RunInTx(context.Background(), mock, func(q Querier) error { return nil })
	if err == nil {
		t.Fatal("RunInTx() error = nil, want commit failure")
	}
}
