package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapStoreCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"record not found", gorm.ErrRecordNotFound, CodeNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, CodeConflict},
		{"pg fk", &pgconn.PgError{Code: "23503"}, CodeValidation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: raw_files.dataset_id, raw_files.path"), CodeConflict},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), CodeValidation},
		{"other", errors.New("disk I/O error"), CodeStore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapStore("op", tc.err)
			if !IsCode(got, tc.want) {
				t.Fatalf("unexpected code: got=%q want=%q (%v)", CodeOf(got), tc.want, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("cause should stay reachable through Unwrap")
			}
		})
	}
}

func TestMapStorePassthrough(t *testing.T) {
	in := NotFound("datasets.get", "dataset %d not found", 4)
	if out := MapStore("other", fmt.Errorf("wrapped: %w", in)); CodeOf(out) != CodeNotFound {
		t.Fatalf("expected not_found passthrough, got=%v", out)
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(NotFound("op", "x")); got != http.StatusNotFound {
		t.Fatalf("not found: got=%d", got)
	}
	if got := HTTPStatus(Validation("op", "x")); got != http.StatusBadRequest {
		t.Fatalf("validation: got=%d", got)
	}
	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("plain: got=%d", got)
	}
}

func TestErrorString(t *testing.T) {
	err := New(CodeStore, "raw_files.add", "boom", nil)
	if err.Error() != "raw_files.add: boom (store)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
