package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(stderrors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := Invalid("name", "must not be empty")
	if !stderrors.Is(err, ErrValidation) {
		t.Error("expected validation error to match ErrValidation")
	}
	if err.Error() != "name must not be empty" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("create habit: %w", err)
	var ve *ValidationError
	if !stderrors.As(wrapped, &ve) || ve.Field != "name" {
		t.Errorf("expected to unwrap ValidationError, got %v", ve)
	}
}

func TestPersistenceError(t *testing.T) {
	if Persistence("save", nil) != nil {
		t.Fatal("expected nil for nil cause")
	}

	err := Persistence("save", fs.ErrPermission)
	if !stderrors.Is(err, ErrPersistence) {
		t.Error("expected match on ErrPersistence")
	}
	if !stderrors.Is(err, fs.ErrPermission) {
		t.Error("expected match on the underlying cause")
	}
	if stderrors.Is(err, ErrValidation) {
		t.Error("persistence error must not match ErrValidation")
	}
}
