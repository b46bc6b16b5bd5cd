package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}

	if !IsNotFound(NewNotFound("todo")) {
		t.Fatal("expected not found")
	}
	if !IsForbidden(NewForbidden("not the owner")) {
		t.Fatal("expected forbidden")
	}
	if IsAlreadyExists(err) {
		t.Fatal("kinds must not overlap")
	}
}
