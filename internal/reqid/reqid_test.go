package reqid

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc")
	if got := FromContext(ctx); got != "abc" {
		t.Errorf("FromContext() = %q, want abc", got)
	}
}

func TestMissing(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Errorf("FromContext() = %q, want empty", got)
	}
}

func TestNewIsUUID(t *testing.T) {
	id := New()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("New() = %q is not a UUID: %v", id, err)
	}
	if New() == id {
		t.Error("New() returned the same ID twice")
	}
}
