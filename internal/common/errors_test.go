package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	for _, sentinel := range []error{ErrNotFound, ErrNotAuthenticated, ErrSessionExpired, ErrCorruptRecord} {
		wrapped := fmt.Errorf("load: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Fatalf("errors.Is failed for %v", sentinel)
		}
	}
}
