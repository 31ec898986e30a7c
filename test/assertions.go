package test

import (
	"testing"

	"github.com/cbsinteractive/timeline/timing"
	"github.com/pkg/errors"
)

// AssertWantErr checks err against the sentinel wantErr, which may be nil.
// It returns true when the caller should stop checking results.
func AssertWantErr(err, wantErr error, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr == nil || !errors.Is(err, wantErr) {
			t.Errorf("%s error = %v, wantErr %v", caller, err, wantErr)
		}

		return true
	} else if wantErr != nil {
		t.Errorf("%s expected error %v, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// AssertTime fails the test unless have and want are the same instant.
func AssertTime(have, want timing.Time, caller string, t *testing.T) {
	t.Helper()
	if !have.Equal(want) {
		t.Errorf("%s = %v, want %v", caller, have, want)
	}
}

// AssertRange fails the test unless have and want cover the same interval.
func AssertRange(have, want timing.Range, caller string, t *testing.T) {
	t.Helper()
	if !have.Equal(want) {
		t.Errorf("%s = %v, want %v", caller, have, want)
	}
}
