package oauthstates_test

import (
	"testing"
	"time"

	"github.com/questboard/questboard/internal/app/store/oauthstates"
	"github.com/questboard/questboard/internal/testutil"
)

func setup(t *testing.T) *oauthstates.Store {
	t.Helper()
	return oauthstates.New(testutil.SetupTestDB(t))
}

func TestValidate_ConsumesState(t *testing.T) {
	store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-1", "/games/upcoming", time.Now().UTC().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid || returnURL != "/games/upcoming" {
		t.Errorf("Validate: got valid=%v returnURL=%q", valid, returnURL)
	}

	// One-time use: the second validation fails.
	_, valid, err = store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if valid {
		t.Error("expected a consumed state to be invalid")
	}
}

func TestValidate_Expired(t *testing.T) {
	store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-1", "", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, valid, err := store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("expected an expired state to be invalid")
	}
}

func TestValidate_Unknown(t *testing.T) {
	store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, valid, err := store.Validate(ctx, "never-issued")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("expected an unknown state to be invalid")
	}
}
