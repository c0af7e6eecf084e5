package games_test

import (
	"testing"

	"github.com/questboard/questboard/internal/app/store/games"
	"github.com/questboard/questboard/internal/domain/models"
	"github.com/questboard/questboard/internal/testutil"
)

func setup(t *testing.T) (*games.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return games.New(db), testutil.NewFixtures(t, db)
}

func gameIDs(gs []models.Game) map[string]bool {
	out := make(map[string]bool, len(gs))
	for _, g := range gs {
		out[g.ID.Hex()] = true
	}
	return out
}

func TestFind_GuildScope(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := fx.CreateGame(ctx, "g1", "dm#0001", 100, nil)
	fx.CreateGame(ctx, "g9", "dm#0001", 100, nil)

	got, err := store.Find(ctx, games.Query{Guilds: []string{"g1", "g2"}})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != in.ID {
		t.Fatalf("expected only the g1 game, got %d games", len(got))
	}
}

func TestFind_EmptyGuildSet(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateGame(ctx, "g1", "dm#0001", 100, nil)

	got, err := store.Find(ctx, games.Query{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no games for an empty guild set, got %d", len(got))
	}
}

func TestFind_MineTagMatchesDMOrRoster(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	running := fx.CreateGame(ctx, "g1", "alice#0001", 100, nil)
	signedUp := fx.CreateGame(ctx, "g1", "dm#0009", 200, func(g *models.Game) {
		g.Reserved = "@bob#0002\n@alice#0001"
	})
	fx.CreateGame(ctx, "g1", "dm#0009", 300, func(g *models.Game) {
		g.Reserved = "@carol#0003"
	})

	got, err := store.Find(ctx, games.Query{Guilds: []string{"g1"}, MineTag: "alice#0001"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	ids := gameIDs(got)
	if len(got) != 2 || !ids[running.ID.Hex()] || !ids[signedUp.ID.Hex()] {
		t.Fatalf("expected the run game and the signed-up game, got %d games", len(got))
	}
}

func TestFind_MineTagWithRegexMetacharacters(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Tags with regex metacharacters must match literally.
	target := fx.CreateGame(ctx, "g1", "dm#0009", 100, func(g *models.Game) {
		g.Reserved = "@[TPK] eve#0005"
	})
	fx.CreateGame(ctx, "g1", "dm#0009", 200, func(g *models.Game) {
		g.Reserved = "@xTPKx eve#0005"
	})

	got, err := store.Find(ctx, games.Query{Guilds: []string{"g1"}, MineTag: "[TPK] eve#0005"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != target.ID {
		t.Fatalf("expected exactly the literal-bracket match, got %d games", len(got))
	}
}

func TestFind_AfterAndExcludeDM(t *testing.T) {
	store, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateGame(ctx, "g1", "dm#0009", 100, nil) // past
	future := fx.CreateGame(ctx, "g1", "dm#0009", 900, nil)
	fx.CreateGame(ctx, "g1", "alice#0001", 950, nil) // viewer's own

	got, err := store.Find(ctx, games.Query{
		Guilds:    []string{"g1"},
		After:     500,
		ExcludeDM: "alice#0001",
	})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != future.ID {
		t.Fatalf("expected only the future game by another DM, got %d games", len(got))
	}
}

func TestSaveAndGet(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := models.Game{
		S:         "g1",
		Adventure: "Sunless Citadel",
		DM:        "dm#0009",
		Date:      "2021-03-04",
		Time:      "19:00",
		Players:   5,
		Timestamp: 100,
	}

	id, written, err := store.Save(ctx, g)
	if err != nil || !written {
		t.Fatalf("Save failed: written=%v err=%v", written, err)
	}

	got, found, err := store.Get(ctx, id)
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if got.Adventure != "Sunless Citadel" {
		t.Errorf("adventure: got %q", got.Adventure)
	}

	got.Players = 6
	if _, written, err := store.Save(ctx, got); err != nil || !written {
		t.Fatalf("update Save failed: written=%v err=%v", written, err)
	}
	updated, _, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if updated.Players != 6 {
		t.Errorf("players after update: got %d", updated.Players)
	}
}
