package domain

import "testing"

// buildTestWorld assembles a small world from glyph rows.
func buildTestWorld(t *testing.T, rows []string, ld LevelData) *World {
	t.Helper()
	ld.Rows = rows
	ld.Height = len(rows)
	ld.Width = len(rows[0])
	w, err := ld.BuildWorld()
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}
	return w
}

func TestWorldBounds(t *testing.T) {
	w := buildTestWorld(t, []string{
		"###",
		"#.#",
		"###",
	}, LevelData{Name: "bounds", PlayerStart: Position{X: 1, Y: 1}})

	// Out of bounds reads as wall, never panics
	if got := w.TileAt(Position{X: -1, Y: 0}); got != TileWall {
		t.Errorf("OOB tile = %v, want WALL", got)
	}
	if got := w.TileAt(Position{X: 3, Y: 3}); got != TileWall {
		t.Errorf("OOB tile = %v, want WALL", got)
	}
	if w.IsWalkable(Position{X: -5, Y: -5}) {
		t.Error("OOB must not be walkable")
	}
}

func TestSwitchDoorSubsetRule(t *testing.T) {
	// Door requires BOTH switches; a single one is not enough.
	w := buildTestWorld(t, []string{
		"#######",
		"#S.S.D#",
		"#.....#",
		"#######",
	}, LevelData{
		Name:        "two-switches",
		PlayerStart: Position{X: 1, Y: 2},
		Doors: []DoorData{{
			Pos:      Position{X: 5, Y: 1},
			Lock:     LockSwitch,
			Required: []Position{{X: 1, Y: 1}, {X: 3, Y: 1}},
		}},
	})

	door := Position{X: 5, Y: 1}
	s1 := Position{X: 1, Y: 1}
	s2 := Position{X: 3, Y: 1}

	if w.TileAt(door) != TileDoorClosed {
		t.Fatal("door must start closed")
	}

	w.ActivateSwitch(s1)
	if w.TileAt(door) != TileDoorClosed {
		t.Error("one of two switches must not open the door")
	}

	w.ActivateSwitch(s2)
	if w.TileAt(door) != TileDoorOpen {
		t.Error("both switches active must open the door")
	}
	if !w.IsWalkable(door) {
		t.Error("open door must be walkable")
	}

	// Releasing either switch closes the door again
	w.DeactivateSwitch(s1)
	if w.TileAt(door) != TileDoorClosed {
		t.Error("releasing a required switch must close the door")
	}
	if w.IsWalkable(door) {
		t.Error("closed door must not be walkable")
	}
}

func TestSwitchIdempotence(t *testing.T) {
	w := buildTestWorld(t, []string{
		"#####",
		"#S.D#",
		"#...#",
		"#####",
	}, LevelData{
		Name:        "idem",
		PlayerStart: Position{X: 2, Y: 2},
		Doors: []DoorData{{
			Pos:      Position{X: 3, Y: 1},
			Lock:     LockSwitch,
			Required: []Position{{X: 1, Y: 1}},
		}},
	})

	sw := Position{X: 1, Y: 1}
	w.ActivateSwitch(sw)
	w.ActivateSwitch(sw) // second press is a no-op
	if !w.IsSwitchActive(sw) {
		t.Fatal("switch must stay active")
	}

	w.DeactivateSwitch(sw)
	w.DeactivateSwitch(sw) // second release is a no-op
	if w.IsSwitchActive(sw) {
		t.Fatal("switch must stay inactive")
	}

	// Unregistered position is ignored silently
	w.ActivateSwitch(Position{X: 2, Y: 2})
	if w.TileAt(Position{X: 3, Y: 1}) != TileDoorClosed {
		t.Error("floor tile must not act as a switch")
	}
}

func TestKeyDoorIgnoresSwitches(t *testing.T) {
	w := buildTestWorld(t, []string{
		"#####",
		"#S.D#",
		"#...#",
		"#####",
	}, LevelData{
		Name:        "keydoor",
		PlayerStart: Position{X: 2, Y: 2},
		Doors: []DoorData{{
			Pos:  Position{X: 3, Y: 1},
			Lock: LockKey,
		}},
	})

	door := Position{X: 3, Y: 1}

	// Switch graph must not touch key doors
	w.ActivateSwitch(Position{X: 1, Y: 1})
	if w.TileAt(door) != TileDoorClosed {
		t.Error("switch must not open a key door")
	}

	// Key unlock is one-way
	if !w.OpenDoorWithKey(door) {
		t.Fatal("key unlock failed")
	}
	if w.TileAt(door) != TileDoorOpen {
		t.Error("key door must be open after unlock")
	}
	w.DeactivateSwitch(Position{X: 1, Y: 1})
	if w.TileAt(door) != TileDoorOpen {
		t.Error("key door must stay open forever")
	}

	// Unlocking something that is not a closed door fails
	if w.OpenDoorWithKey(Position{X: 2, Y: 2}) {
		t.Error("floor must not be unlockable")
	}
}

func TestPortalsAndItems(t *testing.T) {
	w := buildTestWorld(t, []string{
		"#######",
		"#A...B#",
		"#K...P#",
		"#######",
	}, LevelData{
		Name:        "portals",
		PlayerStart: Position{X: 2, Y: 1},
		Portals:     []PortalPair{{A: Position{X: 1, Y: 1}, B: Position{X: 5, Y: 1}}},
	})

	// Portal pairing works in both directions
	if dst, ok := w.PairedPortal(Position{X: 1, Y: 1}); !ok || dst != (Position{X: 5, Y: 1}) {
		t.Errorf("A->B pairing broken, got %v ok=%v", dst, ok)
	}
	if dst, ok := w.PairedPortal(Position{X: 5, Y: 1}); !ok || dst != (Position{X: 1, Y: 1}) {
		t.Errorf("B->A pairing broken, got %v ok=%v", dst, ok)
	}
	if _, ok := w.PairedPortal(Position{X: 2, Y: 1}); ok {
		t.Error("floor must not be a portal")
	}

	// Removing an item turns the tile into floor
	key := Position{X: 1, Y: 2}
	if w.TileAt(key) != TileItemKey {
		t.Fatal("expected key tile")
	}
	w.RemoveItem(key)
	if w.TileAt(key) != TileFloor {
		t.Error("picked up item must leave floor behind")
	}
}

func TestTransparency(t *testing.T) {
	w := buildTestWorld(t, []string{
		"#####",
		"#.SD#",
		"#...#",
		"#####",
	}, LevelData{
		Name:        "see",
		PlayerStart: Position{X: 1, Y: 1},
		Doors: []DoorData{{
			Pos:      Position{X: 3, Y: 1},
			Lock:     LockSwitch,
			Required: []Position{{X: 2, Y: 1}},
		}},
	})

	if w.IsTransparent(Position{X: 0, Y: 0}) {
		t.Error("wall must block sight")
	}
	if w.IsTransparent(Position{X: 3, Y: 1}) {
		t.Error("closed door must block sight")
	}
	if !w.IsTransparent(Position{X: 2, Y: 1}) {
		t.Error("switch must not block sight")
	}

	w.ActivateSwitch(Position{X: 2, Y: 1})
	if !w.IsTransparent(Position{X: 3, Y: 1}) {
		t.Error("open door must not block sight")
	}
}
