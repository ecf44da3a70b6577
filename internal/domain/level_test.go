package domain

import (
	"errors"
	"testing"
)

// base returns a minimal valid level that individual cases then break.
func base() LevelData {
	return LevelData{
		Name:   "valid",
		Width:  7,
		Height: 4,
		Rows: []string{
			"#######",
			"#S..D.#",
			"#..A.B#",
			"#######",
		},
		PlayerStart: Position{X: 1, Y: 2},
		Doors: []DoorData{{
			Pos:      Position{X: 4, Y: 1},
			Lock:     LockSwitch,
			Required: []Position{{X: 1, Y: 1}},
		}},
		Portals: []PortalPair{{A: Position{X: 3, Y: 2}, B: Position{X: 5, Y: 2}}},
	}
}

func TestBuildWorldValid(t *testing.T) {
	ld := base()
	w, err := ld.BuildWorld()
	if err != nil {
		t.Fatalf("valid level rejected: %v", err)
	}
	if w.Width != 7 || w.Height != 4 {
		t.Errorf("world size = %dx%d, want 7x4", w.Width, w.Height)
	}
}

func TestBuildWorldRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LevelData)
	}{
		{"row width mismatch", func(ld *LevelData) {
			ld.Rows[1] = "####"
		}},
		{"row count mismatch", func(ld *LevelData) {
			ld.Rows = ld.Rows[:3]
		}},
		{"unknown glyph", func(ld *LevelData) {
			ld.Rows[2] = "#..A.X#"
		}},
		{"door record without door tile", func(ld *LevelData) {
			ld.Doors[0].Pos = Position{X: 2, Y: 1}
		}},
		{"door tile without record", func(ld *LevelData) {
			ld.Doors = nil
		}},
		{"duplicate door record", func(ld *LevelData) {
			ld.Doors = append(ld.Doors, ld.Doors[0])
		}},
		{"switch door with no switches", func(ld *LevelData) {
			ld.Doors[0].Required = nil
		}},
		{"required switch is not a switch tile", func(ld *LevelData) {
			ld.Doors[0].Required = []Position{{X: 2, Y: 2}}
		}},
		{"key door with switch list", func(ld *LevelData) {
			ld.Doors[0].Lock = LockKey
		}},
		{"portal pair off the portal tiles", func(ld *LevelData) {
			ld.Portals[0].B = Position{X: 1, Y: 2}
		}},
		{"self-paired portal", func(ld *LevelData) {
			ld.Portals[0].B = ld.Portals[0].A
		}},
		{"unpaired portal tile", func(ld *LevelData) {
			ld.Portals = nil
		}},
		{"player start inside wall", func(ld *LevelData) {
			ld.PlayerStart = Position{X: 0, Y: 0}
		}},
		{"player start on closed door", func(ld *LevelData) {
			ld.PlayerStart = Position{X: 4, Y: 1}
		}},
		{"terminal without tile", func(ld *LevelData) {
			ld.Terminals = []TerminalData{{Pos: Position{X: 2, Y: 2}, Message: "hi"}}
		}},
		{"guard start inside wall", func(ld *LevelData) {
			ld.Guards = []GuardData{{Pos: Position{X: 0, Y: 0}}}
		}},
		{"guard waypoint out of bounds", func(ld *LevelData) {
			ld.Guards = []GuardData{{
				Pos:   Position{X: 2, Y: 2},
				Route: []Position{{X: 2, Y: 2}, {X: 50, Y: 2}},
			}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ld := base()
			// Deep-copy the mutable slices so cases do not leak into each other
			ld.Rows = append([]string(nil), ld.Rows...)
			ld.Doors = append([]DoorData(nil), ld.Doors...)
			ld.Portals = append([]PortalPair(nil), ld.Portals...)

			tc.mutate(&ld)

			_, err := ld.BuildWorld()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrLevelData) {
				t.Errorf("error %v is not ErrLevelData", err)
			}
		})
	}
}

func TestBuildWorldDerivesSwitchesAndItems(t *testing.T) {
	ld := LevelData{
		Name:   "derive",
		Width:  6,
		Height: 3,
		Rows: []string{
			"######",
			"#SKPE#",
			"######",
		},
		PlayerStart: Position{X: 2, Y: 1},
	}
	// The key tile is the player start here; rebuild with a floor start
	ld.Rows[1] = "#SKP.#"
	ld.PlayerStart = Position{X: 4, Y: 1}

	w, err := ld.BuildWorld()
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}

	if w.TileAt(Position{X: 1, Y: 1}) != TileSwitch {
		t.Error("switch glyph not derived")
	}
	if w.TileAt(Position{X: 2, Y: 1}) != TileItemKey {
		t.Error("key glyph not derived")
	}
	if w.TileAt(Position{X: 3, Y: 1}) != TileItemPotion {
		t.Error("potion glyph not derived")
	}
	if w.IsSwitchActive(Position{X: 1, Y: 1}) {
		t.Error("switches must start inactive")
	}
}

func TestBuildWorldExit(t *testing.T) {
	ld := LevelData{
		Name:   "exit",
		Width:  5,
		Height: 3,
		Rows: []string{
			"#####",
			"#.E.#",
			"#####",
		},
		PlayerStart: Position{X: 1, Y: 1},
	}
	w, err := ld.BuildWorld()
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}
	if !w.HasExit || w.ExitPos != (Position{X: 2, Y: 1}) {
		t.Errorf("exit not registered, HasExit=%v pos=%v", w.HasExit, w.ExitPos)
	}
}
