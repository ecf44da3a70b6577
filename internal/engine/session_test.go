package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/internal/systems"
)

// testConfig removes all pacing so every Advance resolves a step.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MoveCooldown = 0
	cfg.PatrolWait = 0
	cfg.AlertDuration = 0
	return cfg
}

func corridorLevel() *domain.LevelData {
	return &domain.LevelData{
		Name:   "corridor",
		Width:  6,
		Height: 3,
		Rows: []string{
			"######",
			"#...E#",
			"######",
		},
		PlayerStart: domain.Position{X: 1, Y: 1},
	}
}

func TestSessionPlayerStep(t *testing.T) {
	s, err := NewSession(testConfig(), []*domain.LevelData{corridorLevel()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	s.QueueStep(1, 0)
	s.Advance(0.1)

	if s.Player.Pos != (domain.Position{X: 2, Y: 1}) {
		t.Errorf("pos = %v, want (2,1)", s.Player.Pos)
	}
	// The pre-step position went into the trail
	if s.Player.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", s.Player.History.Len())
	}

	// No new command: the player stands still
	s.Advance(0.1)
	if s.Player.Pos != (domain.Position{X: 2, Y: 1}) {
		t.Error("player must not move without a queued step")
	}
}

func TestSessionMoveCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.MoveCooldown = 10 * time.Second // effectively forever for this test
	s, err := NewSession(cfg, []*domain.LevelData{corridorLevel()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	s.QueueStep(1, 0)
	s.Advance(0.1)
	if s.Player.Pos != (domain.Position{X: 2, Y: 1}) {
		t.Fatal("first step must pass immediately")
	}

	// Second step arrives during the cooldown window: it stays queued
	s.QueueStep(1, 0)
	s.Advance(0.1)
	if s.Player.Pos != (domain.Position{X: 2, Y: 1}) {
		t.Error("step during cooldown must not resolve")
	}

	// After the cooldown elapses the queued step fires
	s.Advance(11)
	if s.Player.Pos != (domain.Position{X: 3, Y: 1}) {
		t.Errorf("queued step must resolve after cooldown, pos = %v", s.Player.Pos)
	}
}

func TestSessionWin(t *testing.T) {
	s, err := NewSession(testConfig(), []*domain.LevelData{corridorLevel(), corridorLevel()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Walk to the exit: three steps right, the last one touches E
	for i := 0; i < 3; i++ {
		s.QueueStep(1, 0)
		s.Advance(0.1)
	}

	if !s.LevelCompleted {
		t.Fatal("touching the exit must complete the level")
	}
	// The exit is touched, not occupied
	if s.Player.Pos != (domain.Position{X: 3, Y: 1}) {
		t.Errorf("pos = %v, want (3,1)", s.Player.Pos)
	}

	// The frozen session ignores further input
	s.QueueStep(-1, 0)
	s.Advance(0.1)
	if s.Player.Pos != (domain.Position{X: 3, Y: 1}) {
		t.Error("completed level must freeze the simulation")
	}

	// Next level resets everything
	if err := s.AdvanceLevel(); err != nil {
		t.Fatalf("AdvanceLevel failed: %v", err)
	}
	if s.LevelCompleted || s.Player.Pos != (domain.Position{X: 1, Y: 1}) {
		t.Error("next level must start fresh")
	}
	if s.Player.History.Len() != 0 {
		t.Error("trail must reset on level change")
	}

	// Completing the last level leaves nowhere to go
	for i := 0; i < 3; i++ {
		s.QueueStep(1, 0)
		s.Advance(0.1)
	}
	if err := s.AdvanceLevel(); !errors.Is(err, ErrNoMoreLevels) {
		t.Errorf("err = %v, want ErrNoMoreLevels", err)
	}
}

func TestSessionAdvanceLevelRequiresWin(t *testing.T) {
	s, err := NewSession(testConfig(), []*domain.LevelData{corridorLevel()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := s.AdvanceLevel(); !errors.Is(err, ErrLevelNotDone) {
		t.Errorf("err = %v, want ErrLevelNotDone", err)
	}
}

func TestSessionCloneLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxClones = 1
	s, err := NewSession(cfg, []*domain.LevelData{corridorLevel()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Build up a trail to replay
	s.QueueStep(1, 0)
	s.Advance(0.1)
	s.QueueStep(1, 0)
	s.Advance(0.1)

	if err := s.SpawnClone(1); err != nil {
		t.Fatalf("first clone rejected: %v", err)
	}
	if s.Player.Energy != cfg.StartEnergy-1 {
		t.Errorf("energy = %d, want %d", s.Player.Energy, cfg.StartEnergy-1)
	}

	// Cap rejection happens before the energy check and burns nothing
	if err := s.SpawnClone(1); !errors.Is(err, systems.ErrCloneLimit) {
		t.Fatalf("err = %v, want ErrCloneLimit", err)
	}
	if s.Player.Energy != cfg.StartEnergy-1 {
		t.Error("rejected clone must not burn energy")
	}
}

func TestSessionCloneReleasesSwitchOnExpiry(t *testing.T) {
	ld := &domain.LevelData{
		Name:   "switch-room",
		Width:  7,
		Height: 3,
		Rows: []string{
			"#######",
			"#.S..D#",
			"#######",
		},
		PlayerStart: domain.Position{X: 1, Y: 1},
		Doors: []domain.DoorData{{
			Pos:      domain.Position{X: 5, Y: 1},
			Lock:     domain.LockSwitch,
			Required: []domain.Position{{X: 2, Y: 1}},
		}},
	}

	s, err := NewSession(testConfig(), []*domain.LevelData{ld})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Walk across the switch and one tile beyond
	for i := 0; i < 3; i++ {
		s.QueueStep(1, 0)
		s.Advance(0.1)
	}
	// Trail is now (1,1) (2,1) (3,1); clone with steps=1 replays (1,1) (2,1)
	if err := s.SpawnClone(1); err != nil {
		t.Fatalf("SpawnClone failed: %v", err)
	}

	sw := domain.Position{X: 2, Y: 1}

	s.Advance(0.1) // clone -> (1,1)
	if len(s.Clones) != 1 {
		t.Fatal("clone must still be alive")
	}

	s.Advance(0.1) // clone -> (2,1), finishes, session removes it
	if len(s.Clones) != 0 {
		t.Error("expired clone must leave the session")
	}
	if s.World.IsSwitchActive(sw) {
		t.Error("switch under an expired clone must release")
	}
	if s.World.TileAt(domain.Position{X: 5, Y: 1}) != domain.TileDoorClosed {
		t.Error("door must be closed once the clone is gone")
	}
}

func TestSessionCapture(t *testing.T) {
	ld := &domain.LevelData{
		Name:   "guard-post",
		Width:  5,
		Height: 3,
		Rows: []string{
			"#####",
			"#...#",
			"#####",
		},
		PlayerStart: domain.Position{X: 1, Y: 1},
		Guards:      []domain.GuardData{{Pos: domain.Position{X: 3, Y: 1}}},
	}

	s, err := NewSession(testConfig(), []*domain.LevelData{ld})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// The guard spots the player down the corridor, alerts, chases, captures.
	for i := 0; i < 10 && !s.Captured; i++ {
		s.Advance(0.1)
	}
	if !s.Captured {
		t.Fatal("stationary player in plain sight must get captured")
	}

	// Captured session is frozen
	tickBeforeGuard := s.Guards[0].Pos
	s.QueueStep(1, 0)
	s.Advance(0.1)
	if s.Player.Pos != (domain.Position{X: 1, Y: 1}) || s.Guards[0].Pos != tickBeforeGuard {
		t.Error("captured session must freeze")
	}

	// Restart brings the level back to its initial state
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if s.Captured {
		t.Error("restart must clear the captured flag")
	}
	if s.Guards[0].Pos != (domain.Position{X: 3, Y: 1}) {
		t.Errorf("guard pos after restart = %v, want (3,1)", s.Guards[0].Pos)
	}
	if s.Player.Energy != testConfig().StartEnergy {
		t.Error("restart must refill energy")
	}
}
