package levelpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
)

const sampleLevel = `
name = "Тестовая комната"

map = """
#######
#.S..D#
#..A.B#
#######
"""

[player]
x = 1
y = 2

[[doors]]
lock = "switch"
pos = { x = 5, y = 1 }
requires = [{ x = 2, y = 1 }]

[[portals]]
a = { x = 3, y = 2 }
b = { x = 5, y = 2 }

[[guards]]
pos = { x = 1, y = 1 }
route = [{ x = 1, y = 1 }, { x = 4, y = 1 }]
view_distance = 3

[[terminals]]
pos = { x = 5, y = 1 }
message = "не должно пройти валидацию мира, но парсер пропустит"
`

func TestParse(t *testing.T) {
	ld, err := Parse([]byte(sampleLevel))
	require.NoError(t, err)

	assert.Equal(t, "Тестовая комната", ld.Name)
	// Dimensions are derived from the map when not set explicitly
	assert.Equal(t, 7, ld.Width)
	assert.Equal(t, 4, ld.Height)
	assert.Len(t, ld.Rows, 4)

	assert.Equal(t, domain.Position{X: 1, Y: 2}, ld.PlayerStart)

	require.Len(t, ld.Doors, 1)
	assert.Equal(t, domain.LockSwitch, ld.Doors[0].Lock)
	assert.Equal(t, []domain.Position{{X: 2, Y: 1}}, ld.Doors[0].Required)

	require.Len(t, ld.Portals, 1)
	assert.Equal(t, domain.Position{X: 3, Y: 2}, ld.Portals[0].A)

	require.Len(t, ld.Guards, 1)
	assert.Equal(t, 3, ld.Guards[0].ViewDistance)
	assert.Len(t, ld.Guards[0].Route, 2)

	require.Len(t, ld.Terminals, 1)
}

func TestParseBuildsAValidWorld(t *testing.T) {
	src := `
name = "minimal"

map = """
#####
#..E#
#####
"""

[player]
x = 1
y = 1
`
	ld, err := Parse([]byte(src))
	require.NoError(t, err)

	w, err := ld.BuildWorld()
	require.NoError(t, err)
	assert.True(t, w.HasExit)
}

func TestParseRejects(t *testing.T) {
	t.Run("broken toml", func(t *testing.T) {
		_, err := Parse([]byte(`name = "oops`))
		require.Error(t, err)
	})

	t.Run("empty map", func(t *testing.T) {
		_, err := Parse([]byte(`name = "empty"`))
		require.Error(t, err)
	})

	t.Run("unknown lock kind", func(t *testing.T) {
		_, err := Parse([]byte(`
name = "bad-lock"
map = """
####
#.D#
####
"""
[player]
x = 1
y = 1
[[doors]]
lock = "magnetic"
pos = { x = 2, y = 1 }
`))
		require.Error(t, err)
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	level := `
name = "disk level"
map = """
####
#.E#
####
"""
[player]
x = 1
y = 1
`
	// Names ensure deterministic load order
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02_second.toml"), []byte(level), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_first.toml"), []byte(level), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not a level"), 0o644))

	levels, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, levels, 2)

	// Sorted by filename, not directory order
	assert.Equal(t, "disk level", levels[0].Name)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
}

func TestLoadFileNameFallback(t *testing.T) {
	dir := t.TempDir()
	level := `
map = """
####
#.E#
####
"""
[player]
x = 1
y = 1
`
	path := filepath.Join(dir, "cellar.toml")
	require.NoError(t, os.WriteFile(path, []byte(level), 0o644))

	ld, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cellar", ld.Name)
}
