package engine

import (
	"fmt"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/levelpack"
)

// Встроенная кампания. Уровни лежат прямо в бинарнике в том же TOML-формате,
// что и внешние файлы из TM_LEVEL_DIR: один парсер, один путь валидации.
var builtinLevels = []string{level1, level2, level3}

// BuiltinLevels парсит встроенный набор уровней.
func BuiltinLevels() ([]*domain.LevelData, error) {
	out := make([]*domain.LevelData, 0, len(builtinLevels))
	for i, src := range builtinLevels {
		ld, err := levelpack.Parse([]byte(src))
		if err != nil {
			return nil, fmt.Errorf("engine: builtin level %d: %w", i+1, err)
		}
		out = append(out, ld)
	}
	return out, nil
}

// Урок первый: переключатель держит дверь открытой, только пока на нем
// кто-то стоит. Пройти можно лишь оставив на нем свое прошлое "я".
const level1 = `
name = "Первая петля"

map = """
##########
#...S...T#
#........#
####D#####
#....E...#
#........#
##########
"""

[player]
x = 1
y = 1

[[doors]]
lock = "switch"
pos = { x = 4, y = 3 }
requires = [{ x = 4, y = 1 }]

[[terminals]]
pos = { x = 8, y = 1 }
message = "Дневник смотрителя: дверь слушается пола, а не рычага. Пол должен быть нагружен."
`

// Урок второй: дверь с двумя переключателями и первый охранник.
const level2 = `
name = "Смена караула"

map = """
############
#S.....#..T#
#......#.E.#
#..##..D...#
#..##..#...#
#S.....#..P#
#......#...#
############
"""

[player]
x = 1
y = 3

[[doors]]
lock = "switch"
pos = { x = 7, y = 3 }
requires = [{ x = 1, y = 1 }, { x = 1, y = 5 }]

[[guards]]
pos = { x = 5, y = 1 }
route = [{ x = 5, y = 1 }, { x = 5, y = 6 }]
view_distance = 4

[[terminals]]
pos = { x = 10, y = 1 }
message = "Обрывок приказа: пост не покидать. Даже если в коридоре двое одинаковых нарушителей."
`

// Урок третий: ключ, портал и дверь, которую нельзя открыть переключателем.
const level3 = `
name = "Ключ и стражи"

map = """
############
#...#....#E#
#.K.#....#.#
#...#....D.#
#.A.#....#.#
#...#.B..#.#
#T..#....#.#
############
"""

[player]
x = 1
y = 1

[[doors]]
lock = "key"
pos = { x = 9, y = 3 }

[[portals]]
a = { x = 2, y = 4 }
b = { x = 6, y = 5 }

[[guards]]
pos = { x = 6, y = 1 }
route = [{ x = 5, y = 1 }, { x = 8, y = 1 }, { x = 8, y = 6 }, { x = 5, y = 6 }]

[[terminals]]
pos = { x = 1, y = 6 }
message = "Карандашом на стене: порталы не спрашивают разрешения. Двери с замком - спрашивают."
`
