// Package levelpack загружает записи данных уровней из TOML-файлов.
// Это "внешний поставщик уровней" с точки зрения ядра симуляции: пакет
// только десериализует и передает LevelData, вся валидация структуры
// происходит при сборке мира.
package levelpack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
)

// levelFile - TOML-схема файла уровня
type levelFile struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Map    string `toml:"map"`

	Player coord `toml:"player"`

	Doors     []doorEntry     `toml:"doors"`
	Portals   []portalEntry   `toml:"portals"`
	Guards    []guardEntry    `toml:"guards"`
	Terminals []terminalEntry `toml:"terminals"`
}

type coord struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

func (c coord) pos() domain.Position {
	return domain.Position{X: c.X, Y: c.Y}
}

type doorEntry struct {
	Pos      coord   `toml:"pos"`
	Lock     string  `toml:"lock"`
	Requires []coord `toml:"requires"`
}

type portalEntry struct {
	A coord `toml:"a"`
	B coord `toml:"b"`
}

type guardEntry struct {
	Pos          coord   `toml:"pos"`
	Route        []coord `toml:"route"`
	ViewDistance int     `toml:"view_distance"`
}

type terminalEntry struct {
	Pos     coord  `toml:"pos"`
	Message string `toml:"message"`
}

// Parse десериализует один TOML-уровень в LevelData.
// Размеры, не заданные явно, выводятся из карты.
func Parse(data []byte) (*domain.LevelData, error) {
	var lf levelFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}

	rows := splitMap(lf.Map)
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse level %q: empty map", lf.Name)
	}

	ld := &domain.LevelData{
		Name:        lf.Name,
		Width:       lf.Width,
		Height:      lf.Height,
		Rows:        rows,
		PlayerStart: lf.Player.pos(),
	}
	if ld.Width == 0 {
		ld.Width = len(rows[0])
	}
	if ld.Height == 0 {
		ld.Height = len(rows)
	}

	for _, d := range lf.Doors {
		lock, ok := domain.ParseLockKind(d.Lock)
		if !ok {
			return nil, fmt.Errorf("parse level %q: door at (%d,%d) has unknown lock %q", lf.Name, d.Pos.X, d.Pos.Y, d.Lock)
		}
		dd := domain.DoorData{Pos: d.Pos.pos(), Lock: lock}
		for _, r := range d.Requires {
			dd.Required = append(dd.Required, r.pos())
		}
		ld.Doors = append(ld.Doors, dd)
	}

	for _, p := range lf.Portals {
		ld.Portals = append(ld.Portals, domain.PortalPair{A: p.A.pos(), B: p.B.pos()})
	}

	for _, g := range lf.Guards {
		gd := domain.GuardData{Pos: g.Pos.pos(), ViewDistance: g.ViewDistance}
		for _, wp := range g.Route {
			gd.Route = append(gd.Route, wp.pos())
		}
		ld.Guards = append(ld.Guards, gd)
	}

	for _, t := range lf.Terminals {
		ld.Terminals = append(ld.Terminals, domain.TerminalData{Pos: t.Pos.pos(), Message: t.Message})
	}

	return ld, nil
}

// LoadFile читает и парсит один файл уровня
func LoadFile(path string) (*domain.LevelData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level file: %w", err)
	}
	ld, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if ld.Name == "" {
		ld.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ld, nil
}

// LoadDir загружает все *.toml уровни каталога, отсортированные по имени
// файла, чтобы level01.toml шел раньше level02.toml.
func LoadDir(dir string) ([]*domain.LevelData, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read level dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no *.toml levels in %s", dir)
	}

	levels := make([]*domain.LevelData, 0, len(names))
	for _, name := range names {
		ld, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		levels = append(levels, ld)
	}
	return levels, nil
}

// splitMap режет многострочную карту на строки, отбрасывая пустые края,
// которые неизбежны при TOML-литерале """...""".
func splitMap(m string) []string {
	raw := strings.Split(strings.ReplaceAll(m, "\r\n", "\n"), "\n")
	var rows []string
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}
