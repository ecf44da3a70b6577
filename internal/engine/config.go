package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска движка. Все значения читаются из
// окружения; дефолты совпадают с классическими правилами головоломки.
type Config struct {
	// Addr - адрес HTTP-сервера.
	Addr string `env:"TM_ADDR" envDefault:":8080"`

	// LevelDir - каталог с TOML-уровнями. Пустое значение означает
	// встроенный набор уровней.
	LevelDir string `env:"TM_LEVEL_DIR"`

	// MaxClones - сколько клонов может существовать одновременно.
	MaxClones int `env:"TM_MAX_CLONES" envDefault:"3"`

	// HistoryCap - максимальная длина следа игрока.
	HistoryCap int `env:"TM_MAX_HISTORY" envDefault:"100"`

	// StartEnergy - запас темпоральной энергии на уровень.
	StartEnergy int `env:"TM_START_ENERGY" envDefault:"3"`

	// MoveCooldown - минимальный интервал между шагами игрока.
	MoveCooldown time.Duration `env:"TM_MOVE_COOLDOWN" envDefault:"200ms"`

	// AlertDuration - сколько охранник остается в режиме тревоги.
	AlertDuration time.Duration `env:"TM_ALERT_DURATION" envDefault:"3s"`

	// PatrolWait - пауза охранника на каждой точке маршрута.
	PatrolWait time.Duration `env:"TM_PATROL_WAIT" envDefault:"1500ms"`

	// TickInterval - период тика симуляции.
	TickInterval time.Duration `env:"TM_TICK_INTERVAL" envDefault:"100ms"`
}

// LoadConfig читает конфиг из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfig возвращает конфиг с дефолтами, не трогая окружение.
// Используется в тестах и у безголового агента.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		MaxClones:     3,
		HistoryCap:    100,
		StartEnergy:   3,
		MoveCooldown:  200 * time.Millisecond,
		AlertDuration: 3 * time.Second,
		PatrolWait:    1500 * time.Millisecond,
		TickInterval:  100 * time.Millisecond,
	}
}

func (c Config) validate() error {
	if c.MaxClones < 1 {
		return fmt.Errorf("engine: max clones must be positive, got %d", c.MaxClones)
	}
	if c.HistoryCap < 2 {
		// След короче двух записей не дает построить ни одного реплея.
		return fmt.Errorf("engine: history cap too small: %d", c.HistoryCap)
	}
	if c.StartEnergy < 0 {
		return fmt.Errorf("engine: negative start energy: %d", c.StartEnergy)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("engine: tick interval must be positive, got %s", c.TickInterval)
	}
	return nil
}
