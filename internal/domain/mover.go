package domain

// Capabilities - флаги возможностей движущейся сущности.
// Один и тот же резолвер шага обслуживает и игрока, и клонов;
// различается только набор флагов. Клон не выигрывает, не подбирает
// предметы и не тратит ключи - поэтому его реплей детерминирован.
type Capabilities struct {
	CanWin         bool // касание выхода завершает уровень
	CanCollect     bool // подбор ключей и зелий
	CanUnlockDoors bool // трата ключа на ключевую дверь
}

// PlayerCapabilities - полный набор флагов живого игрока
func PlayerCapabilities() Capabilities {
	return Capabilities{CanWin: true, CanCollect: true, CanUnlockDoors: true}
}

// CloneCapabilities - клон умеет только переключать переключатели
// как побочный эффект занятия клеток
func CloneCapabilities() Capabilities {
	return Capabilities{}
}

// Mover - живой игрок: позиция, ресурсы и след перемещений
type Mover struct {
	Pos    Position
	Facing Direction

	Keys      int
	Energy    int
	EnergyMax int

	Caps    Capabilities
	History *HistoryLog
}

// NewPlayer создает игрока на стартовой позиции уровня
func NewPlayer(start Position, energy, historyCap int) *Mover {
	return &Mover{
		Pos:       start,
		Facing:    DirDown,
		Energy:    energy,
		EnergyMax: energy,
		Caps:      PlayerCapabilities(),
		History:   NewHistoryLog(historyCap),
	}
}

// RestoreEnergy добавляет энергию, не превышая максимум
func (m *Mover) RestoreEnergy(amount int) {
	m.Energy += amount
	if m.Energy > m.EnergyMax {
		m.Energy = m.EnergyMax
	}
}
