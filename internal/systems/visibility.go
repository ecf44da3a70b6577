package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

// CanSee проверяет прямую видимость охранника до цели.
//
// Охранники смотрят только вдоль осей: цель видна, лишь когда делит с
// охранником ровно строку или ровно столбец. Диагональ не просматривается
// ни на какой дистанции. Евклидово расстояние не должно превышать радиус
// обзора, и каждая клетка отрезка между ними (включая оба конца) должна
// быть прозрачной.
func CanSee(w *domain.World, from domain.Position, viewDistance int, target domain.Position) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "visibility_system",
		"from":      from,
		"target":    target,
	})

	if !from.SameRowOrColumn(target) {
		return false
	}

	if from.DistanceTo(target) > float64(viewDistance) {
		losLogger.Debug("Target on axis but out of view distance")
		return false
	}

	if from.X == target.X {
		// Вертикальный отрезок
		startY, endY := from.Y, target.Y
		if startY > endY {
			startY, endY = endY, startY
		}
		for y := startY; y <= endY; y++ {
			if !w.IsTransparent(domain.Position{X: from.X, Y: y}) {
				losLogger.WithField("blocked_at", domain.Position{X: from.X, Y: y}).
					Debug("Line of sight blocked")
				return false
			}
		}
		return true
	}

	// Горизонтальный отрезок
	startX, endX := from.X, target.X
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		if !w.IsTransparent(domain.Position{X: x, Y: from.Y}) {
			losLogger.WithField("blocked_at", domain.Position{X: x, Y: from.Y}).
				Debug("Line of sight blocked")
			return false
		}
	}
	return true
}
