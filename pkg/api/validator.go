package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	return nil
}

func (p TimeTravelPayload) Validate() error {
	if p.Steps < 1 {
		return errors.New("steps must be at least 1")
	}
	return nil
}
