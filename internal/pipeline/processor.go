package pipeline

import (
	"errors"
	"time"

	"xplogd-live/internal/codec"
)

var ErrInvalidCoords = errors.New("pipeline: coordinates out of range")

const (
	feetPerMeter = 3.28084
	knotsPerMS   = 1.94384
	fpmPerMS     = 196.85
)

func MetersToFeet(m float64) int { return int(m * feetPerMeter) }

func MetersPerSecondToKnots(v float64) int { return int(v * knotsPerMS) }

func MetersPerSecondToFPM(v float64) int { return int(v * fpmPerMS) }

func coordsValid(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// BuildPosition convierte un frame del plugin en una Position con
// timestamp dt. Los valores se truncan a entero.
func BuildPosition(f codec.Frame, dt time.Time) (*Position, error) {
	if !coordsValid(f.Latitude, f.Longitude) {
		return nil, ErrInvalidCoords
	}

	p := &Position{
		Time:          dt.UTC(),
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		Altitude:      MetersToFeet(f.AltitudeM),
		Track:         int(f.TrackDeg),
		GroundSpeed:   MetersPerSecondToKnots(f.GroundSpeedMS),
		AirSpeed:      MetersPerSecondToKnots(f.AirSpeedMS),
		VerticalSpeed: MetersPerSecondToFPM(f.VerticalSpeedMS),
	}
	if f.ICAOType != "" || f.Registration != "" {
		p.Aircraft = &Aircraft{ICAOType: f.ICAOType, Registration: f.Registration}
	}
	return p, nil
}
