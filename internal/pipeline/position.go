package pipeline

import (
	"time"

	"xplogd-live/internal/tracking"
)

// Aircraft es la identidad que llega con cada frame.
type Aircraft struct {
	ICAOType     string `json:"icao_type"`
	Registration string `json:"registration"`
}

// Position es una posición ya convertida a unidades aeronáuticas, tal como
// se guarda en el store.
type Position struct {
	Time     time.Time `json:"time"`
	Aircraft *Aircraft `json:"aircraft,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Altitude      int `json:"altitude"`       // pies
	Track         int `json:"track"`          // grados
	GroundSpeed   int `json:"ground_speed"`   // nudos
	AirSpeed      int `json:"air_speed"`      // nudos
	VerticalSpeed int `json:"vertical_speed"` // pies/min
}

// Live devuelve la forma que entrega /live/.
func (p Position) Live() tracking.Observation {
	o := tracking.Observation{
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Altitude:      float64(p.Altitude),
		Track:         float64(p.Track),
		GroundSpeed:   float64(p.GroundSpeed),
		AirSpeed:      float64(p.AirSpeed),
		VerticalSpeed: float64(p.VerticalSpeed),
	}
	if p.Aircraft != nil {
		o.Aircraft = &tracking.AircraftInfo{
			ICAOType:     p.Aircraft.ICAOType,
			Registration: p.Aircraft.Registration,
		}
	}
	return o
}
