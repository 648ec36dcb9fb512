// Package tracking mantiene el único avión seguido y traduce cada
// resultado del poller en operaciones sobre el mapa y el panel.
package tracking

import "xplogd-live/internal/mapview"

// AircraftInfo identifica al avión. Si falta, el objeto está seguido
// pero sin identificar.
type AircraftInfo struct {
	ICAOType     string `json:"icao_type"`
	Registration string `json:"registration"`
	Description  string `json:"description,omitempty"`
}

// Observation es una foto del avión tal como la devuelve /live/.
type Observation struct {
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Altitude      float64       `json:"altitude"`
	Track         float64       `json:"track"`
	GroundSpeed   float64       `json:"ground_speed"`
	AirSpeed      float64       `json:"air_speed"`
	VerticalSpeed float64       `json:"vertical_speed"`
	Aircraft      *AircraftInfo `json:"aircraft"`
}

func (o Observation) LonLat() mapview.LonLat {
	return mapview.LonLat{Lon: o.Longitude, Lat: o.Latitude}
}

// Event es el resultado de una consulta: Observed o Absent.
type Event struct {
	obs *Observation
}

func Observed(o Observation) Event {
	return Event{obs: &o}
}

// Absent cubre "no hay avión", fallo de transporte y cuerpo inválido.
func Absent() Event {
	return Event{}
}

func (e Event) IsAbsent() bool {
	return e.obs == nil
}

// Observation devuelve la observación y false si el evento es Absent.
func (e Event) Observation() (Observation, bool) {
	if e.obs == nil {
		return Observation{}, false
	}
	return *e.obs, true
}

func (e Event) String() string {
	if e.obs == nil {
		return "absent"
	}
	return "observed"
}
