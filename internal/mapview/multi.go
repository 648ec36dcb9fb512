package mapview

// multi reparte cada operación entre varios adaptadores. Cada hijo emite
// su propio handle; multi devuelve uno nuevo y guarda la correspondencia.
type multi struct {
	views   []View
	handles map[Handle][]Handle
}

// Multi devuelve una View que replica cada operación en todas las views.
// Con una sola view la devuelve tal cual.
func Multi(views ...View) View {
	if len(views) == 1 {
		return views[0]
	}
	return &multi{views: views, handles: make(map[Handle][]Handle)}
}

func (m *multi) CreateMarker(pos LonLat, icon Icon) Handle {
	children := make([]Handle, len(m.views))
	for i, v := range m.views {
		children[i] = v.CreateMarker(pos, icon)
	}
	h := NewHandle()
	m.handles[h] = children
	return h
}

func (m *multi) MoveMarker(h Handle, pos LonLat) {
	for i, child := range m.handles[h] {
		m.views[i].MoveMarker(child, pos)
	}
}

func (m *multi) SetMarkerIcon(h Handle, icon Icon) {
	for i, child := range m.handles[h] {
		m.views[i].SetMarkerIcon(child, icon)
	}
}

func (m *multi) RemoveMarker(h Handle) {
	for i, child := range m.handles[h] {
		m.views[i].RemoveMarker(child)
	}
	delete(m.handles, h)
}

func (m *multi) CenterAndZoom(pos LonLat, zoom int) {
	for _, v := range m.views {
		v.CenterAndZoom(pos, zoom)
	}
}

// Panels replica el texto en varios paneles.
type Panels []Panel

func (ps Panels) Render(text string) {
	for _, p := range ps {
		p.Render(text)
	}
}
