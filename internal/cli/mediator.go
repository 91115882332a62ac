package cli

// OverlayMediator coordinates the board's popovers (filter form, project
// detail, help) so that at most one is open at a time. Opening an overlay
// closes whatever was open; every surface asks the mediator instead of
// tracking sibling state itself.
type OverlayMediator struct {
	active string
	onOpen map[string]func()
}

func NewOverlayMediator() *OverlayMediator {
	return &OverlayMediator{onOpen: make(map[string]func())}
}

// Register attaches a callback fired whenever the named overlay is opened.
func (m *OverlayMediator) Register(name string, onOpen func()) {
	m.onOpen[name] = onOpen
}

// Open makes name the single active overlay, closing any other.
func (m *OverlayMediator) Open(name string) {
	if m.active == name {
		return
	}
	m.active = name
	if fn, ok := m.onOpen[name]; ok {
		fn()
	}
}

// Close closes the named overlay if it is the active one.
func (m *OverlayMediator) Close(name string) {
	if m.active == name {
		m.active = ""
	}
}

// CloseAll closes whatever overlay is open.
func (m *OverlayMediator) CloseAll() {
	m.active = ""
}

// Active returns the open overlay's name, or "" when none is open.
func (m *OverlayMediator) Active() string {
	return m.active
}

// IsOpen reports whether the named overlay is the active one.
func (m *OverlayMediator) IsOpen(name string) bool {
	return m.active == name
}
