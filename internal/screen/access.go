package screen

import (
	"sync"

	"techmarket/internal/service"

	"go.uber.org/zap"
)

// AccessScreen is the entry screen: browse as a client, or open the admin
// area and log in.
type AccessScreen struct {
	access service.AccessService
	nav    *Navigator
	logger *zap.Logger

	mu        sync.Mutex
	adminOpen bool
	name      string
	senha     string
	loading   bool
	session   *service.AdminSession
}

// NewAccessScreen creates a new instance of AccessScreen
func NewAccessScreen(access service.AccessService, nav *Navigator, logger *zap.Logger) *AccessScreen {
	return &AccessScreen{access: access, nav: nav, logger: logger}
}

// ClientEntry opens the product list.
func (s *AccessScreen) ClientEntry() Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return busy()
	}
	s.nav.Navigate(s.access.ClientEntry())
	return Alert{}
}

// ToggleAdmin shows or hides the admin login form.
func (s *AccessScreen) ToggleAdmin() Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return busy()
	}
	s.adminOpen = !s.adminOpen
	return Alert{}
}

// SetName fills the admin name field
func (s *AccessScreen) SetName(name string) Alert {
	return s.edit(func() { s.name = name })
}

// SetSenha fills the admin password field
func (s *AccessScreen) SetSenha(senha string) Alert {
	return s.edit(func() { s.senha = senha })
}

func (s *AccessScreen) edit(apply func()) Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.loading:
		return busy()
	case !s.adminOpen:
		return Alert{Level: LevelWarning, Title: "Warning", Message: MsgAdminAreaClosed}
	}
	apply()
	return Alert{}
}

// Login checks the typed credentials. The password is cleared after every
// attempt; a successful login moves to the management screen.
func (s *AccessScreen) Login() Alert {
	s.mu.Lock()
	switch {
	case s.loading:
		s.mu.Unlock()
		return busy()
	case !s.adminOpen:
		s.mu.Unlock()
		return Alert{Level: LevelWarning, Title: "Warning", Message: MsgAdminAreaClosed}
	}
	name, senha := s.name, s.senha
	s.loading = true
	s.mu.Unlock()

	visit := s.nav.Visit()
	session, err := s.access.AdminLogin(visit.Context(), name, senha)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.senha = ""

	if !s.nav.IsCurrent(visit) {
		s.logger.Debug("Discarding login result for a screen no longer shown")
		return Alert{}
	}
	if err != nil {
		return alertFor(err, "Error")
	}

	s.session = session
	s.nav.Navigate(session.Route)
	return Alert{}
}

// State returns the form as shown. The password is masked.
func (s *AccessScreen) State() (adminOpen bool, name string, senhaFilled bool, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminOpen, s.name, s.senha != "", s.loading
}

// Session returns the last successful admin login, if any.
func (s *AccessScreen) Session() *service.AdminSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}
