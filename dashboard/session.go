package dashboard

import "sync"

// Session holds view preferences for one admin session. Nothing here is
// shared between sessions or persisted.
type Session struct {
	mu          sync.Mutex
	darkMode    bool
	sidebarOpen bool
}

func NewSession() *Session {
	return &Session{sidebarOpen: true}
}

func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

func (s *Session) SetDarkMode(on bool) {
	s.mu.Lock()
	s.darkMode = on
	s.mu.Unlock()
}

// ToggleDarkMode flips the theme and returns the new setting.
func (s *Session) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	return s.darkMode
}

func (s *Session) SidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

func (s *Session) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
	return s.sidebarOpen
}
