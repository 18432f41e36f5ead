package mercury

import "sync"

// Session holds the bearer token and the credentials used to renew it.
// It is shared by every request served by the process.
type Session struct {
	mu       sync.RWMutex
	token    string
	email    string
	password string
}

// NewSession creates a session that starts with the given access token.
func NewSession(token, email, password string) *Session {
	return &Session{
		token:    token,
		email:    email,
		password: password,
	}
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// SetToken replaces the bearer token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Credentials returns the renewal credentials and whether both are set.
func (s *Session) Credentials() (email, password string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.email, s.password, s.email != "" && s.password != ""
}
