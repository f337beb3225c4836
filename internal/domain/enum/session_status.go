package enum

import "database/sql/driver"

// SessionStatus is the state of a cash session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

func (s SessionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SessionStatus) Scan(value interface{}) error {
	return scanString((*string)(s), value)
}
