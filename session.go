package alumni

import (
	"time"
)

var _ Session = &SessionObject{}

// SessionObject is the request scoped view of a validated token: who the
// caller claims to be and until when. It is never persisted.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Subject        string     `json:"subject,omitempty"`
	Role           string     `json:"role,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetSubject() string {
	return s.Subject
}

func (s *SessionObject) GetRole() string {
	return s.Role
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

// sessionFromAuthClaims converts validated claims into a SessionObject
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	session := &SessionObject{
		UserID:  claims.UserID(),
		Subject: claims.Subject(),
		Role:    claims.Role(),
	}

	if issued := claims.IssuedAt(); !issued.IsZero() {
		session.IssuedAt = &issued
	}

	if expires := claims.Expires(); !expires.IsZero() {
		session.ExpirationDate = &expires
	}

	return session, nil
}
