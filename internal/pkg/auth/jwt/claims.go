package jwt

import "github.com/golang-jwt/jwt"

// Role is the classroom role carried in a session token.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Payload defines the JWT claims of a classroom session.
type Payload struct {
	jwt.StandardClaims

	// Name is the participant's full name, which is also their roster identity.
	Name string `json:"name"`

	// Role decides which operations the holder may perform.
	Role Role `json:"role"`
}

// IsTeacher reports whether the token holder is the teacher.
func (p *Payload) IsTeacher() bool {
	return p != nil && p.Role == RoleTeacher
}
