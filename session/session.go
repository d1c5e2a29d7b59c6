package session

import (
	"errors"

	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotAuthenticated = errors.New("no authenticated identity in request")

// Session is the resolved identity context for one request: who the caller
// is, their profile if one exists, and their role. Initialized reports
// whether resolution against the user store has completed.
type Session struct {
	UserID      uuid.UUID
	Role        string
	Profile     *models.User
	Initialized bool
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == models.RoleAdmin
}

// Guest returns the unauthenticated session. It is considered initialized:
// there is nothing left to resolve.
func Guest() *Session {
	return &Session{Role: models.RoleGuest, Initialized: true}
}

// FromRequest builds a session from the JWT the auth middleware stashed in
// Locals, then resolves the profile. Requests without a token get a guest
// session rather than an error.
func FromRequest(c *fiber.Ctx) (*Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Guest(), nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Guest(), nil
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Guest(), nil
	}

	role, _ := claims["role"].(string)
	s := &Session{UserID: userID, Role: role}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init loads the caller's profile record. A token for a user that no longer
// exists resolves to an initialized session with no profile.
func (s *Session) Init() error {
	var user models.User
	err := database.DB.Where("id = ?", s.UserID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.Profile = nil
			s.Initialized = true
			return nil
		}
		return err
	}

	s.Profile = &user
	s.Role = user.Role
	s.Initialized = true
	return nil
}

// Refresh re-reads the profile after a mutation (profile save, role change).
func (s *Session) Refresh() error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	return s.Init()
}

// Teardown clears the resolved identity, used on logout.
func (s *Session) Teardown() {
	s.UserID = uuid.Nil
	s.Role = models.RoleGuest
	s.Profile = nil
	s.Initialized = true
}
