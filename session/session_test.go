package session

import (
	"testing"

	"github.com/arnav2305/eduprime/models"
	"github.com/google/uuid"
)

func TestGuestSession(t *testing.T) {
	s := Guest()
	if s.Authenticated() {
		t.Fatal("guest session must not be authenticated")
	}
	if s.IsAdmin() {
		t.Fatal("guest session must not be admin")
	}
	if !s.Initialized {
		t.Fatal("guest session has nothing to resolve, must be initialized")
	}
	if s.Role != models.RoleGuest {
		t.Fatalf("guest role = %q", s.Role)
	}
}

func TestTeardownClearsIdentity(t *testing.T) {
	s := &Session{
		UserID:      uuid.New(),
		Role:        models.RoleAdmin,
		Profile:     &models.User{},
		Initialized: true,
	}

	s.Teardown()

	if s.Authenticated() {
		t.Fatal("torn-down session still authenticated")
	}
	if s.Profile != nil {
		t.Fatal("torn-down session still holds a profile")
	}
	if s.Role != models.RoleGuest {
		t.Fatalf("torn-down session role = %q", s.Role)
	}
}

func TestRefreshRequiresIdentity(t *testing.T) {
	s := Guest()
	if err := s.Refresh(); err != ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestNilSessionAccessors(t *testing.T) {
	var s *Session
	if s.Authenticated() {
		t.Fatal("nil session reported authenticated")
	}
	if s.IsAdmin() {
		t.Fatal("nil session reported admin")
	}
}
