package service

import (
	"fmt"
	"math/rand"
	"strings"

	"society-app/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the sign-up form. The PIN is the four-digit
// password players type on their phones.
type RegisterInput struct {
	Login string
	PIN   string
	Phone string
	Name  string
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register creates an account. Login and phone must be unique; the PIN is
// stored as a bcrypt hash.
func (s *Service) Register(in RegisterInput) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	login := strings.TrimSpace(in.Login)
	phone := strings.TrimSpace(in.Phone)
	if login == "" {
		return model.User{}, fmt.Errorf("%w: login is required", ErrInvalid)
	}
	if phone == "" {
		return model.User{}, fmt.Errorf("%w: phone is required", ErrInvalid)
	}
	if !validPIN(in.PIN) {
		return model.User{}, fmt.Errorf("%w: PIN must be exactly four digits", ErrInvalid)
	}
	if _, ok := s.store.GetUserByLogin(login); ok {
		return model.User{}, ErrLoginTaken
	}
	if _, ok := s.store.GetUserByPhone(phone); ok {
		return model.User{}, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.PIN), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash PIN: %w", err)
	}
	return s.store.CreateUser(model.User{
		Login:        login,
		PasswordHash: string(hash),
		Phone:        phone,
		Name:         strings.TrimSpace(in.Name),
	})
}

// Authenticate checks a login/PIN pair and returns the user on success.
func (s *Service) Authenticate(login, pin string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.GetUserByLogin(strings.TrimSpace(login))
	if !ok {
		return model.User{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pin)); err != nil {
		return model.User{}, ErrBadCredentials
	}
	return user, nil
}

func (s *Service) GetUser(id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.GetUser(id)
	if !ok {
		return model.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields. A nil pointer
// leaves the current value untouched; an empty string clears it.
type UpdateProfileInput struct {
	Name        *string
	PlayerAlias *string
	Phone       *string
	PhotoRef    *string
}

// UpdateProfile applies partial edits to the user's profile. Changing the
// phone keeps the uniqueness rule, ignoring the user's own row.
func (s *Service) UpdateProfile(userID int64, in UpdateProfileInput) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.GetUser(userID)
	if !ok {
		return model.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.PlayerAlias != nil {
		user.PlayerAlias = strings.TrimSpace(*in.PlayerAlias)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			return model.User{}, fmt.Errorf("%w: phone is required", ErrInvalid)
		}
		if other, ok := s.store.GetUserByPhone(phone); ok && other.ID != userID {
			return model.User{}, ErrPhoneTaken
		}
		user.Phone = phone
	}
	if in.PhotoRef != nil {
		user.PhotoRef = strings.TrimSpace(*in.PhotoRef)
	}
	if err := s.store.UpdateUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// ResetPassword looks the account up by login and phone, sets a fresh
// random four-digit PIN and returns it. The PIN is shown once and only
// its hash is kept.
func (s *Service) ResetPassword(login, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.GetUserByLogin(strings.TrimSpace(login))
	if !ok || user.Phone != strings.TrimSpace(phone) {
		return "", fmt.Errorf("no account matches this login and phone: %w", ErrNotFound)
	}
	pin := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash PIN: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.store.UpdateUser(user); err != nil {
		return "", err
	}
	return pin, nil
}
