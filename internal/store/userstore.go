package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	"github.com/veritaslogistics/veritas-api/internal/utils"
)

// UserStore manages the user collection and the single active session on
// top of an injected Storage. Every mutation is a full read-modify-write of
// the serialized collection; the mutex keeps those cycles from interleaving
// across handlers. A deployment with multiple writer processes would need a
// compare-and-swap on a version field instead.
type UserStore struct {
	storage Storage
	mu      sync.Mutex
}

func New(storage Storage) *UserStore {
	return &UserStore{storage: storage}
}

// Register creates a new user with empty bookings, quotes and
// notifications. The password is stored as an argon2id hash.
func (s *UserStore) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)

	switch {
	case name == "":
		return nil, invalid("name", "required")
	case email == "":
		return nil, invalid("email", "required")
	case phone == "":
		return nil, invalid("phone", "required")
	case password == "":
		return nil, invalid("password", "required")
	case !utils.IsValidEmail(email):
		return nil, invalid("email", "invalid format")
	case !utils.IsValidPhone(phone):
		return nil, invalid("phone", "invalid format")
	case len(password) < 6:
		return nil, invalid("password", "must be at least 6 characters")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:            newUserID(),
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(phone),
		PasswordHash:  hash,
		CreatedAt:     time.Now().UTC(),
		Bookings:      []domain.Booking{},
		Quotes:        []domain.Quote{},
		Notifications: []domain.Notification{},
	}
	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and replaces the active session. Any existing
// session is overwritten.
func (s *UserStore) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, invalid("email", "required")
	}
	if password == "" {
		return nil, invalid("password", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	var user *domain.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	ok, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	session := domain.Session{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		LoginTime: time.Now().UTC(),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Set(ctx, sessionKey, string(raw)); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns the active session, or nil when nobody is logged in.
func (s *UserStore) GetSession(ctx context.Context) (*domain.Session, error) {
	raw, ok, err := s.storage.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *UserStore) IsLoggedIn(ctx context.Context) (bool, error) {
	session, err := s.GetSession(ctx)
	return session != nil, err
}

// Logout clears the session. Logging out while logged out is a no-op.
func (s *UserStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Delete(ctx, sessionKey)
}

// GetUserByID returns nil without error when the id is unknown.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UpdateUser shallow-merges the patch into the matching user. It reports
// false when the id is unknown. A patched email must keep the uniqueness
// invariant.
func (s *UserStore) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	if patch.Email != nil {
		email := utils.NormalizeEmail(*patch.Email)
		if !utils.IsValidEmail(email) {
			return false, invalid("email", "invalid format")
		}
		for i := range users {
			if i != idx && users[i].Email == email {
				return false, ErrDuplicateEmail
			}
		}
		users[idx].Email = email
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return false, invalid("name", "required")
		}
		users[idx].Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		if !utils.IsValidPhone(*patch.Phone) {
			return false, invalid("phone", "invalid format")
		}
		users[idx].Phone = strings.TrimSpace(*patch.Phone)
	}

	if err := s.saveUsers(ctx, users); err != nil {
		return false, err
	}
	return true, nil
}

// AddBooking appends a new booking to the owning user. Status always starts
// at pending; the tracking code is generated here and never changes.
func (s *UserStore) AddBooking(ctx context.Context, userID string, req domain.BookingRequest) (*domain.Booking, error) {
	booking := domain.Booking{
		ID:         newBookingID(),
		TrackingID: newTrackingCode(),
		Pickup:     req.Pickup,
		Delivery:   req.Delivery,
		ItemType:   req.ItemType,
		WeightKG:   req.WeightKG,
		Status:     domain.BookingPending,
		Extra:      maps.Clone(req.Extra),
		CreatedAt:  time.Now().UTC(),
	}
	err := s.appendToUser(ctx, userID, func(u *domain.User) {
		u.Bookings = append(u.Bookings, booking)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *UserStore) UserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []domain.Booking{}, nil
	}
	return user.Bookings, nil
}

// AddQuote appends a new quote. The estimated price stays nil unless the
// caller supplies one.
func (s *UserStore) AddQuote(ctx context.Context, userID string, req domain.QuoteRequest) (*domain.Quote, error) {
	quote := domain.Quote{
		ID:             newQuoteID(),
		Pickup:         req.Pickup,
		Delivery:       req.Delivery,
		ItemType:       req.ItemType,
		WeightKG:       req.WeightKG,
		EstimatedPrice: req.EstimatedPrice,
		Status:         domain.QuotePending,
		Extra:          maps.Clone(req.Extra),
		CreatedAt:      time.Now().UTC(),
	}
	err := s.appendToUser(ctx, userID, func(u *domain.User) {
		u.Quotes = append(u.Quotes, quote)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *UserStore) UserQuotes(ctx context.Context, userID string) ([]domain.Quote, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []domain.Quote{}, nil
	}
	return user.Quotes, nil
}

// AddNotification appends an unread notification.
func (s *UserStore) AddNotification(ctx context.Context, userID string, req domain.NotificationRequest) (*domain.Notification, error) {
	notif := domain.Notification{
		ID:        newNotificationID(),
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	err := s.appendToUser(ctx, userID, func(u *domain.User) {
		u.Notifications = append(u.Notifications, notif)
	})
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (s *UserStore) UserNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []domain.Notification{}, nil
	}
	return user.Notifications, nil
}

// ReadNotification marks one notification read. It reports false when the
// user or the notification is unknown and changes nothing in that case.
func (s *UserStore) ReadNotification(ctx context.Context, userID, notificationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		for j := range users[i].Notifications {
			if users[i].Notifications[j].ID == notificationID {
				users[i].Notifications[j].Read = true
				if err := s.saveUsers(ctx, users); err != nil {
					return false, err
				}
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

// LookupTracking resolves a tracking code to its booking by linear scan
// over all users. Codes compare case-insensitively.
func (s *UserStore) LookupTracking(ctx context.Context, code string) (*domain.Booking, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, false, nil
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		for j := range users[i].Bookings {
			if strings.EqualFold(users[i].Bookings[j].TrackingID, code) {
				return &users[i].Bookings[j], true, nil
			}
		}
	}
	return nil, false, nil
}

// appendToUser runs one read-modify-write cycle against a single user.
func (s *UserStore) appendToUser(ctx context.Context, userID string, mutate func(*domain.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == userID {
			mutate(&users[i])
			return s.saveUsers(ctx, users)
		}
	}
	return ErrUserNotFound
}

func (s *UserStore) loadUsers(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := s.storage.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []domain.User{}, nil
	}
	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) saveUsers(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return s.storage.Set(ctx, usersKey, string(raw))
}
