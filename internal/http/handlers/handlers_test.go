package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	"github.com/veritaslogistics/veritas-api/internal/http/handlers"
	authmw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/events"
)

const testSecret = "test-secret"

var publicPaths = []string{
	"/v1/auth/register",
	"/v1/auth/login",
	"/v1/auth/logout",
	"/v1/auth/session",
	"/v1/quotes/estimate",
	"/v1/tracking",
	"/v1/contact",
}

// mockMailer records the last message instead of sending it.
type mockMailer struct {
	lastTo      string
	lastSubject string
	lastText    string
	sendErr     error
}

func (m *mockMailer) Send(toEmail, _, subject, text, _ string) (string, error) {
	m.lastTo = toEmail
	m.lastSubject = subject
	m.lastText = text
	return "mock-id", m.sendErr
}

// mockBus records published subjects.
type mockBus struct {
	mu       sync.Mutex
	subjects []string
}

func (b *mockBus) Publish(_ context.Context, subject string, _ interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subjects = append(b.subjects, subject)
	return nil
}

func (b *mockBus) Close() error { return nil }

func (b *mockBus) count(subject string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.subjects {
		if s == subject {
			n++
		}
	}
	return n
}

func setupTestServer(t *testing.T) (*httptest.Server, *store.UserStore, *mockMailer, *mockBus) {
	t.Helper()

	userStore := store.New(store.NewMemoryStorage())
	mail := &mockMailer{}
	bus := &mockBus{}

	r := chi.NewRouter()
	r.Use(authmw.SessionGuard(userStore, testSecret, publicPaths))
	r.Mount("/v1/auth", handlers.NewAuthHandler(userStore, bus, mail, testSecret, time.Hour).Routes())
	r.Mount("/v1/bookings", handlers.NewBookingsHandler(userStore, bus).Routes())
	r.Mount("/v1/quotes", handlers.NewQuotesHandler(userStore, bus).Routes())
	r.Mount("/v1/notifications", handlers.NewNotificationsHandler(userStore).Routes())
	r.Mount("/v1/dashboard", handlers.NewDashboardHandler(userStore).Routes())
	r.Mount("/v1/profile", handlers.NewProfileHandler(userStore).Routes())
	r.Mount("/v1/tracking", handlers.NewTrackingHandler(userStore).Routes())
	r.Mount("/v1/contact", handlers.NewContactHandler(mail, "support@veritaslogistics.ng").Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, userStore, mail, bus
}

func registerAndLogin(t *testing.T, server *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, server.URL+"/v1/auth/register", "", map[string]string{
		"name": "Ada Lovelace", "email": "ada@example.com",
		"phone": "08012345678", "password": "secret1",
	}, http.StatusCreated)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/v1/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "secret1",
	}, http.StatusOK)
	defer resp.Body.Close()

	var out struct {
		AccessToken string          `json:"access_token"`
		Session     *domain.Session `json:"session"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	require.NotNil(t, out.Session)
	assert.Equal(t, "Ada Lovelace", out.Session.Name)
	return out.AccessToken
}

func TestRegister_Validation(t *testing.T) {
	server, _, _, _ := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.co", "phone": "08012345678", "password": "secret1"}},
		{"bad email", map[string]string{"name": "Ada", "email": "nope", "phone": "08012345678", "password": "secret1"}},
		{"short phone", map[string]string{"name": "Ada", "email": "a@b.co", "phone": "123", "password": "secret1"}},
		{"short password", map[string]string{"name": "Ada", "email": "a@b.co", "phone": "08012345678", "password": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/v1/auth/register", "", tt.body, http.StatusBadRequest)
			resp.Body.Close()
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	server, _, _, _ := setupTestServer(t)

	body := map[string]string{
		"name": "Ada", "email": "ada@example.com",
		"phone": "08012345678", "password": "secret1",
	}
	resp := postJSON(t, server.URL+"/v1/auth/register", "", body, http.StatusCreated)
	resp.Body.Close()
	resp = postJSON(t, server.URL+"/v1/auth/register", "", body, http.StatusConflict)
	resp.Body.Close()
}

func TestLogin_WrongPassword(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	registerAndLogin(t, server)

	resp := postJSON(t, server.URL+"/v1/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	}, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestBookings_RequireAuth(t *testing.T) {
	server, _, _, _ := setupTestServer(t)

	resp := getStatus(t, server.URL+"/v1/bookings", "", http.StatusUnauthorized)
	resp.Body.Close()
}

func TestBookingFlow(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	token := registerAndLogin(t, server)

	// Registration already queued a welcome notification.
	var notifs []domain.Notification
	resp := getStatus(t, server.URL+"/v1/notifications", token, http.StatusOK)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notifs))
	resp.Body.Close()
	require.Len(t, notifs, 1)
	assert.Equal(t, domain.NotifyWelcome, notifs[0].Type)

	// Create a booking.
	resp = postJSON(t, server.URL+"/v1/bookings", token, map[string]any{
		"pickup": "Lagos", "delivery": "Abuja",
		"item_type": "fragile", "weight_kg": 4.0,
		"extra": map[string]string{"notes": "glassware"},
	}, http.StatusCreated)
	var booking domain.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&booking))
	resp.Body.Close()
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.NotEmpty(t, booking.TrackingID)

	// It shows up in the list.
	resp = getStatus(t, server.URL+"/v1/bookings", token, http.StatusOK)
	var bookings []domain.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bookings))
	resp.Body.Close()
	require.Len(t, bookings, 1)
	assert.Equal(t, booking.ID, bookings[0].ID)

	// Stats: one active booking, welcome + confirmation unread.
	resp = getStatus(t, server.URL+"/v1/dashboard/stats", token, http.StatusOK)
	var stats handlers.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Equal(t, 1, stats.ActiveBookings)
	assert.Equal(t, 0, stats.DeliveredBookings)
	assert.Equal(t, 2, stats.UnreadNotifications)

	// Mark the confirmation read.
	resp = getStatus(t, server.URL+"/v1/notifications", token, http.StatusOK)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notifs))
	resp.Body.Close()
	require.Len(t, notifs, 2)

	resp = postJSON(t, server.URL+"/v1/notifications/"+notifs[1].ID+"/read", token, nil, http.StatusOK)
	resp.Body.Close()

	resp = getStatus(t, server.URL+"/v1/dashboard/stats", token, http.StatusOK)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Equal(t, 1, stats.UnreadNotifications)

	// Anyone holding the code can track the shipment, no auth needed.
	resp = getStatus(t, server.URL+"/v1/tracking/"+booking.TrackingID, "", http.StatusOK)
	var tracked struct {
		TrackingID string `json:"tracking_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tracked))
	resp.Body.Close()
	assert.Equal(t, booking.TrackingID, tracked.TrackingID)
	assert.Equal(t, "pending", tracked.Status)
}

func TestEventsPublished(t *testing.T) {
	server, _, _, bus := setupTestServer(t)
	token := registerAndLogin(t, server)

	resp := postJSON(t, server.URL+"/v1/bookings", token, map[string]any{
		"pickup": "Lagos", "delivery": "Abuja",
		"item_type": "documents", "weight_kg": 1.0,
	}, http.StatusCreated)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/v1/quotes", token, map[string]any{
		"pickup": "Lagos", "delivery": "Kano",
		"item_type": "documents", "weight_kg": 1.0,
	}, http.StatusCreated)
	resp.Body.Close()

	assert.Equal(t, 1, bus.count(events.UserRegistered))
	assert.Equal(t, 1, bus.count(events.BookingCreated))
	assert.Equal(t, 1, bus.count(events.QuoteRequested))
	// Welcome plus booking confirmation.
	assert.Equal(t, 2, bus.count(events.NotificationCreated))
}

func TestReadNotification_UnknownID(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	token := registerAndLogin(t, server)

	resp := postJSON(t, server.URL+"/v1/notifications/notif_missing/read", token, nil, http.StatusNotFound)
	resp.Body.Close()
}

func TestLogout_InvalidatesToken(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	token := registerAndLogin(t, server)

	resp := postJSON(t, server.URL+"/v1/auth/logout", "", nil, http.StatusOK)
	resp.Body.Close()

	// The JWT is still within its TTL, but the session is gone.
	resp = getStatus(t, server.URL+"/v1/bookings", token, http.StatusUnauthorized)
	resp.Body.Close()

	resp = getStatus(t, server.URL+"/v1/auth/session", "", http.StatusOK)
	var out struct {
		LoggedIn bool `json:"logged_in"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.False(t, out.LoggedIn)
}

func TestQuoteEstimate_Public(t *testing.T) {
	server, _, _, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/v1/quotes/estimate", "", map[string]any{
		"pickup": "Lagos", "delivery": "Abuja",
		"item_type": "documents", "weight_kg": 10.0,
	}, http.StatusOK)
	var out struct {
		EstimatedPrice float64 `json:"estimated_price"`
		Currency       string  `json:"currency"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, 7000.0, out.EstimatedPrice)
	assert.Equal(t, "NGN", out.Currency)

	resp = postJSON(t, server.URL+"/v1/quotes/estimate", "", map[string]any{
		"pickup": "Lagos",
	}, http.StatusBadRequest)
	resp.Body.Close()
}

func TestCreateQuote_FillsEstimate(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	token := registerAndLogin(t, server)

	resp := postJSON(t, server.URL+"/v1/quotes", token, map[string]any{
		"pickup": "Lagos", "delivery": "Kano",
		"item_type": "fragile", "weight_kg": 2.0,
	}, http.StatusCreated)
	var q domain.Quote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	resp.Body.Close()

	assert.Equal(t, domain.QuotePending, q.Status)
	require.NotNil(t, q.EstimatedPrice)
	assert.Equal(t, 2000*1.5+2*500, *q.EstimatedPrice)
}

func TestProfileUpdate(t *testing.T) {
	server, _, _, _ := setupTestServer(t)
	token := registerAndLogin(t, server)

	req, err := http.NewRequest(http.MethodPatch, server.URL+"/v1/profile",
		bytes.NewBufferString(`{"name":"Ada King"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile domain.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "Ada King", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestContactForm(t *testing.T) {
	server, _, mail, _ := setupTestServer(t)

	resp := postJSON(t, server.URL+"/v1/contact", "", map[string]string{
		"name": "Ada", "contact": "ada@example.com", "message": "When do you deliver to Kano?",
	}, http.StatusAccepted)
	resp.Body.Close()
	assert.Equal(t, "support@veritaslogistics.ng", mail.lastTo)
	assert.Contains(t, mail.lastText, "When do you deliver to Kano?")

	resp = postJSON(t, server.URL+"/v1/contact", "", map[string]string{
		"name": "Ada", "contact": "nonsense", "message": "hi",
	}, http.StatusBadRequest)
	resp.Body.Close()
}

// ---------- helpers ----------

func postJSON(t *testing.T, url, token string, data any, expectedStatus int) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if data != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(data))
	}
	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, "POST %s", url)
	return resp
}

func getStatus(t *testing.T, url, token string, expectedStatus int) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, fmt.Sprintf("GET %s", url))
	return resp
}
