package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/wizard"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, token, time.Second, nopLogger{})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_GetAvailability(t *testing.T) {
	providerID := uuid.New()
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/providers/"+providerID.String()+"/availability", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"providerId":"`+providerID.String()+`","windows":[
			{"id":"`+uuid.NewString()+`","dayOfWeek":1,"dayName":"monday","isAvailable":true,"startTime":"09:00","endTime":"12:00"},
			{"id":"`+uuid.NewString()+`","dayOfWeek":0,"dayName":"sunday","isAvailable":false,"startTime":"09:00","endTime":"17:00"}]}`)
	})

	windows, err := client.GetAvailability(context.Background(), providerID)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, domain.Weekday(1), windows[0].DayOfWeek)
	assert.True(t, windows[0].IsAvailable)
	assert.Equal(t, types.TimeString("12:00"), windows[0].EndTime)
	assert.Equal(t, providerID, windows[0].ProviderID)
	assert.False(t, windows[1].IsAvailable)
}

func TestClient_GetAvailability_InvalidWindow(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"windows":[{"dayOfWeek":9,"startTime":"09:00","endTime":"12:00"}]}`)
	})

	_, err := client.GetAvailability(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetEligibilityOverrides(t *testing.T) {
	serviceID := uuid.New()
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"overrides":{"2":["`+serviceID.String()+`"]}}`)
	})

	overrides, err := client.GetEligibilityOverrides(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{serviceID}, overrides[domain.Weekday(2)])
	assert.True(t, overrides.Allows(domain.Weekday(3), serviceID))
}

func TestClient_GetAbsencesAndBookings(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path[len(r.URL.Path)-8:] {
		case "absences":
			writeJSON(w, http.StatusOK, `{"absences":[{"id":"`+uuid.NewString()+`","startDate":"2026-10-26","endDate":"2026-10-30","source":"manual"}]}`)
		case "bookings":
			writeJSON(w, http.StatusOK, `{"bookings":[
				{"id":"`+uuid.NewString()+`","bookingDate":"2026-10-19","bookingTime":"10:00","durationMinutes":90,"status":"accepted"},
				{"id":"`+uuid.NewString()+`","bookingDate":"2026-10-20","durationMinutes":60,"status":"pending"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	absences, err := client.GetAbsences(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, absences, 1)
	assert.True(t, absences[0].Covers(time.Date(2026, 10, 28, 0, 0, 0, 0, time.UTC)))

	bookings, err := client.GetBookings(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.StatusAccepted, bookings[0].Status)
	require.NotNil(t, bookings[0].BookingTime)
	assert.Equal(t, types.TimeString("10:00"), *bookings[0].BookingTime)
	assert.Nil(t, bookings[1].BookingTime)
}

func TestClient_GetServices_NotFound(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"code":404,"message":"мастер не найден"}`)
	})

	_, err := client.GetServices(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "мастер не найден")
}

func TestClient_GetProfile(t *testing.T) {
	client := newTestClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/me", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"id":"`+uuid.NewString()+`","name":"Claire Martin","postalCode":"69001","city":"Lyon"}`)
	})

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Claire Martin", profile.Name)
	assert.Equal(t, "69001", profile.PostalCode)
}

func TestClient_GetProfile_Anonymous(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without token")
	})

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestClient_CreateBooking(t *testing.T) {
	providerID := uuid.New()
	var got map[string]interface{}
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/bookings", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, `{"id":"`+uuid.NewString()+`","bookingDate":"2026-10-19","bookingTime":"10:30","status":"pending"}`)
	})

	result, err := client.CreateBooking(context.Background(), wizard.BookingRequest{
		ProviderID:      providerID,
		Date:            "2026-10-19",
		Time:            types.TimeString("10:30"),
		DurationMinutes: 60,
		Notes:           "Motif: portrait",
		PriceHT:         decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Equal(t, types.TimeString("10:30"), result.BookingTime)
	assert.Equal(t, "2026-10-19", result.BookingDate.Format(domain.DateFormat))

	assert.Equal(t, providerID.String(), got["providerId"])
	assert.Equal(t, "10:30", got["bookingTime"])
	assert.Equal(t, "Motif: portrait", got["notes"])
	assert.Equal(t, "100", got["priceHt"])
	assert.NotContains(t, got, "priceTtc")
	assert.NotContains(t, got, "serviceId")
}

func TestClient_CreateBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "conflict", status: http.StatusConflict, want: wizard.ErrConflict},
		{name: "slot taken", status: http.StatusConflict, body: `{"code":409,"message":"taken","reason":"slot_taken"}`, want: wizard.ErrConflict},
		{name: "day full", status: http.StatusConflict, body: `{"code":409,"message":"full","reason":"day_full"}`, want: wizard.ErrDayFull},
		{name: "validation", status: http.StatusBadRequest, want: wizard.ErrValidation},
		{name: "server error", status: http.StatusInternalServerError, want: wizard.ErrCollaborator},
		{name: "not found", status: http.StatusNotFound, want: wizard.ErrCollaborator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"code":0,"message":"rejected"}`
			}
			client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, body)
			})

			_, err := client.CreateBooking(context.Background(), wizard.BookingRequest{
				ProviderID: uuid.New(),
				Date:       "2026-10-19",
				Time:       types.TimeString("10:00"),
			})
			assert.ErrorIs(t, err, tt.want)
			if tt.want == wizard.ErrConflict {
				assert.NotErrorIs(t, err, wizard.ErrDayFull)
			}
		})
	}
}

func TestClient_GetSettings(t *testing.T) {
	providerID := uuid.New()
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/providers/"+providerID.String()+"/settings", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"providerId":"`+providerID.String()+`","autoAcceptBookings":true,
			"maxBookingsPerDay":3,"advanceBookingDays":14,"isDefault":false,"updatedAt":"2026-10-01T08:00:00Z"}`)
	})

	settings, err := client.GetSettings(context.Background(), providerID)
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.Equal(t, providerID, settings.ProviderID)
	assert.True(t, settings.AutoAcceptBookings)
	assert.Equal(t, 3, settings.MaxBookingsPerDay)
	assert.Equal(t, 14, settings.AdvanceBookingDays)
	assert.Equal(t, time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC), settings.UpdatedAt)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, "", 100*time.Millisecond, nopLogger{})

	_, err := client.GetServices(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
