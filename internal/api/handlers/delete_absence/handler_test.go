package delete_absence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	deleted uuid.UUID
	err     error
}

func (s *stubService) DeleteAbsence(_ context.Context, _, absenceID uuid.UUID) error {
	s.deleted = absenceID
	return s.err
}

func serve(svc *stubService, absenceID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/absences/{absenceId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/absences/"+absenceID, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), uuid.New(), middleware.Profile{}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "not found", err: schedule.ErrAbsenceNotFound, status: http.StatusNotFound},
		{name: "not owner", err: schedule.ErrAccessDenied, status: http.StatusForbidden},
		{name: "storage", err: schedule.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			id := uuid.New()

			rec := serve(svc, id.String())
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, id, svc.deleted)
		})
	}
}

func TestHandler_InvalidID(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "42")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, svc.deleted)
}
