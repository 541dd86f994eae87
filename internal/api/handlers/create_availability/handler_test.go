package create_availability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	got  *createAvailability.Request
	resp *createAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAvailability.Request) (*createAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"providerId": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
	"startDate": "2024-01-01",
	"endDate": "2024-01-01",
	"startTime": "09:00",
	"endTime": "10:00",
	"timezone": "UTC",
	"slotDuration": 20,
	"breakDuration": 5
}`

func serve(uc CreateAvailabilityUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/provider/availability", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	id := uuid.New()
	uc := &fakeUseCase{resp: &createAvailability.Response{ID: id, SlotCount: 2}}

	rec := serve(uc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, 20, uc.got.SlotDuration)
	assert.Equal(t, 5, uc.got.BreakDuration)

	var body createAvailability.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id, body.ID)
	assert.Equal(t, 2, body.SlotCount)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"providerId":`},
		{name: "missing fields", body: `{}`},
		{name: "bad date", body: strings.Replace(validBody, "2024-01-01", "01/01/2024", 1)},
		{name: "bad time", body: strings.Replace(validBody, `"09:00"`, `"9 am"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: pair", createAvailability.ErrSlotOverlap), want: http.StatusConflict},
		{err: createAvailability.ErrProviderNotFound, want: http.StatusNotFound},
		{err: createAvailability.ErrInvalidTimezone, want: http.StatusBadRequest},
		{err: createAvailability.ErrInvalidWindow, want: http.StatusBadRequest},
		{err: createAvailability.ErrStoreUnavailable, want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.want, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
