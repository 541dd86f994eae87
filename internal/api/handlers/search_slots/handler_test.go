package search_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	got *models.SearchRequest
	err error
}

func (f *fakeService) Search(_ context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SearchResponse{}, nil
}

func serve(svc SlotService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/provider/availability/search", strings.NewReader(body)))
	return rec
}

func TestHandle_Filters(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{
		"specialization": "cardiology",
		"locationType": "CLINIC",
		"startTime": "2024-01-01T09:00:00Z",
		"maxPrice": 100
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cardiology", *svc.got.Specialization)
	assert.Equal(t, domain.LocationTypeClinic, *svc.got.LocationType)
	assert.True(t, svc.got.From.Equal(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)))
	assert.Nil(t, svc.got.To)
	assert.Equal(t, 100.0, *svc.got.MaxPrice)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Specialization)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"locationType":"MOON"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"startTime":"yesterday"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: slots.ErrInvalidInput}, `{}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("db")}, `{}`).Code)
}
