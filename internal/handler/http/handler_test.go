package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/mock"
	"github.com/freelancy/marketplace-api/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// ---- Helpers ----

type handlerMocks struct {
	jobs     *mock.MockJobService
	tasks    *mock.MockTaskService
	verifier *mock.MockVerifier
}

func newTestHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := handlerMocks{
		jobs:     mock.NewMockJobService(ctrl),
		tasks:    mock.NewMockTaskService(ctrl),
		verifier: mock.NewMockVerifier(ctrl),
	}

	h := &Handler{
		services: &service.Services{
			Jobs:  mocks.jobs,
			Tasks: mocks.tasks,
		},
		verifier: mocks.verifier,
		logger:   logger.Nop(),
	}

	return h, mocks
}

func executeRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func TestHandler_Health(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := executeRequest(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "marketplace server is running", rr.Body.String())
}
