package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freelancy/marketplace-api/internal/service"
	"github.com/freelancy/marketplace-api/internal/store"
	"github.com/freelancy/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListJobs_NoAuthRequired(t *testing.T) {
	h, mocks := newTestHandler(t)

	posted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mocks.jobs.EXPECT().
		ListJobs(gomock.Any(), models.JobFilter{}).
		Return([]models.Job{
			{ID: "2", Email: "b@example.com", PostedAt: posted, Extra: map[string]any{"title": "Second"}},
			{ID: "1", Email: "a@example.com", PostedAt: posted, Extra: map[string]any{"title": "First"}},
		}, nil)

	rr := executeRequest(h, httptest.NewRequest(http.MethodGet, "/Jobs", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"_id":"2","email":"b@example.com","postedAt":"2026-03-01T12:00:00Z","title":"Second"},
		{"_id":"1","email":"a@example.com","postedAt":"2026-03-01T12:00:00Z","title":"First"}
	]`, rr.Body.String())
}

func TestListJobs_EmailFilterForwarded(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.jobs.EXPECT().
		ListJobs(gomock.Any(), models.JobFilter{Email: "a@example.com"}).
		Return(nil, nil)

	rr := executeRequest(h, httptest.NewRequest(http.MethodGet, "/Jobs?email=a%40example.com", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String(), "empty result must serialize as an array")
}

func TestGetJob_AbsentJobYieldsNullBody(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.jobs.EXPECT().
		GetJob(gomock.Any(), "652f8a").
		Return(models.Job{}, store.ErrJobNotFound)

	rr := executeRequest(h, httptest.NewRequest(http.MethodGet, "/Jobs/652f8a", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", rr.Body.String())
}

func TestGetJob_MalformedID(t *testing.T) {
	h, mocks := newTestHandler(t)

	mocks.jobs.EXPECT().
		GetJob(gomock.Any(), "not-an-id").
		Return(models.Job{}, store.ErrInvalidID)

	rr := executeRequest(h, httptest.NewRequest(http.MethodGet, "/Jobs/not-an-id", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"invalid resource id"}`, rr.Body.String())
}

func TestCreateJob(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		body       string
		prepare    func(mocks handlerMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "authenticated create",
			authHeader: "Bearer good-token",
			body:       `{"email":"poster@example.com","title":"Build a landing page","budget":300}`,
			prepare: func(mocks handlerMocks) {
				mocks.verifier.EXPECT().
					Verify(gomock.Any(), "good-token").
					Return(models.Principal{Email: "poster@example.com"}, nil)
				mocks.jobs.EXPECT().
					CreateJob(gomock.Any(), models.Job{
						Email: "poster@example.com",
						Extra: map[string]any{"title": "Build a landing page", "budget": float64(300)},
					}).
					Return(models.InsertResult{Acknowledged: true, InsertedID: "abc123"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"acknowledged":true,"insertedId":"abc123"}`,
		},
		{
			name:       "missing token",
			authHeader: "",
			body:       `{"email":"poster@example.com"}`,
			prepare:    func(mocks handlerMocks) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"unauthorized access"}`,
		},
		{
			name:       "malformed body",
			authHeader: "Bearer good-token",
			body:       `{"email":`,
			prepare: func(mocks handlerMocks) {
				mocks.verifier.EXPECT().
					Verify(gomock.Any(), "good-token").
					Return(models.Principal{Email: "poster@example.com"}, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid json body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			tt.prepare(mocks)

			req := httptest.NewRequest(http.MethodPost, "/Jobs", strings.NewReader(tt.body))
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := executeRequest(h, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestUpdateJob(t *testing.T) {
	principal := models.Principal{Email: "owner@example.com"}

	tests := []struct {
		name       string
		prepare    func(mocks handlerMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name: "owner patch succeeds",
			prepare: func(mocks handlerMocks) {
				mocks.jobs.EXPECT().
					UpdateJob(gomock.Any(), principal, "job-1", models.JobPatch{"title": "Updated"}).
					Return(models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"acknowledged":true,"matchedCount":1,"modifiedCount":1}`,
		},
		{
			name: "non-owner is forbidden",
			prepare: func(mocks handlerMocks) {
				mocks.jobs.EXPECT().
					UpdateJob(gomock.Any(), principal, "job-1", gomock.Any()).
					Return(models.UpdateResult{}, service.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"forbidden access"}`,
		},
		{
			name: "missing job",
			prepare: func(mocks handlerMocks) {
				mocks.jobs.EXPECT().
					UpdateJob(gomock.Any(), principal, "job-1", gomock.Any()).
					Return(models.UpdateResult{}, store.ErrJobNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"job not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			mocks.verifier.EXPECT().
				Verify(gomock.Any(), "good-token").
				Return(principal, nil)
			tt.prepare(mocks)

			req := httptest.NewRequest(http.MethodPatch, "/Jobs/job-1", strings.NewReader(`{"title":"Updated"}`))
			req.Header.Set("Authorization", "Bearer good-token")

			rr := executeRequest(h, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestDeleteJob(t *testing.T) {
	principal := models.Principal{Email: "owner@example.com"}

	h, mocks := newTestHandler(t)
	mocks.verifier.EXPECT().
		Verify(gomock.Any(), "good-token").
		Return(principal, nil)
	mocks.jobs.EXPECT().
		DeleteJob(gomock.Any(), principal, "job-1").
		Return(models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/Jobs/job-1", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rr := executeRequest(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rr.Body.String())
}
