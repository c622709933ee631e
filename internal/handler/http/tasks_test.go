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

func TestListTasks(t *testing.T) {
	principal := models.Principal{Email: "worker@example.com"}
	acceptedAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		prepare    func(mocks handlerMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "own tasks with both filters",
			target: "/accepted-tasks?email=worker%40example.com&jobId=job-1",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					ListTasks(gomock.Any(), principal, models.TaskFilter{Email: "worker@example.com", JobID: "job-1"}).
					Return([]models.AcceptedTask{
						{ID: "task-1", AcceptedByEmail: "worker@example.com", AcceptedAt: acceptedAt, JobID: "job-1"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[{"_id":"task-1","acceptedByEmail":"worker@example.com","acceptedAt":"2026-03-02T09:30:00Z","jobId":"job-1"}]`,
		},
		{
			name:   "foreign email filter is forbidden",
			target: "/accepted-tasks?email=victim%40example.com",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					ListTasks(gomock.Any(), principal, models.TaskFilter{Email: "victim@example.com"}).
					Return(nil, service.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"forbidden access"}`,
		},
		{
			name:   "no matches yields empty array",
			target: "/accepted-tasks",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					ListTasks(gomock.Any(), principal, models.TaskFilter{}).
					Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			mocks.verifier.EXPECT().
				Verify(gomock.Any(), "good-token").
				Return(principal, nil)
			tt.prepare(mocks)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("Authorization", "Bearer good-token")

			rr := executeRequest(h, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestCreateTask_PassesBodyAndPrincipal(t *testing.T) {
	h, mocks := newTestHandler(t)

	principal := models.Principal{Email: "worker@example.com"}
	mocks.verifier.EXPECT().
		Verify(gomock.Any(), "good-token").
		Return(principal, nil)
	mocks.tasks.EXPECT().
		CreateTask(gomock.Any(), principal, models.AcceptedTask{
			AcceptedByEmail: "victim@example.com",
			JobID:           "job-1",
			Extra:           map[string]any{"note": "started"},
		}).
		Return(models.InsertResult{Acknowledged: true, InsertedID: "task-1"}, nil)

	body := `{"acceptedByEmail":"victim@example.com","jobId":"job-1","note":"started"}`
	req := httptest.NewRequest(http.MethodPost, "/accepted-tasks", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")

	rr := executeRequest(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"acknowledged":true,"insertedId":"task-1"}`, rr.Body.String())
}

func TestDeleteTask(t *testing.T) {
	principal := models.Principal{Email: "worker@example.com"}

	tests := []struct {
		name       string
		prepare    func(mocks handlerMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name: "owner delete succeeds",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					DeleteTask(gomock.Any(), principal, "task-1").
					Return(models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"acknowledged":true,"deletedCount":1}`,
		},
		{
			name: "missing task",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					DeleteTask(gomock.Any(), principal, "task-1").
					Return(models.DeleteResult{}, store.ErrTaskNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"task not found"}`,
		},
		{
			name: "not the acceptor",
			prepare: func(mocks handlerMocks) {
				mocks.tasks.EXPECT().
					DeleteTask(gomock.Any(), principal, "task-1").
					Return(models.DeleteResult{}, service.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"forbidden access"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			mocks.verifier.EXPECT().
				Verify(gomock.Any(), "good-token").
				Return(principal, nil)
			tt.prepare(mocks)

			req := httptest.NewRequest(http.MethodDelete, "/accepted-tasks/task-1", nil)
			req.Header.Set("Authorization", "Bearer good-token")

			rr := executeRequest(h, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
