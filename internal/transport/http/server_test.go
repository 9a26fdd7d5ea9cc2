package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type testServer struct {
	issues     *IssueServiceMock
	moderation *ModerationServiceMock
	users      *UserServiceMock
	handler    http.Handler
}

func newTestServer(limiter RateLimiter) *testServer {
	ts := &testServer{
		issues:     new(IssueServiceMock),
		moderation: new(ModerationServiceMock),
		users:      new(UserServiceMock),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts.handler = NewServer(log, ts.issues, ts.moderation, ts.users, limiter).Routes()

	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	return rr
}

func (ts *testServer) assertExpectations(t *testing.T) {
	t.Helper()
	ts.issues.AssertExpectations(t)
	ts.moderation.AssertExpectations(t)
	ts.users.AssertExpectations(t)
}

func int64Ptr(v int64) *int64 { return &v }

func TestServer_ReportIssue(t *testing.T) {
	reported := &domain.Issue{
		ID:        1,
		Title:     "Pothole",
		Photos:    []string{"a.jpg"},
		Category:  domain.IssueCategoryRoads,
		Latitude:  12.97,
		Longitude: 77.59,
		Status:    domain.IssueStatusReported,
		UserID:    int64Ptr(7),
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}

	testCases := []struct {
		name                 string
		requestBody          string
		setupMocks           func(*IssueServiceMock)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:        "Success",
			requestBody: `{"title":"Pothole","photos":["a.jpg"],"category":"ROADS","latitude":12.97,"longitude":77.59,"userId":7}`,
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("ReportIssue", mock.Anything, mock.MatchedBy(func(issue domain.Issue) bool {
					return issue.Title == "Pothole" && issue.Category == domain.IssueCategoryRoads &&
						issue.UserID != nil && *issue.UserID == 7 && len(issue.Photos) == 1
				})).Return(reported, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
			expectedResponseBody: `{"id":1,"title":"Pothole","description":"","photos":["a.jpg"],"category":"ROADS",
				"latitude":12.97,"longitude":77.59,"status":"REPORTED","anonymous":false,"userId":7,"flagCount":0,
				"createdAt":"2025-03-01T10:00:00Z","updatedAt":"2025-03-01T10:00:00Z"}`,
		},
		{
			name:        "Success - Encoded Photo Blob",
			requestBody: `{"title":"Pothole","category":"ROADS","photos":["data:image/jpeg;base64,` + strings.Repeat("A", 4000) + `"]}`,
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("ReportIssue", mock.Anything, mock.MatchedBy(func(issue domain.Issue) bool {
					return len(issue.Photos) == 1 && len(issue.Photos[0]) > 4000
				})).Return(reported, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
			expectedResponseBody: `{"id":1,"title":"Pothole","description":"","photos":["a.jpg"],"category":"ROADS",
				"latitude":12.97,"longitude":77.59,"status":"REPORTED","anonymous":false,"userId":7,"flagCount":0,
				"createdAt":"2025-03-01T10:00:00Z","updatedAt":"2025-03-01T10:00:00Z"}`,
		},
		{
			name:        "Service Error - Too Many Photos",
			requestBody: `{"title":"Leak","photos":["1","2","3","4"],"category":"WATER"}`,
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("ReportIssue", mock.Anything, mock.Anything).
					Return(nil, &apperrors.TooManyPhotosError{Count: 4, Max: 3}).Once()
			},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: too many photos: got 4, maximum 3 allowed"}`,
		},
		{
			name:        "Service Error - Blank Title",
			requestBody: `{"title":"  ","category":"WATER"}`,
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("ReportIssue", mock.Anything, mock.Anything).
					Return(nil, &apperrors.FieldError{Field: "title", Reason: "is required"}).Once()
			},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'title' is required"}`,
		},
		{
			name:                 "Validation Error - Missing Title",
			requestBody:          `{"category":"WATER"}`,
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'title' is required"}`,
		},
		{
			name:                 "Validation Error - Unknown Category",
			requestBody:          `{"title":"Noise","category":"NOISE"}`,
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'category' must be one of ROADS, WATER, ELECTRICITY, WASTE, OTHER"}`,
		},
		{
			name:                 "Invalid JSON Body",
			requestBody:          `{invalid json}`,
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error": "invalid request body"}`,
		},
		{
			name:        "Service Error - Internal",
			requestBody: `{"title":"Leak","category":"WATER"}`,
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("ReportIssue", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			expectedStatusCode:   http.StatusInternalServerError,
			expectedResponseBody: `{"error":"internal server error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(nil)
			tc.setupMocks(ts.issues)

			rr := ts.do(http.MethodPost, "/api/issues/report", tc.requestBody)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}
}

func TestServer_ListIssues(t *testing.T) {
	issues := []domain.Issue{
		{ID: 2, Title: "Lamp", Photos: []string{}, Category: domain.IssueCategoryElectricity, Status: domain.IssueStatusReported, CreatedAt: testTime, UpdatedAt: testTime},
	}

	testCases := []struct {
		name                 string
		query                string
		setupMocks           func(*IssueServiceMock)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:  "Success - All Filters Bound",
			query: "?status=REPORTED&category=ELECTRICITY&lat=12.97&lon=77.59&radiusKm=2.5",
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("GetFilteredIssues", mock.Anything, mock.MatchedBy(func(f domain.IssueFilter) bool {
					return f.Status != nil && *f.Status == domain.IssueStatusReported &&
						f.Category != nil && *f.Category == domain.IssueCategoryElectricity &&
						f.Lat != nil && *f.Lat == 12.97 &&
						f.Lon != nil && *f.Lon == 77.59 &&
						f.RadiusKm != nil && *f.RadiusKm == 2.5
				})).Return(issues, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
			expectedResponseBody: `[{"id":2,"title":"Lamp","description":"","photos":[],"category":"ELECTRICITY",
				"latitude":0,"longitude":0,"status":"REPORTED","anonymous":false,"userId":null,"flagCount":0,
				"createdAt":"2025-03-01T10:00:00Z","updatedAt":"2025-03-01T10:00:00Z"}]`,
		},
		{
			name:  "Success - No Filters Gives Empty Array",
			query: "",
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("GetFilteredIssues", mock.Anything, domain.IssueFilter{}).Return(nil, nil).Once()
			},
			expectedStatusCode:   http.StatusOK,
			expectedResponseBody: `[]`,
		},
		{
			name:                 "Invalid Parameter - Latitude",
			query:                "?lat=north",
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid format for parameter lat"}`,
		},
		{
			name:                 "Invalid Parameter - Unknown Status",
			query:                "?status=CLOSED",
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid format for parameter status"}`,
		},
		{
			name:                 "Invalid Parameter - Unknown Category",
			query:                "?category=NOISE",
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid format for parameter category"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(nil)
			tc.setupMocks(ts.issues)

			rr := ts.do(http.MethodGet, "/api/issues"+tc.query, "")

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}
}

func TestServer_UpdateIssueStatus(t *testing.T) {
	updated := &domain.Issue{ID: 5, Title: "Pothole", Photos: []string{}, Category: domain.IssueCategoryRoads, Status: domain.IssueStatusResolved, CreatedAt: testTime, UpdatedAt: testTime}

	testCases := []struct {
		name                 string
		target               string
		setupMocks           func(*IssueServiceMock)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:   "Success",
			target: "/api/issues/5/status?status=RESOLVED",
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("UpdateIssueStatus", mock.Anything, int64(5), domain.IssueStatusResolved).Return(updated, nil).Once()
			},
			expectedStatusCode: http.StatusOK,
			expectedResponseBody: `{"id":5,"title":"Pothole","description":"","photos":[],"category":"ROADS",
				"latitude":0,"longitude":0,"status":"RESOLVED","anonymous":false,"userId":null,"flagCount":0,
				"createdAt":"2025-03-01T10:00:00Z","updatedAt":"2025-03-01T10:00:00Z"}`,
		},
		{
			name:   "Service Error - Not Found",
			target: "/api/issues/404/status?status=RESOLVED",
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("UpdateIssueStatus", mock.Anything, int64(404), domain.IssueStatusResolved).
					Return(nil, &apperrors.IssueNotFoundError{IssueID: 404}).Once()
			},
			expectedStatusCode:   http.StatusNotFound,
			expectedResponseBody: `{"error":{"code":"NOT_FOUND","message":"resource not found"}}`,
		},
		{
			name:   "Service Error - Unknown Status",
			target: "/api/issues/5/status?status=ARCHIVED",
			setupMocks: func(ism *IssueServiceMock) {
				ism.On("UpdateIssueStatus", mock.Anything, int64(5), domain.IssueStatus("ARCHIVED")).
					Return(nil, &apperrors.FieldError{Field: "status", Reason: "has unknown value 'ARCHIVED'"}).Once()
			},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'status' has unknown value 'ARCHIVED'"}`,
		},
		{
			name:                 "Missing Status Parameter",
			target:               "/api/issues/5/status",
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"missing required parameter status"}`,
		},
		{
			name:                 "Invalid Path ID",
			target:               "/api/issues/abc/status?status=RESOLVED",
			setupMocks:           func(ism *IssueServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"invalid format for parameter id"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(nil)
			tc.setupMocks(ts.issues)

			rr := ts.do(http.MethodPut, tc.target, "")

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}
}

func TestServer_FlagIssue(t *testing.T) {
	t.Run("Success returns plain text", func(t *testing.T) {
		ts := newTestServer(nil)
		hiddenBefore := testutil.ToFloat64(hiddenIssueFlagsTotal)

		ts.issues.On("FlagIssue", mock.Anything, int64(3)).
			Return(&domain.Issue{ID: 3, FlagCount: 5, Status: domain.IssueStatusHidden}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/issues/3/flag", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Issue flagged successfully.", rr.Body.String())
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t, hiddenBefore+1, testutil.ToFloat64(hiddenIssueFlagsTotal))
		ts.assertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		ts := newTestServer(nil)
		ts.issues.On("FlagIssue", mock.Anything, int64(3)).
			Return(nil, &apperrors.IssueNotFoundError{IssueID: 3}).Once()

		rr := ts.do(http.MethodPost, "/api/issues/3/flag", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"resource not found"}}`, rr.Body.String())
		ts.assertExpectations(t)
	})
}

func TestServer_BanUser(t *testing.T) {
	t.Run("Success returns plain text", func(t *testing.T) {
		ts := newTestServer(nil)
		ts.moderation.On("BanUser", mock.Anything, int64(9)).
			Return(&domain.User{ID: 9, Banned: true}, nil).Once()

		rr := ts.do(http.MethodPost, "/api/admin/ban/9", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "User banned successfully.", rr.Body.String())
		ts.assertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		ts := newTestServer(nil)
		ts.moderation.On("BanUser", mock.Anything, int64(9)).
			Return(nil, &apperrors.UserNotFoundError{UserID: 9}).Once()

		rr := ts.do(http.MethodPost, "/api/admin/ban/9", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"resource not found"}}`, rr.Body.String())
		ts.assertExpectations(t)
	})
}

func TestServer_BanUser_InvalidPathID(t *testing.T) {
	ts := newTestServer(nil)

	rr := ts.do(http.MethodPost, "/api/admin/ban/nine", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid format for parameter userId"}`, rr.Body.String())
	ts.assertExpectations(t)
}

func TestServer_CreateUser(t *testing.T) {
	created := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser, CreatedAt: testTime}

	testCases := []struct {
		name                 string
		requestBody          string
		setupMocks           func(*UserServiceMock)
		expectedStatusCode   int
		expectedResponseBody string
	}{
		{
			name:        "Success",
			requestBody: `{"username":"alice"}`,
			setupMocks: func(usm *UserServiceMock) {
				usm.On("CreateUser", mock.Anything, "alice", domain.Role("")).Return(created, nil).Once()
			},
			expectedStatusCode:   http.StatusCreated,
			expectedResponseBody: `{"id":1,"username":"alice","role":"USER","banned":false,"createdAt":"2025-03-01T10:00:00Z"}`,
		},
		{
			name:        "Service Error - Already Exists",
			requestBody: `{"username":"alice","role":"ADMIN"}`,
			setupMocks: func(usm *UserServiceMock) {
				usm.On("CreateUser", mock.Anything, "alice", domain.RoleAdmin).
					Return(nil, &apperrors.UserAlreadyExistsError{Username: "alice"}).Once()
			},
			expectedStatusCode:   http.StatusConflict,
			expectedResponseBody: `{"error":{"code":"ALREADY_EXISTS","message":"user with this username already exists"}}`,
		},
		{
			name:                 "Validation Error - Unknown Role",
			requestBody:          `{"username":"alice","role":"ROOT"}`,
			setupMocks:           func(usm *UserServiceMock) {},
			expectedStatusCode:   http.StatusBadRequest,
			expectedResponseBody: `{"error":"validation failed: field 'role' must be one of USER, ADMIN"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(nil)
			tc.setupMocks(ts.users)

			rr := ts.do(http.MethodPost, "/api/users", tc.requestBody)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tc.expectedResponseBody, rr.Body.String())
			ts.assertExpectations(t)
		})
	}
}

func TestServer_GetUser(t *testing.T) {
	ts := newTestServer(nil)
	ts.users.On("GetUser", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Username: "alice", Role: domain.RoleUser, Banned: true, CreatedAt: testTime}, nil).Once()
	ts.users.On("GetUser", mock.Anything, int64(2)).
		Return(nil, &apperrors.UserNotFoundError{UserID: 2}).Once()

	rr := ts.do(http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"username":"alice","role":"USER","banned":true,"createdAt":"2025-03-01T10:00:00Z"}`, rr.Body.String())

	rr = ts.do(http.MethodGet, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	ts.assertExpectations(t)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(nil)

	// The first scrape records itself, the second one exposes it.
	ts.do(http.MethodGet, "/metrics", "")
	rr := ts.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",path="/metrics",status="200"}`)
}

func TestServer_SwaggerIsServed(t *testing.T) {
	ts := newTestServer(nil)

	rr := ts.do(http.MethodGet, "/swagger/openapi.yaml", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/issues/report")
}
