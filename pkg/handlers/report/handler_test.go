package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/report-hub/pkg/models/api"
	"github.com/de-tools/report-hub/pkg/models/domain"
	svc "github.com/de-tools/report-hub/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Describe() domain.ReportInfo {
	args := m.Called()
	return args.Get(0).(domain.ReportInfo)
}

func (m *mockController) Run(ctx context.Context, q domain.ReportQuery) (*domain.ReportPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportPage), args.Error(1)
}

func (m *mockController) Export(ctx context.Context, q domain.ReportQuery) (*domain.ReportExport, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportExport), args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchReport(ctx context.Context, name string, from, to time.Time) (any, error) {
	args := m.Called(ctx, name, from, to)
	return args.Get(0), args.Error(1)
}

func (m *mockFetcher) ReadTables(ctx context.Context, tables ...string) (any, error) {
	args := m.Called(ctx, tables)
	return args.Get(0), args.Error(1)
}

func reportRequest(target, report string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("report", report)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestRunReport(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		report         string
		setupMock      func(*mockController)
		expectedStatus int
	}{
		{
			name:   "successful response",
			target: "/reports/sales?from=2024-03-01&to=2024-03-07",
			report: "sales",
			setupMock: func(m *mockController) {
				m.On("Describe").Return(domain.ReportInfo{Name: "sales"})
				m.On("Run", mock.Anything, mock.Anything).Return(&domain.ReportPage{Report: "sales"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown report",
			target:         "/reports/nope",
			report:         "nope",
			setupMock:      func(m *mockController) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "upstream failure",
			target: "/reports/sales",
			report: "sales",
			setupMock: func(m *mockController) {
				m.On("Describe").Return(domain.ReportInfo{Name: "sales"})
				m.On("Run", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("backend unreachable"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := new(mockController)
			tt.setupMock(ctrl)
			handler := NewHandler(map[string]svc.Controller{"sales": ctrl}, svc.DefaultSettings(), new(mockFetcher))

			rec := httptest.NewRecorder()
			handler.RunReport(rec, reportRequest(tt.target, tt.report))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var page api.ReportPage
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
				assert.Equal(t, "sales", page.Report)
			}
			ctrl.AssertExpectations(t)
		})
	}
}

func TestExportReport_IgnoresPagination(t *testing.T) {
	ctrl := new(mockController)
	ctrl.On("Describe").Return(domain.ReportInfo{Name: "sales"})
	ctrl.On("Export", mock.Anything, mock.MatchedBy(func(q domain.ReportQuery) bool {
		return q.Page == 0 && q.PageSize == 0
	})).Return(&domain.ReportExport{Report: "sales"}, nil)

	handler := NewHandler(map[string]svc.Controller{"sales": ctrl}, svc.DefaultSettings(), new(mockFetcher))

	rec := httptest.NewRecorder()
	handler.ExportReport(rec, reportRequest("/reports/sales/export?page=3&page_size=25", "sales"))

	assert.Equal(t, http.StatusOK, rec.Code)
	ctrl.AssertExpectations(t)
}

func TestParseQuery(t *testing.T) {
	handler := NewHandler(nil, svc.DefaultSettings(), nil)
	info := domain.ReportInfo{FilterKeys: []string{"category", "payment_mode"}}

	t.Run("explicit window and filters", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/?from=2024-03-01&to=2024-03-07&search=asha&sort=net&dir=desc&page=2&page_size=25&category=spa&color=red",
			nil)

		q := handler.parseQuery(req, info)

		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), q.From)
		assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), q.To)
		assert.Equal(t, "asha", q.Search)
		assert.Equal(t, "net", q.SortKey)
		assert.Equal(t, domain.SortDesc, q.Direction)
		assert.Equal(t, 2, q.Page)
		assert.Equal(t, 25, q.PageSize)
		// Only declared filter keys survive.
		assert.Equal(t, map[string]string{"category": "spa"}, q.Filters)
	})

	t.Run("defaults", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		q := handler.parseQuery(req, info)

		assert.Equal(t, q.To.AddDate(0, 0, -6), q.From)
		assert.Equal(t, domain.SortAsc, q.Direction)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 10, q.PageSize)
		assert.Empty(t, q.Filters)
	})

	t.Run("bad values snap to defaults", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?from=garbage&page=-2&page_size=33&dir=sideways", nil)

		q := handler.parseQuery(req, info)

		assert.Equal(t, q.To.AddDate(0, 0, -6), q.From)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 10, q.PageSize)
		assert.Equal(t, domain.SortAsc, q.Direction)
	})
}
