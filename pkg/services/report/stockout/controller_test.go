package stockout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func run(t *testing.T, raw string, q domain.ReportQuery) *domain.ReportPage {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	fetcher := new(mockFetcher)
	fetcher.On("FetchReport", mock.Anything, reportName, mock.Anything, mock.Anything).
		Return(payload, nil)

	ctrl, err := ControllerFactory(report.Dependencies{Fetcher: fetcher})
	require.NoError(t, err)

	page, err := ctrl.Run(context.Background(), q)
	require.NoError(t, err)
	return page
}

func TestParseReason(t *testing.T) {
	tests := []struct {
		raw      string
		expected domain.StockOutReason
	}{
		{"consumption", domain.ReasonConsumption},
		{"Internal Use", domain.ReasonConsumption},
		{"DAMAGED", domain.ReasonDamage},
		{"expired", domain.ReasonExpiry},
		{"branch transfer", domain.ReasonTransfer},
		{"Stock Adjustment", domain.ReasonAdjustment},
		{"whatever", domain.ReasonOther},
		{"", domain.ReasonOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseReason(tt.raw), "raw=%q", tt.raw)
	}
}

func TestRun_ListWithReasonTotals(t *testing.T) {
	page := run(t, `{"stock_out":[
		{"id":1,"ref_no":"SO-1","date":"2024-04-01","reason":"damage","qty":2,"amount":150},
		{"id":2,"ref_no":"SO-2","date":"2024-04-02","reason":"consumption","qty":5,"amount":400},
		{"id":3,"ref_no":"SO-3","date":"2024-04-02","reason":"damage","qty":1,"amount":50}
	]}`, domain.ReportQuery{PageSize: 10, Page: 1})

	assert.Len(t, page.Rows, 3)
	assert.Equal(t, 3, page.Summary["total_entries"])
	assert.Equal(t, "600.00", page.Summary["total_value"])

	reasons, ok := page.Summary["by_reason"].([]domain.Row)
	require.True(t, ok)
	require.Len(t, reasons, 2)

	byReason := map[string]domain.Row{}
	for _, r := range reasons {
		byReason[r["reason"].(string)] = r
	}
	assert.Equal(t, 2, byReason["damage"]["entries"])
	assert.Equal(t, 3.0, byReason["damage"]["quantity"])
}

func TestRun_ReasonFilter(t *testing.T) {
	raw := `{"stock_out":[
		{"id":1,"ref_no":"SO-1","date":"2024-04-01","reason":"damage","amount":150},
		{"id":2,"ref_no":"SO-2","date":"2024-04-02","reason":"consumption","amount":400}
	]}`

	page := run(t, raw, domain.ReportQuery{
		PageSize: 10, Page: 1,
		Filters: map[string]string{"reason": "damage"},
	})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "SO-1", page.Rows[0]["reference"])
	assert.Equal(t, "150.00", page.Summary["total_value"])
}

func TestRun_CancelledAndHeldEntriesNeverAppear(t *testing.T) {
	page := run(t, `{"stock_out":[
		{"id":1,"ref_no":"SO-1","date":"2024-04-01","amount":150,"status":"C"},
		{"id":2,"ref_no":"SO-2","date":"2024-04-01","amount":250,"status":"H"},
		{"id":3,"ref_no":"SO-3","date":"2024-04-01","amount":100,"status":"Y"}
	]}`, domain.ReportQuery{PageSize: 10, Page: 1})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "100.00", page.Summary["total_value"])
}

func TestRun_DropsEntriesWithoutIdentity(t *testing.T) {
	page := run(t, `{"stock_out":[
		{"date":"2024-04-01","amount":150},
		{"ref_no":"SO-2","date":"2024-04-01","amount":250}
	]}`, domain.ReportQuery{PageSize: 10, Page: 1})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "SO-2", page.Rows[0]["reference"])
}

func TestRun_DateWindow(t *testing.T) {
	page := run(t, `{"stock_out":[
		{"id":1,"ref_no":"SO-1","date":"2024-04-01","amount":100},
		{"id":2,"ref_no":"SO-2","date":"2024-04-15","amount":200}
	]}`, domain.ReportQuery{
		From:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC),
		PageSize: 10, Page: 1,
	})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "SO-1", page.Rows[0]["reference"])
}
