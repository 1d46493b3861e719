package plan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taktplan/taktplan/internal/utils"
	"github.com/taktplan/taktplan/pkg/holiday"
	"github.com/taktplan/taktplan/pkg/item"
)

func mustMonth(t *testing.T, s string) holiday.Month {
	t.Helper()
	month, err := holiday.MonthFromString(s)
	require.NoError(t, err)
	return month
}

func setupHandlerTest(t *testing.T) (*Handler, func()) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.April, 15, 12, 0, 0, 0, time.UTC)}
	handler := NewHandler(service, NewCsvRenderer(), clock)
	return handler, func() {
		planRepoStub.Cleanup()
		itemRepoStub.Cleanup()
		holidayRepoStub.Cleanup()
	}
}

func addTestItem(t *testing.T, code string, name string) item.Item {
	t.Helper()
	created, err := itemService.RegisterItem(ctx, item.Item{Code: code, Name: name})
	require.NoError(t, err)
	return created
}

func TestGetMonthView_DefaultsToCurrentMonth(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	w := httptest.NewRecorder()

	handler.GetMonthView(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var view MonthViewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, "2025-04", view.Month)
	assert.Len(t, view.Days, 30)
}

func TestGetMonthView_ExplicitMonth(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()
	widget := addTestItem(t, "10001", "Widget")
	_, err := service.SaveBatch(ctx, mustMonth(t, "2025-03"), []Edit{
		{ItemId: widget.Id, Date: date(2025, time.March, 10), Quantity: "15"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/plan?month=2025-03", nil)
	w := httptest.NewRecorder()

	handler.GetMonthView(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var view MonthViewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, "2025-03", view.Month)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 15, view.Items[0].Quantities["2025-03-10"])

	// March 21st 2025 is the vernal equinox
	for _, day := range view.Days {
		if day.Date == "2025-03-21" {
			assert.True(t, day.NonWorking)
			assert.Equal(t, "Vernal Equinox Day", day.Label)
		}
	}
}

func TestGetMonthView_InvalidMonthFallsBackToCurrent(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/plan?month=garbage", nil)
	w := httptest.NewRecorder()

	handler.GetMonthView(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var view MonthViewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, "2025-04", view.Month)
}

func TestSaveBatchHandler(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()
	widget := addTestItem(t, "10001", "Widget")

	body, err := json.Marshal(SaveBatchRequestDTO{
		Month: "2025-04",
		Edits: []EditDTO{
			{ItemId: widget.Id, Date: "2025-04-10", Quantity: "15"},
			{ItemId: widget.Id, Date: "2025-04-11", Quantity: "200"},
		},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SaveBatch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response SaveBatchResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, 1, response.Saved)
	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], "10001")
}

func TestSaveBatchHandler_InvalidMonth(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()

	body := `{"month": "April 2025", "edits": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SaveBatch(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveBatchHandler_MalformedEditDateIsSkipped(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()
	addTestItem(t, "10001", "Widget")

	body := `{"month": "2025-04", "edits": [{"itemId": 1, "date": "10/04/2025", "quantity": "5"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SaveBatch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response SaveBatchResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, 0, response.Saved)
	assert.Empty(t, response.Errors)
}

func TestExportCsvHandler(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()
	widget := addTestItem(t, "10001", "Widget")
	_, err := service.SaveBatch(ctx, mustMonth(t, "2025-04"), []Edit{
		{ItemId: widget.Id, Date: date(2025, time.April, 10), Quantity: "15"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/plan/export?month=2025-04", nil)
	w := httptest.NewRecorder()

	handler.ExportCsv(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=plan-2025-04.csv", w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Code,Name,1,"))
	assert.True(t, strings.HasPrefix(lines[1], "10001,Widget,"))
}
