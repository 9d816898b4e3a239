package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/middleware"
	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

func newTestRouter(t *testing.T) (http.Handler, *services.CatalogService) {
	t.Helper()
	clk := clock.Fake(time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	catalog := services.NewCatalogService(services.DefaultEvents(), clk, nil)
	router := NewRouter(RouterDeps{
		Catalog:      catalog,
		Transactions: services.NewTransactionService(services.DefaultTransactions()),
		Encoder:      services.NewQREncoder(services.DefaultQRSize),
		Clock:        clk,
	})
	return router, catalog
}

func doRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestListEvents(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"all", "/api/events", []string{"1", "2", "3", "4", "5"}},
		{"category", "/api/events?category=Entertainment", []string{"4", "5"}},
		{"search", "/api/events?search=golf", []string{"3"}},
		{"no match", "/api/events?search=nothing-here", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, "GET", tt.target, "")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var events []models.Event
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
			ids := []string{}
			for _, event := range events {
				ids = append(ids, event.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetEvent(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "GET", "/api/events/2", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &event))
	assert.Equal(t, "Mothers Day Conference", event.Name)
	require.Len(t, event.Tickets, 1)
	assert.Equal(t, int64(5000), event.Tickets[0].Price)

	rr = doRequest(router, "GET", "/api/events/404", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"event not found"}`, rr.Body.String())
}

func TestCreateEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, catalog := newTestRouter(t)

		body := `{"name":"Harare Jazz Night","date":"2025-07-12","category":"Music",
			"tickets":[{"name":"Standing","price":1500}]}`
		rr := doRequest(router, "POST", "/api/events", body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var created map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		require.NotEmpty(t, created["id"])
		assert.Equal(t, "/api/events/"+created["id"], rr.Header().Get("Location"))

		event, err := catalog.GetEvent(created["id"])
		require.NoError(t, err)
		assert.Equal(t, "TBA", event.Location)
		assert.Equal(t, created["id"]+"-1", event.Tickets[0].ID)
	})

	t.Run("validation errors per field", func(t *testing.T) {
		router, catalog := newTestRouter(t)

		rr := doRequest(router, "POST", "/api/events", `{"name":"","date":"12/07/2025"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "invalid event", body.Error)
		assert.Contains(t, body.Fields, "name")
		assert.Contains(t, body.Fields, "date")
		assert.Contains(t, body.Fields, "category")
		assert.Len(t, catalog.Events(), 5)
	})

	t.Run("malformed json", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doRequest(router, "POST", "/api/events", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doRequest(router, "POST", "/api/events", `{"title":"unknown field"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListCategories(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "GET", "/api/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["Music","Conference","Food","Entertainment"]`, rr.Body.String())
}

func TestListTransactions(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "GET", "/api/transactions", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var transactions []models.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &transactions))
	ids := []string{}
	for _, tx := range transactions {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"TX-002", "TX-001", "TX-003"}, ids)
	assert.Equal(t, models.TransactionRefunded, transactions[2].Status)

	rr = doRequest(router, "POST", "/api/transactions", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestTicketQRCode(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "GET", "/api/tickets/TIX-1746351015000-1/qr.png", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, services.DefaultQRSize, img.Bounds().Dx())

	rr = doRequest(router, "GET", "/api/tickets/not-a-ticket/qr.png", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, doRequest(router, "GET", "/api/nothing", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(router, "DELETE", "/api/events/1", "").Code)
}
