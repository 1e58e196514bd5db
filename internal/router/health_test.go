package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/auth"
	"github.com/xtanyr/lunch/internal/blackout"
	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/export"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
	"github.com/xtanyr/lunch/internal/summary"
)

func newTestRouter(t *testing.T, passphrase string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	clock := calendar.FixedClock(time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC))

	gate, err := auth.NewGate(passphrase, "test-secret", time.Hour, clock)
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	menus := menu.NewService(menu.NewInMemoryRepository(), clock, log)
	blackouts := blackout.NewService(blackout.NewInMemoryRepository(), log)
	orders := order.NewService(order.NewInMemoryRepository(), blackouts, clock, log)

	return NewRouter(Deps{
		Log:      log,
		Gate:     gate,
		Menu:     menus,
		Blackout: blackouts,
		Orders:   orders,
		Summary:  summary.NewService(menus, orders),
		Export:   export.NewService(orders, menus, nil, log),
	})
}

func serve(r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, "")

	w := serve(r, http.MethodGet, "/health", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestLocations(t *testing.T) {
	r := newTestRouter(t, "")

	w := serve(r, http.MethodGet, "/api/locations", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Омск") {
		t.Errorf("expected city directory in body, got %s", w.Body.String())
	}
}

func TestOrderFlow(t *testing.T) {
	r := newTestRouter(t, "")

	body := `{
		"employeeName": "Иван",
		"department": "IT",
		"orderDate": "2025-06-10",
		"items": [{"dishId": "soup_solyanka_meat"}],
		"address": "office",
		"city": "omsk"
	}`
	w := serve(r, http.MethodPost, "/api/orders", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/orders", body, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected duplicate to be rejected with 400, got %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/orders/2025-06-10?city=omsk&address=office", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listed []order.EmployeeOrder
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(listed) != 1 || listed[0].EmployeeName != "Иван" {
		t.Fatalf("unexpected orders: %+v", listed)
	}

	w = serve(r, http.MethodGet, "/api/summary/2025-06-10?city=omsk", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var sum summary.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalQuantity != 1 || sum.TotalAmount != 250 {
		t.Errorf("expected 1 item for 250, got %d for %v", sum.TotalQuantity, sum.TotalAmount)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	w := serve(r, http.MethodPut, "/api/disabled-dates?city=omsk", `null`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/admin/session", `{"passphrase":"wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong passphrase, got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/admin/session", `{"passphrase":"s3cret"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil || session.Token == "" {
		t.Fatalf("expected token in %s", w.Body.String())
	}

	rng := `{"startDate":"2025-06-09","endDate":"2025-06-11","message":"Праздники"}`
	w = serve(r, http.MethodPut, "/api/disabled-dates?city=omsk", rng, session.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/disabled-dates/check?city=omsk&date=2025-06-10", "", "")
	if !strings.Contains(w.Body.String(), `"disabled":true`) {
		t.Errorf("expected date to be disabled, got %s", w.Body.String())
	}
}

func TestReadRoutesStayOpen(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	for _, target := range []string{
		"/api/menu/items?city=omsk",
		"/api/menu/sides?city=omsk",
		"/api/menu/visible?city=omsk",
		"/api/menu/config?city=omsk",
		"/api/disabled-dates?city=omsk",
	} {
		w := serve(r, http.MethodGet, target, "", "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected status 200, got %d", target, w.Code)
		}
	}
}
