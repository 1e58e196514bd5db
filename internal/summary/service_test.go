package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtanyr/lunch/internal/blackout"
	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
)

func newServices(t *testing.T) (*Service, *order.Service) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := calendar.FixedClock(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC))

	menus := menu.NewService(menu.NewInMemoryRepository(), clock, log)
	guard := blackout.NewService(blackout.NewInMemoryRepository(), log)
	orders := order.NewService(order.NewInMemoryRepository(), guard, clock, log)
	return NewService(menus, orders), orders
}

func submit(t *testing.T, svc *order.Service, name, address, dishID string) {
	t.Helper()
	_, err := svc.Submit(context.Background(), order.Submission{
		EmployeeName: name,
		Department:   "IT Отдел",
		OrderDate:    "2025-06-10",
		Items:        []order.Item{{DishID: dishID}},
		Address:      address,
		City:         "omsk",
	})
	require.NoError(t, err)
}

func TestService_PartitionAndCity(t *testing.T) {
	sums, orders := newServices(t)
	ctx := context.Background()

	submit(t, orders, "A", "office", "salad_ham")
	submit(t, orders, "B", "office", "salad_ham")
	submit(t, orders, "C", "mira", "salad_ham")
	submit(t, orders, "D", "mira", "single_salmon_roll")

	office, err := sums.ForPartition(ctx, "omsk", "", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "office", office.Address)
	require.Len(t, office.Items, 1)
	assert.Equal(t, 2, office.Items[0].TotalQuantity)
	assert.Equal(t, 300.0, office.TotalAmount)
	assert.Equal(t, 2, office.OrderCount)

	city, err := sums.ForCity(ctx, "omsk", "2025-06-10")
	require.NoError(t, err)
	require.Len(t, city.Items, 2)
	assert.Equal(t, 3, city.Items[0].TotalQuantity)
	assert.Equal(t, 4, city.TotalQuantity)
	assert.Equal(t, 800.0, city.TotalAmount)
}

func TestHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sums, orders := newServices(t)
	submit(t, orders, "A", "office", "salad_ham")

	r := gin.New()
	r.GET("/summary/:date", NewHandler(sums).Get)

	req := httptest.NewRequest(http.MethodGet, "/summary/2025-06-10?city=omsk&grouped=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary Summary `json:"summary"`
		Groups  []Group `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.TotalQuantity)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, menu.Salads, resp.Groups[0].Category)
}
