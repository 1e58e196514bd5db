package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/blackout"
	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/core"
	"github.com/xtanyr/lunch/internal/location"
)

// DateGuard decides whether a city accepts orders for a date.
type DateGuard interface {
	IsDisabled(ctx context.Context, city, date string) (blackout.Status, error)
}

// AcceptedHook runs after an order has been stored.
type AcceptedHook func(EmployeeOrder)

type Service struct {
	repo  Repository
	guard DateGuard
	clock calendar.Clock
	log   logrus.FieldLogger
	locks core.KeyedMutex
	hooks []AcceptedHook
}

func NewService(
	repo Repository,
	guard DateGuard,
	clock calendar.Clock,
	log logrus.FieldLogger,
) *Service {
	return &Service{repo: repo, guard: guard, clock: clock, log: log}
}

// OnAccepted registers a hook run after every successful Submit.
func (s *Service) OnAccepted(hook AcceptedHook) {
	s.hooks = append(s.hooks, hook)
}

// Submit validates sub and stores it. Checks run in a fixed order and the
// first failure is returned as a core.ValidationError.
func (s *Service) Submit(ctx context.Context, sub Submission) (EmployeeOrder, error) {
	name := strings.TrimSpace(sub.EmployeeName)
	department := strings.TrimSpace(sub.Department)
	date := strings.TrimSpace(sub.OrderDate)

	if name == "" {
		return EmployeeOrder{}, core.Invalid(core.CodeMissingName, "Имя сотрудника обязательно.")
	}
	if department == "" {
		return EmployeeOrder{}, core.Invalid(core.CodeMissingDepartment, "Отдел обязателен.")
	}
	if date == "" {
		return EmployeeOrder{}, core.Invalid(core.CodeMissingDate, "Дата заказа обязательна.")
	}
	if !calendar.Valid(date) {
		return EmployeeOrder{}, core.Invalid(core.CodeInvalidDate, "Некорректная дата заказа: %s.", date)
	}
	if date < calendar.Today(s.clock) {
		return EmployeeOrder{}, core.Invalid(core.CodePastDate, "Нельзя создавать заказы на прошедшие даты.")
	}

	city := location.NormalizeCity(sub.City)
	status, err := s.guard.IsDisabled(ctx, city, date)
	if err != nil {
		return EmployeeOrder{}, err
	}
	if status.Disabled {
		return EmployeeOrder{}, core.Invalid(core.CodeDateDisabled, "%s", status.Message)
	}

	if len(sub.Items) == 0 {
		return EmployeeOrder{}, core.Invalid(core.CodeEmptyOrder, "Добавьте хотя бы одно блюдо в заказ.")
	}
	for i, it := range sub.Items {
		if strings.TrimSpace(it.DishID) == "" {
			return EmployeeOrder{}, core.Invalid(core.CodeInvalidItem, "Позиция %d заказа не содержит блюда.", i+1)
		}
	}

	// The duplicate check and the append must not interleave with another
	// submission for the same city.
	unlock := s.locks.Lock(location.CityKey(city))
	defer unlock()

	existing, err := s.repo.ListByCity(ctx, city, date)
	if err != nil {
		return EmployeeOrder{}, core.Storage("list orders", err)
	}
	for _, o := range existing {
		if strings.EqualFold(strings.TrimSpace(o.EmployeeName), name) &&
			strings.TrimSpace(o.Department) == department &&
			o.OrderDate == date {
			return EmployeeOrder{}, core.Invalid(core.CodeDuplicateOrder, "Вы уже отправили заказ на этот день для этого отдела.")
		}
	}

	o := EmployeeOrder{
		EmployeeName: name,
		Department:   department,
		OrderDate:    date,
		Items:        append([]Item(nil), sub.Items...),
		Address:      location.NormalizeAddress(sub.Address),
		City:         city,
		Timestamp:    s.clock.Now().UTC(),
	}
	if err := s.repo.Append(ctx, &o); err != nil {
		return EmployeeOrder{}, core.Storage("append order", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"city":     o.City,
		"address":  o.Address,
		"date":     o.OrderDate,
		"items":    len(o.Items),
	}).Info("order accepted")

	for _, hook := range s.hooks {
		hook(o)
	}
	return o, nil
}

func (s *Service) ListByDate(ctx context.Context, city, address, date string) ([]EmployeeOrder, error) {
	orders, err := s.repo.ListByDate(ctx, location.NewPartition(city, address), date)
	if err != nil {
		return nil, core.Storage("list orders", err)
	}
	return orders, nil
}

func (s *Service) ListByCity(ctx context.Context, city, date string) ([]EmployeeOrder, error) {
	orders, err := s.repo.ListByCity(ctx, city, date)
	if err != nil {
		return nil, core.Storage("list orders", err)
	}
	return orders, nil
}

func (s *Service) Addresses(ctx context.Context, city string) ([]string, error) {
	addresses, err := s.repo.ListAddresses(ctx, city)
	if err != nil {
		return nil, core.Storage("list addresses", err)
	}
	return addresses, nil
}

// Delete removes an order from the given partition.
func (s *Service) Delete(ctx context.Context, city, address, id string) error {
	p := location.NewPartition(city, address)
	ok, err := s.repo.DeleteByID(ctx, p, id)
	if err != nil {
		return core.Storage("delete order", err)
	}
	if !ok {
		return fmt.Errorf("order %s: %w", id, core.ErrNotFound)
	}

	s.log.WithFields(logrus.Fields{"order_id": id, "partition": p.Key()}).Info("order deleted")
	return nil
}
