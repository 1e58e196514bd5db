package blackout

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/core"
	"github.com/xtanyr/lunch/internal/location"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return calendar.Valid(fl.Field().String())
	})
	return v
}

type Service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewService(repo Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log}
}

// Get returns the city's range, or nil when ordering is open.
func (s *Service) Get(ctx context.Context, city string) (*Range, error) {
	rng, err := s.repo.Get(ctx, location.CityKey(city))
	if err != nil {
		return nil, core.Storage("get disabled dates", err)
	}
	return rng, nil
}

// Set replaces the city's range. A nil range reopens ordering.
func (s *Service) Set(ctx context.Context, city string, rng *Range) error {
	if rng != nil {
		if err := validate.Struct(rng); err != nil {
			return core.Invalid(core.CodeInvalidRange, "Invalid range format")
		}
		if rng.StartDate > rng.EndDate {
			return core.Invalid(core.CodeInvalidRange, "startDate must not be after endDate")
		}
	}

	key := location.CityKey(city)
	if err := s.repo.Put(ctx, key, rng); err != nil {
		return core.Storage("put disabled dates", err)
	}

	entry := s.log.WithField("city", key)
	if rng == nil {
		entry.Info("disabled dates cleared")
	} else {
		entry.WithFields(logrus.Fields{"start": rng.StartDate, "end": rng.EndDate}).Info("disabled dates set")
	}
	return nil
}

// IsDisabled reports whether orders for date are blocked in city, and with
// which message.
func (s *Service) IsDisabled(ctx context.Context, city, date string) (Status, error) {
	rng, err := s.Get(ctx, city)
	if err != nil {
		return Status{}, err
	}
	if rng == nil || !rng.Contains(date) {
		return Status{}, nil
	}
	return Status{Disabled: true, Message: rng.Message}, nil
}
