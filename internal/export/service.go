package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/core"
	"github.com/xtanyr/lunch/internal/location"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
	"github.com/xtanyr/lunch/internal/summary"
)

const (
	fetchLimit  = 4
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errNoData = core.Invalid(core.CodeNoData, "Нет данных для экспорта в выбранном диапазоне дат.")

// OrderSource supplies one partition's orders for a date.
type OrderSource interface {
	ListByDate(ctx context.Context, city, address, date string) ([]order.EmployeeOrder, error)
	Addresses(ctx context.Context, city string) ([]string, error)
}

// CatalogSource supplies the dishes and sides orders are resolved against.
type CatalogSource interface {
	Catalog(ctx context.Context, city string) (menu.Catalog, error)
}

// Uploader publishes a finished workbook and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	orders   OrderSource
	catalogs CatalogSource
	uploader Uploader
	log      logrus.FieldLogger
}

// NewService builds an export service. uploader may be nil, in which case
// workbooks can only be downloaded.
func NewService(
	orders OrderSource,
	catalogs CatalogSource,
	uploader Uploader,
	log logrus.FieldLogger,
) *Service {
	return &Service{orders: orders, catalogs: catalogs, uploader: uploader, log: log}
}

// CanUpload reports whether an object store is configured.
func (s *Service) CanUpload() bool { return s.uploader != nil }

// Build fetches every location's orders for each date of the request and
// renders them. A location whose orders cannot be read for a date is
// logged and left out of that date.
func (s *Service) Build(ctx context.Context, req Request) (*Workbook, error) {
	dates, err := validateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	city := location.NormalizeCity(req.City)

	catalog, err := s.catalogs.Catalog(ctx, city)
	if err != nil {
		return nil, err
	}
	locations, err := s.locations(ctx, city)
	if err != nil {
		return nil, err
	}

	fetched := make([][][]order.EmployeeOrder, len(dates))
	for di := range fetched {
		fetched[di] = make([][]order.EmployeeOrder, len(locations))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for di, date := range dates {
		di, date := di, date
		for li, loc := range locations {
			li, loc := li, loc
			g.Go(func() error {
				orders, err := s.orders.ListByDate(gctx, city, loc.ID, date)
				if err != nil {
					s.log.WithError(err).WithFields(logrus.Fields{
						"city":    city,
						"address": loc.ID,
						"date":    date,
					}).Warn("export: skipping location")
					return nil
				}
				fetched[di][li] = orders
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := Report{
		City:       city,
		Start:      req.Start,
		End:        req.End,
		Dates:      dates,
		Locations:  locations,
		WithTotals: req.WithTotals,
	}
	for di, date := range dates {
		day := Day{Date: date}
		var all []order.EmployeeOrder
		for li, loc := range locations {
			orders := fetched[di][li]
			if len(orders) == 0 {
				continue
			}
			all = append(all, orders...)
			day.Locations = append(day.Locations, LocationDay{
				Location: loc,
				Items:    displayed(summary.Aggregate(orders, catalog.Items, catalog.Sides)),
			})
		}
		if req.WithTotals && len(all) > 0 {
			day.Totals = displayed(summary.Aggregate(all, catalog.Items, catalog.Sides))
		}
		report.Days = append(report.Days, day)
	}

	wb, err := Build(report)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"city":   city,
		"start":  req.Start,
		"end":    req.End,
		"sheets": wb.Sheets,
		"bytes":  len(wb.Data),
	}).Info("export built")
	return wb, nil
}

// Publish uploads wb to object storage and returns its public URL.
func (s *Service) Publish(ctx context.Context, city string, wb *Workbook) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("export upload: no object storage configured")
	}
	key := fmt.Sprintf("exports/%s/%s/%s", location.CityKey(city), uuid.NewString(), wb.FileName)
	url, err := s.uploader.Upload(ctx, key, bytes.NewReader(wb.Data), contentType)
	if err != nil {
		return "", core.Storage("upload export", err)
	}
	return url, nil
}

// locations lists the city's configured addresses, then any other address
// that holds orders.
func (s *Service) locations(ctx context.Context, city string) ([]Location, error) {
	ids := location.AddressIDs(city)
	if ids == nil {
		ids = location.AddressIDs(location.DefaultCity)
	}

	stored, err := s.orders.Addresses(ctx, city)
	if err != nil {
		return nil, err
	}
	for _, a := range stored {
		if !slices.Contains(ids, a) {
			ids = append(ids, a)
		}
	}

	out := make([]Location, len(ids))
	for i, id := range ids {
		out[i] = Location{ID: id, Label: location.AddressLabel(city, id)}
	}
	return out, nil
}

func validateRange(start, end string) ([]string, error) {
	if !calendar.Valid(start) || !calendar.Valid(end) {
		return nil, core.Invalid(core.CodeInvalidRange, "Пожалуйста, выберите начальную и конечную даты.")
	}
	if start > end {
		return nil, core.Invalid(core.CodeInvalidRange, "Начальная дата не может быть позже конечной даты.")
	}
	dates, err := calendar.Range(start, end)
	if err != nil {
		return nil, core.Invalid(core.CodeInvalidRange, "%v", err)
	}
	if len(dates) > MaxDays {
		return nil, core.Invalid(core.CodeInvalidRange, "Максимальный диапазон дат - %d день.", MaxDays)
	}
	return dates, nil
}

// displayed keeps the rows of the three menu categories.
func displayed(items []summary.AggregatedItem) []summary.AggregatedItem {
	out := make([]summary.AggregatedItem, 0, len(items))
	for _, it := range items {
		if it.Category.Rank() < len(menu.Categories) {
			out = append(out, it)
		}
	}
	return out
}
