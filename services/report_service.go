package services

import (
	"context"
	"time"

	"takeout-api/logger"
	"takeout-api/models"

	"github.com/shopspring/decimal"
)

const (
	dateLayout   = "2006-01-02"
	topSellerCap = 10
)

type TurnoverReport struct {
	Dates    []string          `json:"dates"`
	Turnover []decimal.Decimal `json:"turnover"`
}

type UserReport struct {
	Dates      []string `json:"dates"`
	NewUsers   []int64  `json:"new_users"`
	TotalUsers []int64  `json:"total_users"`
}

type OrderReport struct {
	Dates          []string `json:"dates"`
	OrderCounts    []int64  `json:"order_counts"`
	ValidCounts    []int64  `json:"valid_order_counts"`
	TotalOrders    int64    `json:"total_orders"`
	ValidOrders    int64    `json:"valid_orders"`
	CompletionRate float64  `json:"completion_rate"`
}

type TopSellersReport struct {
	Names   []string `json:"names"`
	Numbers []int64  `json:"numbers"`
}

type ReportService struct {
	store  ReportStore
	loc    *time.Location
	logger *logger.Logger
}

func NewReportService(store ReportStore, loc *time.Location, log *logger.Logger) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{store: store, loc: loc, logger: log.WithComponent("report_service")}
}

// days lists every calendar date from begin to end inclusive, as local midnights
func (s *ReportService) days(begin, end time.Time) ([]time.Time, error) {
	first := s.midnight(begin)
	last := s.midnight(end)
	if first.After(last) {
		return nil, ErrInvalidDateRange
	}
	var out []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out, nil
}

func (s *ReportService) midnight(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// endOfDay is the last instant of the day starting at midnight
func endOfDay(midnight time.Time) time.Time {
	return midnight.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (s *ReportService) Turnover(ctx context.Context, begin, end time.Time) (*TurnoverReport, error) {
	days, err := s.days(begin, end)
	if err != nil {
		return nil, err
	}
	r := &TurnoverReport{
		Dates:    make([]string, len(days)),
		Turnover: make([]decimal.Decimal, len(days)),
	}
	for i, d := range days {
		sum, err := s.store.SumCompletedAmount(ctx, d, endOfDay(d))
		if err != nil {
			return nil, err
		}
		r.Dates[i] = d.Format(dateLayout)
		r.Turnover[i] = decimal.Zero
		if sum.Valid {
			r.Turnover[i] = sum.Decimal
		}
	}
	return r, nil
}

func (s *ReportService) UserGrowth(ctx context.Context, begin, end time.Time) (*UserReport, error) {
	days, err := s.days(begin, end)
	if err != nil {
		return nil, err
	}
	r := &UserReport{
		Dates:      make([]string, len(days)),
		NewUsers:   make([]int64, len(days)),
		TotalUsers: make([]int64, len(days)),
	}
	for i, d := range days {
		last := endOfDay(d)
		created, err := s.store.CountUsers(ctx, &d, last)
		if err != nil {
			return nil, err
		}
		total, err := s.store.CountUsers(ctx, nil, last)
		if err != nil {
			return nil, err
		}
		r.Dates[i] = d.Format(dateLayout)
		r.NewUsers[i] = created
		r.TotalUsers[i] = total
	}
	return r, nil
}

func (s *ReportService) OrderStats(ctx context.Context, begin, end time.Time) (*OrderReport, error) {
	days, err := s.days(begin, end)
	if err != nil {
		return nil, err
	}
	completed := models.StatusCompleted
	r := &OrderReport{
		Dates:       make([]string, len(days)),
		OrderCounts: make([]int64, len(days)),
		ValidCounts: make([]int64, len(days)),
	}
	for i, d := range days {
		last := endOfDay(d)
		total, err := s.store.CountOrders(ctx, d, last, nil)
		if err != nil {
			return nil, err
		}
		valid, err := s.store.CountOrders(ctx, d, last, &completed)
		if err != nil {
			return nil, err
		}
		r.Dates[i] = d.Format(dateLayout)
		r.OrderCounts[i] = total
		r.ValidCounts[i] = valid
		r.TotalOrders += total
		r.ValidOrders += valid
	}
	if r.TotalOrders > 0 {
		r.CompletionRate = float64(r.ValidOrders) / float64(r.TotalOrders)
	}
	return r, nil
}

// TopSellers ranks item names by quantity sold across the whole range
func (s *ReportService) TopSellers(ctx context.Context, begin, end time.Time) (*TopSellersReport, error) {
	first := s.midnight(begin)
	last := s.midnight(end)
	if first.After(last) {
		return nil, ErrInvalidDateRange
	}
	rows, err := s.store.TopSellers(ctx, first, endOfDay(last), topSellerCap)
	if err != nil {
		return nil, err
	}
	r := &TopSellersReport{
		Names:   make([]string, len(rows)),
		Numbers: make([]int64, len(rows)),
	}
	for i, row := range rows {
		r.Names[i] = row.Name
		r.Numbers[i] = row.Number
	}
	s.logger.Debug("Top sellers computed", "begin", first.Format(dateLayout), "end", last.Format(dateLayout), "items", len(rows))
	return r, nil
}
