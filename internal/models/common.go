package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Pagination mirrors the pagination block returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResult is a page of entities exactly as the backend reported it.
type ListResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Pagination returns the pagination metadata of the page.
func (r ListResult[T]) Pagination() Pagination {
	return Pagination{Page: r.Page, Limit: r.Limit, Total: r.Total, TotalPages: r.TotalPages}
}

// Well known filter keys shared by list endpoints.
const (
	FilterSearch         = "search"
	FilterStatus         = "status"
	FilterBelt           = "belt"
	FilterCategory       = "category"
	FilterReferenceMonth = "reference_month"
	FilterStudentID      = "student_id"
	FilterClassID        = "class_id"
	FilterTeacherID      = "teacher_id"
	FilterDate           = "date"
	FilterStartDate      = "start_date"
	FilterEndDate        = "end_date"
	FilterPaymentMethod  = "payment_method"
	FilterModuleID       = "module_id"
)

// Filter holds list query filters. Empty values are treated as unset.
type Filter map[string]string

// Clone returns an independent copy of the filter.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge returns a copy of f overlaid with other. Empty values in other remove the key.
func (f Filter) Merge(other Filter) Filter {
	out := f.Clone()
	for k, v := range other {
		if strings.TrimSpace(v) == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// ListQuery is the merged filter and pagination sent to a list endpoint.
type ListQuery struct {
	Filter Filter
	Page   int
	Limit  int
}

// Values encodes the query as URL parameters with stable ordering.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	keys := make([]string, 0, len(q.Filter))
	for k := range q.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(q.Filter[k]); v != "" {
			values.Set(k, v)
		}
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// Summary is the compact {id, name} form embedded in related entities.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date accepts both calendar dates and full timestamps from the backend.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the layouts the backend emits.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// String renders date-only values as YYYY-MM-DD and timestamps as RFC3339.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
		return d.Format("2006-01-02")
	}
	return d.Format(time.RFC3339)
}

// Money accepts amounts encoded as JSON numbers or numeric strings.
type Money float64

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", raw)
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// Float returns the amount as float64.
func (m Money) Float() float64 {
	return float64(m)
}

// String renders the amount in Brazilian currency notation.
func (m Money) String() string {
	negative := m < 0
	cents := int64(float64(m)*100 + 0.5)
	if negative {
		cents = int64(float64(m)*100 - 0.5)
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), cents%100)
}
