package query

import (
	"encoding/json"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// IntRange is a numeric comparison. Eq, when set, wins over Gt and Lt.
type IntRange struct {
	Gt *int64
	Lt *int64
	Eq *int64
}

func (r *IntRange) empty() bool {
	return r == nil || (r.Gt == nil && r.Lt == nil && r.Eq == nil)
}

// FilmFilter selects films. Nil fields are not filtered on.
type FilmFilter struct {
	Category    *int64
	Language    *int64
	ReleaseYear *int64
	Actor       *int64
	Length      *IntRange
}

// RentalFilter selects rentals. Start and End bound rental_date inclusively.
type RentalFilter struct {
	Start      *time.Time
	End        *time.Time
	StoreID    *int64
	CustomerID *int64
	FilmID     *int64
}

// StoreFilter selects stores.
type StoreFilter struct {
	City       string
	ZipCode    string
	StaffCount *IntRange
}

// ParseFilmFilter reads the film filter from either a JSON object in the
// "filter" parameter or from bracketed parameters such as
// filter[length][gt]=90. A "filter" value that is not a JSON object fails
// with ErrInvalidFilter; values that are not integers are ignored.
func ParseFilmFilter(values url.Values) (FilmFilter, error) {
	var raw map[string]any
	if s := values.Get("filter"); s != "" {
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return FilmFilter{}, ErrInvalidFilter
		}
		// exactly one JSON value, nothing after it
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return FilmFilter{}, ErrInvalidFilter
		}
	} else {
		raw = bracketParams(values, "filter")
	}

	f := FilmFilter{
		Category:    toInt(raw["category"]),
		Language:    toInt(raw["language"]),
		ReleaseYear: toInt(raw["release_year"]),
		Actor:       toInt(raw["actor"]),
	}
	if r := toRange(raw["length"]); !r.empty() {
		f.Length = r
	}
	return f, nil
}

// ParseRentalFilter reads start_date, end_date, store_id, customer_id and
// film_id. Either date bound may be given alone. A date-only end_date covers
// the whole day.
func ParseRentalFilter(values url.Values) (RentalFilter, error) {
	var f RentalFilter
	if s := strings.TrimSpace(values.Get("start_date")); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return RentalFilter{}, err
		}
		f.Start = &t
	}
	if s := strings.TrimSpace(values.Get("end_date")); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return RentalFilter{}, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Second)
		}
		f.End = &t
	}
	f.StoreID = toInt(values.Get("store_id"))
	f.CustomerID = toInt(values.Get("customer_id"))
	f.FilmID = toInt(values.Get("film_id"))
	return f, nil
}

// ParseStoreFilter reads city, zip_code and the staff count comparison,
// given either as staff_count_gt style or staff_count[gt] style parameters.
func ParseStoreFilter(values url.Values) StoreFilter {
	f := StoreFilter{
		City:    strings.TrimSpace(values.Get("city")),
		ZipCode: strings.TrimSpace(values.Get("zip_code")),
	}
	r := toRange(bracketParams(values, "staff_count"))
	for op, dst := range map[string]**int64{"gt": &r.Gt, "lt": &r.Lt, "eq": &r.Eq} {
		if v := toInt(values.Get("staff_count_" + op)); v != nil {
			*dst = v
		}
	}
	if !r.empty() {
		f.StaffCount = r
	}
	return f
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), false, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, ErrInvalidDate
}

// bracketParams collects prefix[a][b]=v parameters into nested maps.
func bracketParams(values url.Values, prefix string) map[string]any {
	out := map[string]any{}
	for key, vs := range values {
		if len(vs) == 0 || !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
			continue
		}
		path := strings.Split(key[len(prefix)+1:len(key)-1], "][")
		node := out
		for i, seg := range path {
			if i == len(path)-1 {
				node[seg] = vs[0]
				break
			}
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[seg] = next
			}
			node = next
		}
	}
	return out
}

func toRange(v any) *IntRange {
	m, ok := v.(map[string]any)
	if !ok {
		return &IntRange{}
	}
	return &IntRange{Gt: toInt(m["gt"]), Lt: toInt(m["lt"]), Eq: toInt(m["eq"])}
}

// toInt coerces JSON numbers and numeric strings to an integer. Anything
// else, including fractional numbers and values outside the int64 range,
// yields nil.
func toInt(v any) *int64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return &n
		}
		var err error
		if f, err = t.Float64(); err != nil {
			return nil
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return nil
		}
	case float64:
		f = t
	case int64:
		return &t
	case int:
		n := int64(t)
		return &n
	default:
		return nil
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if math.IsNaN(f) || f != math.Trunc(f) || f >= float64(math.MaxInt64) || f < math.MinInt64 {
		return nil
	}
	n := int64(f)
	return &n
}
