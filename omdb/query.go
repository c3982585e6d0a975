package omdb

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/mo"
)

// PageSize is the number of results the API returns per page.
const PageSize = 10

// TotalPages is ceil(totalCount / PageSize).
func TotalPages(totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + PageSize - 1) / PageSize
}

// Filters narrow a search. Empty fields are absent.
type Filters struct {
	StartYear string `json:"startYear,omitempty" validate:"omitempty,len=4,numeric"`
	EndYear   string `json:"endYear,omitempty" validate:"omitempty,len=4,numeric"`
	Type      Type   `json:"type,omitempty" validate:"omitempty,oneof=movie series episode"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// ToggleType selects t, or clears the type when t is already selected.
func (f Filters) ToggleType(t Type) Filters {
	if f.Type == t {
		f.Type = ""
	} else {
		f.Type = t
	}
	return f
}

// YearExpression builds the y parameter: "1990" for a start year alone,
// "1990-1999" for a range. An end year without a start year is sent alone.
func (f Filters) YearExpression() mo.Option[string] {
	switch {
	case f.StartYear != "" && f.EndYear != "":
		return mo.Some(f.StartYear + "-" + f.EndYear)
	case f.StartYear != "":
		return mo.Some(f.StartYear)
	case f.EndYear != "":
		return mo.Some(f.EndYear)
	default:
		return mo.None[string]()
	}
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}()

// Validate checks year format, the type enum and that the range is not inverted.
func (f Filters) Validate() error {
	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		messages := make([]string, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			messages = append(messages, fmt.Sprintf("%s: %s", e.Field(), friendly(e)))
		}
		return fmt.Errorf("invalid filters: %s", strings.Join(messages, "; "))
	}

	if f.StartYear != "" && f.EndYear != "" && f.EndYear < f.StartYear {
		return fmt.Errorf("invalid filters: endYear %s is before startYear %s", f.EndYear, f.StartYear)
	}

	return nil
}

func friendly(e validator.FieldError) string {
	switch e.Tag() {
	case "len", "numeric":
		return "must be a four digit year"
	case "oneof":
		return "must be one of " + e.Param()
	default:
		return "failed " + e.Tag()
	}
}

// Query is a single search request.
type Query struct {
	Text    string
	Filters Filters
	Page    int
}

// Values encodes the query as API parameters.
func (q Query) Values() url.Values {
	values := url.Values{}
	values.Set("s", q.Text)
	values.Set("r", "json")
	values.Set("page", strconv.Itoa(max(q.Page, 1)))

	if q.Filters.Type != "" {
		values.Set("type", string(q.Filters.Type))
	}

	if y, ok := q.Filters.YearExpression().Get(); ok {
		values.Set("y", y)
	}

	return values
}
