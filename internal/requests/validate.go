package requests

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	maxTitleLen      = 100
	maxCityFilterLen = 100
	defaultLimit     = 20
	maxLimit         = 50
)

// CreateInput is the body of POST /requests. Status and identifiers are
// server-assigned and never client-supplied.
type CreateInput struct {
	Title             string   `json:"title"`
	Description       *string  `json:"description"`
	Category          Category `json:"category"`
	Quantity          int      `json:"quantity"`
	EstimatedValue    *float64 `json:"estimatedValue"`
	SourceCity        string   `json:"sourceCity"`
	SourceShop        *string  `json:"sourceShop"`
	SourceAddress     *string  `json:"sourceAddress"`
	AlternativeSource *string  `json:"alternativeSource"`
	DeliveryCity      string   `json:"deliveryCity"`
	MeetupArea        *string  `json:"meetupArea"`
	DueDate           time.Time `json:"dueDate"`
}

func (in CreateInput) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{"title", "title is required"})
	} else if len(in.Title) > maxTitleLen {
		errs = append(errs, FieldError{"title", "title too long"})
	}
	if !in.Category.Valid() {
		errs = append(errs, FieldError{"category", "invalid category"})
	}
	if in.Quantity <= 0 {
		errs = append(errs, FieldError{"quantity", "quantity must be positive"})
	}
	if in.EstimatedValue != nil && *in.EstimatedValue <= 0 {
		errs = append(errs, FieldError{"estimatedValue", "estimated value must be positive"})
	}
	if strings.TrimSpace(in.SourceCity) == "" {
		errs = append(errs, FieldError{"sourceCity", "source city is required"})
	}
	if strings.TrimSpace(in.DeliveryCity) == "" {
		errs = append(errs, FieldError{"deliveryCity", "delivery city is required"})
	}
	if in.DueDate.IsZero() {
		errs = append(errs, FieldError{"dueDate", "due date is required"})
	}

	return errs
}

// UpdateInput is the body of PUT /requests/:id. All fields are optional;
// only the fields present are written. A body carrying status must carry
// status alone: that is the direct override path and it bypasses the
// OPEN-only gate that applies to every other edit.
type UpdateInput struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Category          *Category  `json:"category"`
	Quantity          *int       `json:"quantity"`
	EstimatedValue    *float64   `json:"estimatedValue"`
	SourceCity        *string    `json:"sourceCity"`
	SourceShop        *string    `json:"sourceShop"`
	SourceAddress     *string    `json:"sourceAddress"`
	AlternativeSource *string    `json:"alternativeSource"`
	DeliveryCity      *string    `json:"deliveryCity"`
	MeetupArea        *string    `json:"meetupArea"`
	DueDate           *time.Time `json:"dueDate"`
	Status            *Status    `json:"status"`
}

// StatusOnly reports whether the update carries only a status change.
func (in UpdateInput) StatusOnly() bool {
	return in.Status != nil &&
		in.Title == nil && in.Description == nil && in.Category == nil &&
		in.Quantity == nil && in.EstimatedValue == nil && in.SourceCity == nil &&
		in.SourceShop == nil && in.SourceAddress == nil && in.AlternativeSource == nil &&
		in.DeliveryCity == nil && in.MeetupArea == nil && in.DueDate == nil
}

func (in UpdateInput) Validate() []FieldError {
	var errs []FieldError

	if in.Status != nil {
		if !in.Status.Valid() {
			errs = append(errs, FieldError{"status", "invalid status"})
		}
		if !in.StatusOnly() {
			errs = append(errs, FieldError{"status", "status cannot be combined with other fields"})
		}
		return errs
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			errs = append(errs, FieldError{"title", "title is required"})
		} else if len(*in.Title) > maxTitleLen {
			errs = append(errs, FieldError{"title", "title too long"})
		}
	}
	if in.Category != nil && !in.Category.Valid() {
		errs = append(errs, FieldError{"category", "invalid category"})
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		errs = append(errs, FieldError{"quantity", "quantity must be positive"})
	}
	if in.EstimatedValue != nil && *in.EstimatedValue <= 0 {
		errs = append(errs, FieldError{"estimatedValue", "estimated value must be positive"})
	}
	if in.SourceCity != nil && strings.TrimSpace(*in.SourceCity) == "" {
		errs = append(errs, FieldError{"sourceCity", "source city is required"})
	}
	if in.DeliveryCity != nil && strings.TrimSpace(*in.DeliveryCity) == "" {
		errs = append(errs, FieldError{"deliveryCity", "delivery city is required"})
	}

	return errs
}

// ListFilter holds the validated query parameters of the list endpoints.
type ListFilter struct {
	Category     *Category
	Status       *Status
	DeliveryCity string
	Limit        int
	Offset       int
}

// ParseListFilter validates list query parameters. Out-of-range limit and
// offset values are rejected, not clamped.
func ParseListFilter(q url.Values) (ListFilter, []FieldError) {
	f := ListFilter{Limit: defaultLimit}
	var errs []FieldError

	if v := q.Get("category"); v != "" {
		cat := Category(v)
		if !cat.Valid() {
			errs = append(errs, FieldError{"category", "invalid category"})
		} else {
			f.Category = &cat
		}
	}

	if v := q.Get("status"); v != "" {
		st := Status(v)
		if !st.Valid() {
			errs = append(errs, FieldError{"status", "invalid status"})
		} else {
			f.Status = &st
		}
	}

	if v := q.Get("deliveryCity"); v != "" {
		city := strings.TrimSpace(v)
		if len(city) > maxCityFilterLen {
			errs = append(errs, FieldError{"deliveryCity", "delivery city filter too long"})
		} else {
			f.DeliveryCity = city
		}
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			errs = append(errs, FieldError{"limit", "limit must be between 1 and 50"})
		} else {
			f.Limit = n
		}
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, FieldError{"offset", "offset must be non-negative"})
		} else {
			f.Offset = n
		}
	}

	return f, errs
}
