package requests

import "time"

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Category string

const (
	CategoryFood        Category = "Food"
	CategoryMedicine    Category = "Medicine"
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"
	CategoryBooks       Category = "Books"
	CategoryOther       Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryMedicine, CategoryClothing, CategoryElectronics, CategoryBooks, CategoryOther:
		return true
	}
	return false
}

// UserSummary is the participant projection embedded in request reads.
type UserSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Rating          float64 `json:"rating"`
	TotalRequests   int     `json:"totalRequests"`
	TotalDeliveries int     `json:"totalDeliveries"`
}

type Request struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Description       *string      `json:"description,omitempty"`
	Category          Category     `json:"category"`
	Quantity          int          `json:"quantity"`
	EstimatedValue    *float64     `json:"estimatedValue,omitempty"`
	SourceCity        string       `json:"sourceCity"`
	SourceShop        *string      `json:"sourceShop,omitempty"`
	SourceAddress     *string      `json:"sourceAddress,omitempty"`
	AlternativeSource *string      `json:"alternativeSource,omitempty"`
	DeliveryCity      string       `json:"deliveryCity"`
	MeetupArea        *string      `json:"meetupArea,omitempty"`
	DueDate           time.Time    `json:"dueDate"`
	Status            Status       `json:"status"`
	RequesterID       string       `json:"requesterId"`
	FulfillerID       *string      `json:"fulfillerId,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	Requester         *UserSummary `json:"requester,omitempty"`
	Fulfiller         *UserSummary `json:"fulfiller,omitempty"`
	MessageCount      int          `json:"messageCount"`
}

// PublicRequester strips contact fields down to what the public listing
// may expose.
type PublicRequester struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Rating          float64 `json:"rating"`
	TotalRequests   int     `json:"totalRequests"`
	TotalDeliveries int     `json:"totalDeliveries"`
}

// PublicRequest is the field-limited projection served without
// authentication. Internal sourcing details are excluded.
type PublicRequest struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Category       Category        `json:"category"`
	Quantity       int             `json:"quantity"`
	EstimatedValue *float64        `json:"estimatedValue,omitempty"`
	SourceCity     string          `json:"sourceCity"`
	DeliveryCity   string          `json:"deliveryCity"`
	Status         Status          `json:"status"`
	DueDate        time.Time       `json:"dueDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	Requester      PublicRequester `json:"requester"`
	MessageCount   int             `json:"messageCount"`
}

// Pagination is the page envelope shared by list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

func NewPagination(total, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}
