package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// AssetItemRequest one booking line: category + quantity.
type AssetItemRequest struct {
	CategoryID string `json:"categoryId"`
	Quantity   int    `json:"quantity"`
}

// CreateBookingRequest creates a booking in `created`.
type CreateBookingRequest struct {
	ClientID       string             `json:"clientId"`
	ClientName     string             `json:"clientName"`
	ResellerID     string             `json:"resellerId,omitempty"`
	ResellerName   string             `json:"resellerName,omitempty"`
	SiteAddress    string             `json:"siteAddress"`
	ScheduledDate  *time.Time         `json:"scheduledDate,omitempty"`
	AssetItems     []AssetItemRequest `json:"assetItems"`
	CharityPercent decimal.Decimal    `json:"charityPercent"`
}

// AssignDriverRequest assigns a driver to a booking in `created`.
type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// UpdateBookingStatusRequest requests a status transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse full booking view.
type BookingResponse struct {
	ID               string             `json:"id"`
	BookingNumber    string             `json:"bookingNumber"`
	ClientID         string             `json:"clientId"`
	ClientName       string             `json:"clientName"`
	ResellerID       string             `json:"resellerId,omitempty"`
	ResellerName     string             `json:"resellerName,omitempty"`
	SiteAddress      string             `json:"siteAddress"`
	ScheduledDate    *time.Time         `json:"scheduledDate,omitempty"`
	Status           string             `json:"status"`
	AssetItems       []entity.AssetItem `json:"assetItems"`
	EstimatedBuyback decimal.Decimal    `json:"estimatedBuyback"`
	EstimatedCO2e    decimal.Decimal    `json:"estimatedCo2e"`
	CharityPercent   decimal.Decimal    `json:"charityPercent"`
	JobID            string             `json:"jobId,omitempty"`
	DriverID         string             `json:"driverId,omitempty"`
	ScheduledBy      string             `json:"scheduledBy,omitempty"`
	ScheduledAt      *time.Time         `json:"scheduledAt,omitempty"`
	CollectedAt      *time.Time         `json:"collectedAt,omitempty"`
	SanitisedAt      *time.Time         `json:"sanitisedAt,omitempty"`
	GradedAt         *time.Time         `json:"gradedAt,omitempty"`
	CompletedAt      *time.Time         `json:"completedAt,omitempty"`
	CancelledAt      *time.Time         `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ToBookingResponse maps the entity.
func ToBookingResponse(b *entity.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:               b.ID,
		BookingNumber:    b.BookingNumber,
		ClientID:         b.ClientID,
		ClientName:       b.ClientName,
		ResellerID:       b.ResellerID,
		ResellerName:     b.ResellerName,
		SiteAddress:      b.SiteAddress,
		ScheduledDate:    b.ScheduledDate,
		Status:           string(b.Status),
		AssetItems:       b.AssetItems,
		EstimatedBuyback: b.EstimatedBuyback,
		EstimatedCO2e:    b.EstimatedCO2e,
		CharityPercent:   b.CharityPercent,
		JobID:            b.JobID,
		DriverID:         b.DriverID,
		ScheduledBy:      b.ScheduledBy,
		ScheduledAt:      b.ScheduledAt,
		CollectedAt:      b.CollectedAt,
		SanitisedAt:      b.SanitisedAt,
		GradedAt:         b.GradedAt,
		CompletedAt:      b.CompletedAt,
		CancelledAt:      b.CancelledAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
