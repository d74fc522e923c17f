package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// UpdateJobStatusRequest a driver-initiated job transition.
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// AttachEvidenceRequest opaque collection evidence for a job.
type AttachEvidenceRequest struct {
	PhotoKeys    []string `json:"photoKeys,omitempty"`
	SignatureKey string   `json:"signatureKey,omitempty"`
	SealNumbers  []string `json:"sealNumbers,omitempty"`
}

// JobResponse full job view.
type JobResponse struct {
	ID               string             `json:"id"`
	JobNumber        string             `json:"jobNumber"`
	BookingID        string             `json:"bookingId"`
	Status           string             `json:"status"`
	DriverID         string             `json:"driverId"`
	DriverName       string             `json:"driverName,omitempty"`
	Vehicle          string             `json:"vehicle,omitempty"`
	AssetItems       []entity.AssetItem `json:"assetItems"`
	EstimatedBuyback decimal.Decimal    `json:"estimatedBuyback"`
	EstimatedCO2e    decimal.Decimal    `json:"estimatedCo2e"`
	PhotoKeys        []string           `json:"photoKeys,omitempty"`
	SignatureKey     string             `json:"signatureKey,omitempty"`
	SealNumbers      []string           `json:"sealNumbers,omitempty"`
	CompletedDate    *time.Time         `json:"completedDate,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ToJobResponse maps the entity.
func ToJobResponse(j *entity.Job) *JobResponse {
	if j == nil {
		return nil
	}
	return &JobResponse{
		ID:               j.ID,
		JobNumber:        j.JobNumber,
		BookingID:        j.BookingID,
		Status:           string(j.Status),
		DriverID:         j.DriverID,
		DriverName:       j.DriverName,
		Vehicle:          j.Vehicle,
		AssetItems:       j.AssetItems,
		EstimatedBuyback: j.EstimatedBuyback,
		EstimatedCO2e:    j.EstimatedCO2e,
		PhotoKeys:        j.PhotoKeys,
		SignatureKey:     j.SignatureKey,
		SealNumbers:      j.SealNumbers,
		CompletedDate:    j.CompletedDate,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}
