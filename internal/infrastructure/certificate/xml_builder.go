// Package certificate builds data-destruction certificates as XML documents.
// Clients archive these as compliance evidence for audits; the schema follows
// the ADISA/NIST 800-88 reporting conventions.
package certificate

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

var _ billing.CertificateBuilder = (*XMLBuilder)(nil)

// XMLBuilder builds the destruction certificate document with etree.
type XMLBuilder struct{}

// NewXMLBuilder creates the builder.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Build renders the certificate for a booking from its sanitisation records.
// The booking must have reached sanitised; callers enforce that.
func (b *XMLBuilder) Build(booking *entity.Booking, records []*entity.SanitisationRecord) ([]byte, error) {
	if booking == nil {
		return nil, fmt.Errorf("certificate: booking is required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DataDestructionCertificate")
	root.CreateAttr("xmlns", "urn:ecotrace:itad:certificate:v1")
	root.CreateAttr("issuedAt", time.Now().UTC().Format(time.RFC3339))

	header := root.CreateElement("Engagement")
	header.CreateElement("BookingNumber").SetText(booking.BookingNumber)
	header.CreateElement("ClientName").SetText(booking.ClientName)
	header.CreateElement("SiteAddress").SetText(booking.SiteAddress)
	if booking.SanitisedAt != nil {
		header.CreateElement("SanitisedAt").SetText(booking.SanitisedAt.UTC().Format(time.RFC3339))
	}
	items := header.CreateElement("AssetItems")
	for _, item := range booking.AssetItems {
		e := items.CreateElement("Item")
		e.CreateAttr("category", item.CategoryID)
		e.CreateAttr("quantity", fmt.Sprintf("%d", item.Quantity))
	}

	evidence := root.CreateElement("SanitisationEvidence")
	evidence.CreateAttr("recordCount", fmt.Sprintf("%d", len(records)))
	for _, rec := range records {
		e := evidence.CreateElement("Record")
		e.CreateElement("AssetCategory").SetText(rec.AssetCategoryID)
		e.CreateElement("Method").SetText(rec.Method)
		e.CreateElement("PerformedBy").SetText(rec.PerformedBy)
		e.CreateElement("PerformedAt").SetText(rec.PerformedAt.UTC().Format(time.RFC3339))
		e.CreateElement("Verified").SetText(fmt.Sprintf("%t", rec.Verified))
	}

	attestation := root.CreateElement("Attestation")
	attestation.CreateElement("Standard").SetText("NIST SP 800-88 Rev. 1")
	attestation.CreateElement("Statement").SetText(
		"All data-bearing media within the listed asset categories were sanitised " +
			"using the methods recorded above. Media that could not be sanitised were " +
			"physically destroyed.")

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("certificate: serialize document: %w", err)
	}
	return out, nil
}
