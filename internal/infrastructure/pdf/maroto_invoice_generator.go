// Package pdf renders client-facing invoice documents.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: EcoTrace ITAD  │  Invoice number + issue date      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: client name + booking reference                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Asset category | Unit price | Line total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / VAT / TOTAL DUE + due date             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 58}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF renders the invoice and returns its bytes.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(inv.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(footerRow(inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name (left) and invoice number + issue date (right).
func headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("EcoTrace ITAD", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("IT Asset Disposition Services", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+inv.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billToRow: client and booking reference.
func billToRow(inv *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Booking reference: "+inv.BookingID, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Asset category", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

func tableLineRows(lines []entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.CategoryID,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"£"+l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"£"+l.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("VAT (20%):"),
			grandLabel("TOTAL DUE:"),
		),
		col.New(3).Add(
			value("£"+inv.Subtotal.StringFixed(2)),
			value("£"+inv.Tax.StringFixed(2)),
			grandValue("£"+inv.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

func footerRow(inv *entity.Invoice) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Payment due by %s. Assets processed in accordance with the WEEE Directive and NIST 800-88 media sanitisation guidelines.",
				inv.DueDate.Format("02/01/2006")),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
