// Package pdf draws job documents with Maroto v2.
//
// Invoice layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: workshop name + GST  │  INVOICE + number + date     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Address / Phone                                             │
//	│  BILL TO: customer + vehicle                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICE DETAILS: description | amount                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Total / Paid / Balance                              │
//	└─────────────────────────────────────────────────────────────┘
//
// The job card shares the header and adds the work order details plus a QR
// code carrying the job id.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/revops-api/internal/application/documents"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02 Jan 2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements documents.Renderer.
type MarotoPDFGenerator struct{}

var _ documents.Renderer = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Invoice renders the customer invoice.
func (g *MarotoPDFGenerator) Invoice(doc documents.JobDocument) ([]byte, error) {
	m := maroto.New(pageConfig("Invoice "+doc.ShortID, doc.WorkshopName))

	m.AddRows(headerRow(doc, "INVOICE"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(workshopRow(doc))
	m.AddRows(billToRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(serviceRow(doc))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow("Thank you for your business."))

	return generate(m, "invoice")
}

// JobCard renders the work order handed to the workshop floor.
func (g *MarotoPDFGenerator) JobCard(doc documents.JobDocument) ([]byte, error) {
	m := maroto.New(pageConfig("Job card "+doc.ShortID, doc.WorkshopName))

	m.AddRows(headerRow(doc, "JOB CARD"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(workshopRow(doc))
	m.AddRows(billToRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range workOrderRows(doc) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(doc.JobID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			amountLine("Estimated:", doc.Estimated, 2),
			amountLine("Advance:", doc.Advance, 9),
			amountLine("Paid:", doc.Paid, 16),
			text.New("Balance: "+doc.Balance, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 24, Left: 3, Color: colorPrimary,
			}),
		),
	))

	return generate(m, "job card")
}

func pageConfig(title, author string) *entity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(author, "Workshop"), true).
		Build()
}

func generate(m core.Maroto, kind string) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate %s: %w", kind, err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: workshop name + GST (left), title + number + date (right).
func headerRow(doc documents.JobDocument, title string) core.Row {
	left := []core.Component{
		text.New(nonEmpty(doc.WorkshopName, "Workshop"), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if doc.GSTNumber != "" {
		left = append(left, text.New("GST: "+doc.GSTNumber, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}
	return row.New(18).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+doc.ShortID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+doc.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func workshopRow(doc documents.JobDocument) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Address: %s   |   Phone: %s",
				nonEmpty(doc.WorkshopAddress, "-"),
				nonEmpty(doc.WorkshopPhone, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// billToRow: customer and vehicle.
func billToRow(doc documents.JobDocument) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Phone: %s   |   Address: %s",
				nonEmpty(doc.Phone, "-"),
				nonEmpty(doc.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Vehicle: %s   |   Model: %s",
				nonEmpty(doc.VehicleNumber, "-"),
				nonEmpty(doc.CarModel, "-"),
			), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("SERVICE DETAILS", 9, align.Left),
		h("Amount", 3, align.Right),
	)
}

func serviceRow(doc documents.JobDocument) core.Row {
	return row.New(14).Add(
		col.New(9).Add(text.New(nonEmpty(doc.WorkDescription, "Vehicle service"), props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(3).Add(text.New(doc.Estimated, props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: Total / Paid / Balance, right aligned.
func totalsRow(doc documents.JobDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 14,
		})
	}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:", 2),
			label("Paid:", 8),
			label("Balance:", 14),
		),
		col.New(3).Add(
			value(doc.Estimated, 2),
			value(doc.Paid, 8),
			grand(doc.Balance),
		),
	)
}

func workOrderRows(doc documents.JobDocument) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(7).Add(
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorPrimary,
			})),
			col.New(9).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 8, Top: 1})),
		)
	}
	completed := "-"
	if doc.CompletedAt != nil {
		completed = doc.CompletedAt.Format(dateLayout)
	}
	return []core.Row{
		field("Work description", doc.WorkDescription),
		field("Parts required", doc.PartsRequired),
		field("Worker assigned", doc.WorkerAssigned),
		field("Status", doc.Status),
		field("Completed", completed),
	}
}

func amountLine(label, value string, top float64) core.Component {
	return text.New(label+" "+value, props.Text{Size: 9, Top: top, Left: 3})
}

func footerRow(msg string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorPrimary, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
