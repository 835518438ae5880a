// Package pdf renders the sales/commission report download.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/paulinho121/organizador/internal/models"
)

// SalesReport builds a PDF listing every sale with per-row commission and the
// grand totals.
func SalesReport(owner string, sales []models.Sale) ([]byte, error) {
	m := maroto.New()

	m.AddRows(text.NewRow(12, "Relatório de Vendas e Comissões", props.Text{
		Size:  15,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	if owner != "" {
		m.AddRows(text.NewRow(7, owner, props.Text{Size: 10, Align: align.Center}))
	}

	m.AddRow(8,
		text.NewCol(4, "Produto/Serviço", props.Text{Style: fontstyle.Bold}),
		text.NewCol(3, "Cliente", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Data", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Valor", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, "Com.", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	var totalValue, totalCommission float64
	for _, s := range sales {
		client := ""
		if s.Client != nil {
			client = s.Client.Name
		}
		m.AddRow(6,
			text.NewCol(4, s.ProductService),
			text.NewCol(3, client),
			text.NewCol(2, s.SaleDate),
			text.NewCol(2, fmt.Sprintf("%.2f", s.Value), props.Text{Align: align.Right}),
			text.NewCol(1, fmt.Sprintf("%.2f", s.CommissionValue), props.Text{Align: align.Right}),
		)
		totalValue += s.Value
		totalCommission += s.CommissionValue
	}

	m.AddRow(9,
		text.NewCol(9, "Totais", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, fmt.Sprintf("R$ %.2f", totalValue), props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(1, fmt.Sprintf("%.2f", totalCommission), props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
