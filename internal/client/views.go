package client

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/application/usecase"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/inventory"
	"github.com/jhoicas/shop-inventory/pkg/money"
)

// FilterProducts aplica búsqueda por nombre/categoría y estado de stock sobre la lista ya descargada.
func FilterProducts(products []dto.ProductResponse, search string, status inventory.StockStatus) []dto.ProductResponse {
	byID := make(map[string]dto.ProductResponse, len(products))
	entities := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		entities = append(entities, usecase.ToProductEntity(p))
	}
	filtered := inventory.Filter(entities, search, status)
	out := make([]dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, byID[p.ID])
	}
	return out
}

// RenderDashboard tarjetas de resumen y productos recientes.
func RenderDashboard(w io.Writer, s *dto.InventorySummaryDTO) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Productos\t%s\n", money.Units(s.TotalProducts))
	fmt.Fprintf(tw, "En stock\t%s\n", money.Units(s.InStock))
	fmt.Fprintf(tw, "Stock bajo\t%s\n", money.Units(s.LowStock))
	fmt.Fprintf(tw, "Agotados\t%s\n", money.Units(s.OutOfStock))
	fmt.Fprintf(tw, "Unidades\t%s\n", money.Units(s.TotalUnits))
	fmt.Fprintf(tw, "Valor inventario\t%s\n", money.Format(s.TotalValue))
	fmt.Fprintf(tw, "Costo inventario\t%s\n", money.Format(s.TotalCost))
	fmt.Fprintf(tw, "Ganancia potencial\t%s\n", money.Format(s.PotentialProfit))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.Recent) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Productos recientes")
	return RenderProducts(w, s.Recent)
}

// RenderProducts tabla de inventario.
func RenderProducts(w io.Writer, products []dto.ProductResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCÓDIGO\tNOMBRE\tCATEGORÍA\tCANT.\tESTADO\tPRECIO")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.ProductID, p.Name, orDash(p.Category),
			money.Units(p.Quantity), p.StockStatus, money.Format(p.SellingPrice))
	}
	return tw.Flush()
}

// RenderProduct ficha de un producto.
func RenderProduct(w io.Writer, p *dto.ProductResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Código\t%s\n", p.ProductID)
	fmt.Fprintf(tw, "Nombre\t%s\n", p.Name)
	fmt.Fprintf(tw, "Descripción\t%s\n", orDash(p.Description))
	fmt.Fprintf(tw, "Categoría\t%s\n", orDash(p.Category))
	fmt.Fprintf(tw, "Cantidad\t%s (%s)\n", money.Units(p.Quantity), p.StockStatus)
	fmt.Fprintf(tw, "Precio costo\t%s\n", money.Format(p.CostPrice))
	fmt.Fprintf(tw, "Precio venta\t%s\n", money.Format(p.SellingPrice))
	fmt.Fprintf(tw, "Versión\t%d\n", p.Version)
	fmt.Fprintf(tw, "Actualizado\t%s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
