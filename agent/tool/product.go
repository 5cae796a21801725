package tool

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const msgProductNotFound = "I couldn't find that product in our catalog. Can you try a different name or description? Every explorer needs the right gear for their journey! 🏔️"

type ProductAvailabilityOutput struct {
	contractx.Outcome
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	InStock     bool   `json:"in_stock"`
	Inventory   int    `json:"inventory"`
}

func (e *Executor) checkProductAvailability(_ context.Context, args map[string]any) (contractx.ToolResult, error) {
	query, err := stringArg(args, "product_query")
	if err != nil {
		return nil, err
	}
	return e.CheckProductAvailability(query), nil
}

// CheckProductAvailability resolves a product query and reports its stock.
func (e *Executor) CheckProductAvailability(query string) contractx.ToolResult {
	product, ok := e.store.FindProduct(query)
	if !ok {
		e.logger.Warn().Str("query", query).Msg("no product matched query")
		return contractx.Failure(msgProductNotFound)
	}

	var msg string
	switch {
	case !product.InStock():
		msg = fmt.Sprintf("I'm sorry, the %s (SKU: %s) is currently out of stock. Even the best trails need maintenance sometimes. Check back soon or explore our other adventure gear! 🏔️",
			product.ProductName, product.SKU)
	case product.Inventory < e.cfg.LowStockThreshold:
		msg = fmt.Sprintf("Good news, trail-seeker! The %s (SKU: %s) is available, but only %d left in stock! These are going faster than a downhill trail run! 🏔️",
			product.ProductName, product.SKU, product.Inventory)
	default:
		msg = fmt.Sprintf("Great choice! The %s (SKU: %s) is well-stocked with %d available. Ready for your next adventure! 🏔️",
			product.ProductName, product.SKU, product.Inventory)
	}

	return ProductAvailabilityOutput{
		Outcome: contractx.Outcome{
			Success:           true,
			FormattedResponse: msg,
		},
		ProductName: product.ProductName,
		SKU:         product.SKU,
		InStock:     product.InStock(),
		Inventory:   product.Inventory,
	}
}
