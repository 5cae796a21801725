package tool

import (
	"github.com/cloudwego/eino/schema"
)

// Kind enumerates the business tools the generator may call.
type Kind int

const (
	KindUnknown Kind = iota
	KindCheckOrderStatus
	KindGenerateDiscountCode
	KindCheckProductAvailability
)

const (
	ToolCheckOrderStatus         = "check_order_status"
	ToolGenerateDiscountCode     = "generate_discount_code"
	ToolCheckProductAvailability = "check_product_availability"
)

func (k Kind) String() string {
	switch k {
	case KindCheckOrderStatus:
		return ToolCheckOrderStatus
	case KindGenerateDiscountCode:
		return ToolGenerateDiscountCode
	case KindCheckProductAvailability:
		return ToolCheckProductAvailability
	default:
		return "unknown"
	}
}

func ParseKind(name string) (Kind, bool) {
	switch name {
	case ToolCheckOrderStatus:
		return KindCheckOrderStatus, true
	case ToolGenerateDiscountCode:
		return KindGenerateDiscountCode, true
	case ToolCheckProductAvailability:
		return KindCheckProductAvailability, true
	default:
		return KindUnknown, false
	}
}

// Infos declares the tool schemas sent to the generator. The return shape is
// part of the description because the chat completion wire format has no
// slot for it.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolCheckOrderStatus,
			Desc: "Check the status of an order by email and order number. Use this when a customer wants to know about their order status. " +
				`Returns {"success": boolean, "customer_name": string, "status": string, "tracking_info": string, "formatted_response": string}.`,
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"email":        {Type: schema.String, Desc: "Customer's email address associated with the order", Required: true},
				"order_number": {Type: schema.String, Desc: "Order number, with or without the # prefix", Required: true},
			}),
		},
		{
			Name: ToolGenerateDiscountCode,
			Desc: "Generate a unique discount code for the Early Risers Promotion. Only available during the promotion window. " +
				`Returns {"success": boolean, "discount_code": string, "formatted_response": string}.`,
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: ToolCheckProductAvailability,
			Desc: "Check product availability by SKU or product name. Use this when a customer asks about a specific product. " +
				`Returns {"success": boolean, "product_name": string, "sku": string, "in_stock": boolean, "inventory": integer, "formatted_response": string}.`,
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_query": {Type: schema.String, Desc: "Product SKU, name, or a descriptive term that might match product tags", Required: true},
			}),
		},
	}
}
