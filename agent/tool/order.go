package tool

import (
	"context"
	"fmt"

	"github.com/tanpawarit/sierra-outfitters-agent/agent/catalog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const (
	msgOrderNotFound = "We couldn't find your order. Please check your email and order number and try again. The mountain path is clearer with the right coordinates! 🏔️"
	msgNoTrackingYet = "No tracking information yet, but your adventure is coming soon! 🏔️"
)

type OrderStatusOutput struct {
	contractx.Outcome
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	TrackingInfo string `json:"tracking_info"`
}

func (e *Executor) checkOrderStatus(_ context.Context, args map[string]any) (contractx.ToolResult, error) {
	email, err := stringArg(args, "email")
	if err != nil {
		return nil, err
	}
	orderNumber, err := stringArg(args, "order_number")
	if err != nil {
		return nil, err
	}
	return e.CheckOrderStatus(email, orderNumber), nil
}

// CheckOrderStatus looks up an order by email and order number.
func (e *Executor) CheckOrderStatus(email, orderNumber string) contractx.ToolResult {
	order, ok := e.store.FindOrder(email, orderNumber)
	if !ok {
		e.logger.Warn().Str("order_number", catalog.NormalizeOrderNumber(orderNumber)).Msg("order not found")
		return contractx.Failure(msgOrderNotFound)
	}

	trackingInfo := ""
	if order.HasTracking() {
		trackingInfo = fmt.Sprintf("You can track your order at %s.", e.cfg.trackingURL(order.TrackingNumber))
	}

	out := OrderStatusOutput{
		Outcome: contractx.Outcome{
			Success:           true,
			FormattedResponse: e.orderStatusMessage(order, trackingInfo),
		},
		CustomerName: order.CustomerName,
		Status:       order.Status,
		TrackingInfo: trackingInfo,
	}
	if !order.HasTracking() {
		out.TrackingInfo = msgNoTrackingYet
	}
	return out
}

func (e *Executor) orderStatusMessage(order catalog.Order, trackingInfo string) string {
	switch order.Status {
	case "delivered":
		return fmt.Sprintf("Great news, %s! Your order %s has reached its destination. Your adventure gear is ready to use! 🏔️",
			order.CustomerName, order.OrderNumber)
	case "in-transit":
		return fmt.Sprintf("Hi %s! Your order %s is on the move - like a hiker on a mission! %s The peaks are waiting! 🏔️",
			order.CustomerName, order.OrderNumber, trackingInfo)
	case "fulfilled":
		return fmt.Sprintf("Hello %s! Your order %s has been packed and is ready to begin its journey! Onward into the unknown! 🏔️",
			order.CustomerName, order.OrderNumber)
	case "error":
		return fmt.Sprintf("There seems to be a boulder in the path of your order %s, %s. Please contact our customer service at %s. We're here to help you navigate the trail! 🏔️",
			order.OrderNumber, order.CustomerName, e.cfg.SupportEmail)
	default:
		return fmt.Sprintf("Hi %s! Your order %s is being processed. The adventure awaits! 🏔️",
			order.CustomerName, order.OrderNumber)
	}
}
