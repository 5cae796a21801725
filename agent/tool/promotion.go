package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const discountTokenLength = 8

type DiscountCodeOutput struct {
	contractx.Outcome
	DiscountCode string `json:"discount_code"`
}

func (e *Executor) generateDiscountCode(_ context.Context) (contractx.ToolResult, error) {
	return e.GenerateDiscountCode()
}

// PromotionOpen reports whether t falls in [start:00, end:00) on its day in
// the configured timezone.
func (e *Executor) PromotionOpen(t time.Time) bool {
	local := t.In(e.loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d, e.cfg.PromoStartHour, 0, 0, 0, e.loc)
	end := time.Date(y, m, d, e.cfg.PromoEndHour, 0, 0, 0, e.loc)
	return !local.Before(start) && local.Before(end)
}

// GenerateDiscountCode issues a fresh Early Risers code inside the window.
// Codes are not recorded; every call is independent.
func (e *Executor) GenerateDiscountCode() (contractx.ToolResult, error) {
	now := e.now().In(e.loc)
	open := e.PromotionOpen(now)
	e.logger.Info().Bool("eligible", open).Str("local_time", now.Format("15:04:05")).Msg("early risers eligibility checked")

	if !open {
		return contractx.Failure(fmt.Sprintf(
			"The Early Risers Promotion is only available between %s %s. It's currently %s %s. Come back during our promotion hours to claim your discount! The mountains will be waiting! 🏔️",
			e.cfg.PromoWindow(), e.cfg.TimezoneLabel, now.Format("03:04 PM"), e.cfg.TimezoneLabel,
		)), nil
	}

	token, err := e.discountToken()
	if err != nil {
		return nil, err
	}
	code := e.cfg.DiscountCodePrefix + "-" + token
	e.logger.Info().Str("discount_code", code).Msg("generated early risers discount code")

	return DiscountCodeOutput{
		Outcome: contractx.Outcome{
			Success: true,
			FormattedResponse: fmt.Sprintf(
				"You've earned an Early Risers discount! Use code %s for %s off your next purchase. The early explorer catches the best views! 🏔️",
				code, e.cfg.DiscountPercent,
			),
		},
		DiscountCode: code,
	}, nil
}

func (e *Executor) discountToken() (string, error) {
	id := strings.ReplaceAll(e.newID(), "-", "")
	if len(id) < discountTokenLength {
		return "", fmt.Errorf("%w: identifier %q too short for a discount code", contractx.ErrToolFault, id)
	}
	return strings.ToUpper(id[:discountTokenLength]), nil
}
