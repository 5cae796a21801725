package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/system.txt
	systemRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	System string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		System: strings.TrimSpace(systemRaw),
	}
}

// Variables fill the {placeholders} of the system prompt.
type Variables struct {
	Brand           string
	PromoWindow     string
	DiscountPercent string
	TimezoneLabel   string
	SupportEmail    string
}

func (v Variables) Map() map[string]any {
	brand := strings.TrimSpace(v.Brand)
	if brand == "" {
		brand = "Sierra Outfitters"
	}
	return map[string]any{
		"brand":            brand,
		"promo_window":     v.PromoWindow,
		"discount_percent": v.DiscountPercent,
		"timezone_label":   v.TimezoneLabel,
		"support_email":    v.SupportEmail,
	}
}
