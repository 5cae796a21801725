package tool

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const trackingNumberPlaceholder = "{tracking_number}"

type Config struct {
	PromoStartHour      int    `split_words:"true" default:"8"`
	PromoEndHour        int    `split_words:"true" default:"10"`
	DiscountPercent     string `split_words:"true" default:"10%"`
	DiscountCodePrefix  string `split_words:"true" default:"EARLY10"`
	TrackingURLTemplate string `envconfig:"TRACKING_URL_TEMPLATE" default:"https://tools.usps.com/go/TrackConfirmAction?tLabels={tracking_number}"`
	SupportEmail        string `split_words:"true" default:"help@sierraoutfitters.com"`
	Timezone            string `default:"US/Pacific"`
	TimezoneLabel       string `split_words:"true" default:"Pacific Time"`
	LowStockThreshold   int    `split_words:"true" default:"10"`
}

// DefaultConfig mirrors the envconfig defaults for callers that do not read
// the environment.
func DefaultConfig() Config {
	return Config{
		PromoStartHour:      8,
		PromoEndHour:        10,
		DiscountPercent:     "10%",
		DiscountCodePrefix:  "EARLY10",
		TrackingURLTemplate: "https://tools.usps.com/go/TrackConfirmAction?tLabels={tracking_number}",
		SupportEmail:        "help@sierraoutfitters.com",
		Timezone:            "US/Pacific",
		TimezoneLabel:       "Pacific Time",
		LowStockThreshold:   10,
	}
}

func (c Config) Validate() error {
	if c.PromoStartHour < 0 || c.PromoStartHour > 23 {
		return fmt.Errorf("%w: promo start hour %d out of range", contractx.ErrValidation, c.PromoStartHour)
	}
	if c.PromoEndHour < 1 || c.PromoEndHour > 24 {
		return fmt.Errorf("%w: promo end hour %d out of range", contractx.ErrValidation, c.PromoEndHour)
	}
	if c.PromoStartHour >= c.PromoEndHour {
		return fmt.Errorf("%w: promo window %d:00-%d:00 is empty", contractx.ErrValidation, c.PromoStartHour, c.PromoEndHour)
	}
	if strings.TrimSpace(c.DiscountCodePrefix) == "" {
		return fmt.Errorf("%w: discount code prefix is required", contractx.ErrValidation)
	}
	if !strings.Contains(c.TrackingURLTemplate, trackingNumberPlaceholder) {
		return fmt.Errorf("%w: tracking url template must contain %s", contractx.ErrValidation, trackingNumberPlaceholder)
	}
	if c.LowStockThreshold < 1 {
		return fmt.Errorf("%w: low stock threshold must be > 0", contractx.ErrValidation)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", contractx.ErrValidation, c.Timezone, err)
	}
	return loc, nil
}

// PromoWindow renders the promotion hours on a 12-hour clock, for example
// "8:00-10:00 AM" or "11:00 AM-1:00 PM".
func (c Config) PromoWindow() string {
	startHour, startMeridiem := clock12(c.PromoStartHour)
	endHour, endMeridiem := clock12(c.PromoEndHour)
	if startMeridiem == endMeridiem {
		return fmt.Sprintf("%d:00-%d:00 %s", startHour, endHour, endMeridiem)
	}
	return fmt.Sprintf("%d:00 %s-%d:00 %s", startHour, startMeridiem, endHour, endMeridiem)
}

func clock12(hour int) (int, string) {
	meridiem := "AM"
	if hour >= 12 && hour < 24 {
		meridiem = "PM"
	}
	if hour%12 == 0 {
		return 12, meridiem
	}
	return hour % 12, meridiem
}

func (c Config) trackingURL(trackingNumber string) string {
	return strings.ReplaceAll(c.TrackingURLTemplate, trackingNumberPlaceholder, trackingNumber)
}
