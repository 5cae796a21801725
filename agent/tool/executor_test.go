package tool

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanpawarit/sierra-outfitters-agent/agent/catalog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

var discountCodePattern = regexp.MustCompile(`^EARLY10-[A-Z0-9]{8}$`)

func testCatalog() *catalog.Store {
	return catalog.New(
		[]catalog.Order{
			{OrderNumber: "#W001", Email: "john@example.com", CustomerName: "John", Status: "delivered", TrackingNumber: "TRK123"},
			{OrderNumber: "#W002", Email: "jane@example.com", CustomerName: "Jane", Status: "in-transit", TrackingNumber: "TRK456"},
			{OrderNumber: "#W003", Email: "alice@example.com", CustomerName: "Alice", Status: "fulfilled"},
			{OrderNumber: "#W004", Email: "bob@example.com", CustomerName: "Bob", Status: "error"},
			{OrderNumber: "#W005", Email: "eve@example.com", CustomerName: "Eve", Status: "on-hold"},
		},
		[]catalog.Product{
			{SKU: "SOSV001", ProductName: "Wilderness Backpack", Inventory: 3, Tags: []string{"Backpack"}},
			{SKU: "SOTC002", ProductName: "Trailblazer Camp Stove", Inventory: 0, Tags: []string{"Cooking"}},
			{SKU: "SOHB003", ProductName: "Summit Hiking Boots", Inventory: 10, Tags: []string{"Footwear"}},
		},
	)
}

func pacificAt(t *testing.T, hour, minute, second int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("US/Pacific")
	require.NoError(t, err)
	return time.Date(2026, 3, 10, hour, minute, second, 0, loc)
}

func newTestExecutor(t *testing.T, now time.Time) *Executor {
	t.Helper()
	e, err := NewExecutor(testCatalog(), DefaultConfig(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return e
}

func call(name, args string) schema.ToolCall {
	return schema.ToolCall{
		ID:   "call_" + name,
		Type: "function",
		Function: schema.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func decode(t *testing.T, result contractx.ToolResult) map[string]any {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestCheckOrderStatusDelivered(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	out := decode(t, e.Execute(context.Background(), call(ToolCheckOrderStatus, `{"email":"john@example.com","order_number":"W001"}`)))

	assert.Equal(t, true, out["success"])
	assert.Equal(t, "John", out["customer_name"])
	assert.Equal(t, "delivered", out["status"])
	assert.Contains(t, out["formatted_response"], "John")
	assert.Contains(t, out["formatted_response"], "#W001")
	assert.Contains(t, out["tracking_info"], "https://tools.usps.com/go/TrackConfirmAction?tLabels=TRK123")
}

func TestCheckOrderStatusCaseAndPrefixInsensitive(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	a := e.CheckOrderStatus("john@example.com", "W001")
	b := e.CheckOrderStatus(strings.ToUpper("john@example.com"), "#W001")
	assert.Equal(t, a, b)
}

func TestCheckOrderStatusWrongEmail(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	out := e.CheckOrderStatus("jane@example.com", "#W001")
	base := out.Base()
	assert.False(t, base.Success)
	assert.Equal(t, msgOrderNotFound, base.FormattedResponse)
}

func TestCheckOrderStatusTemplates(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	tests := []struct {
		email    string
		order    string
		contains []string
		tracking string
	}{
		{"jane@example.com", "W002", []string{"on the move", "TRK456"}, "TRK456"},
		{"alice@example.com", "W003", []string{"packed"}, msgNoTrackingYet},
		{"bob@example.com", "W004", []string{"boulder", "help@sierraoutfitters.com"}, msgNoTrackingYet},
		{"eve@example.com", "W005", []string{"being processed", "#W005"}, msgNoTrackingYet},
	}
	for _, tt := range tests {
		out, ok := e.CheckOrderStatus(tt.email, tt.order).(OrderStatusOutput)
		require.True(t, ok, tt.order)
		assert.True(t, out.Success)
		for _, s := range tt.contains {
			assert.Contains(t, out.FormattedResponse, s, tt.order)
		}
		assert.Contains(t, out.TrackingInfo, tt.tracking, tt.order)
	}
}

func TestGenerateDiscountCodeInsideWindow(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	out, ok := e.Execute(context.Background(), call(ToolGenerateDiscountCode, `{}`)).(DiscountCodeOutput)
	require.True(t, ok)
	assert.True(t, out.Success)
	assert.Regexp(t, discountCodePattern, out.DiscountCode)
	assert.Contains(t, out.FormattedResponse, out.DiscountCode)
	assert.Contains(t, out.FormattedResponse, "10%")
}

func TestGenerateDiscountCodeOutsideWindow(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 14, 0, 0))
	base := e.Execute(context.Background(), call(ToolGenerateDiscountCode, "")).Base()
	assert.False(t, base.Success)
	assert.Contains(t, base.FormattedResponse, "8:00-10:00 AM Pacific Time")
	assert.Contains(t, base.FormattedResponse, "02:00 PM")
}

func TestGenerateDiscountCodeAfternoonWindowMessage(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.PromoStartHour, cfg.PromoEndHour = 14, 16
	now := pacificAt(t, 9, 0, 0)
	e, err := NewExecutor(testCatalog(), cfg, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	base := e.Execute(context.Background(), call(ToolGenerateDiscountCode, "")).Base()
	assert.False(t, base.Success)
	assert.Contains(t, base.FormattedResponse, "2:00-4:00 PM Pacific Time")
	assert.NotContains(t, base.FormattedResponse, "4:00 AM")
}

func TestConfigPromoWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start, end int
		want       string
	}{
		{8, 10, "8:00-10:00 AM"},
		{14, 16, "2:00-4:00 PM"},
		{11, 13, "11:00 AM-1:00 PM"},
		{0, 2, "12:00-2:00 AM"},
		{22, 24, "10:00 PM-12:00 AM"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.PromoStartHour, cfg.PromoEndHour = tc.start, tc.end
		assert.Equal(t, tc.want, cfg.PromoWindow())
	}
}

func TestPromotionWindowIsRightOpen(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	assert.True(t, e.PromotionOpen(pacificAt(t, 8, 0, 0)))
	assert.True(t, e.PromotionOpen(pacificAt(t, 9, 59, 59)))
	assert.False(t, e.PromotionOpen(pacificAt(t, 10, 0, 0)))
	assert.False(t, e.PromotionOpen(pacificAt(t, 7, 59, 59)))

	// 16:00 UTC is 09:00 in Pacific daylight time.
	assert.True(t, e.PromotionOpen(time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)))
}

func TestGenerateDiscountCodeIsStateless(t *testing.T) {
	t.Parallel()

	ids := []string{"aaaaaaaa-0000-0000-0000-000000000000", "bbbbbbbb-1111-1111-1111-111111111111"}
	idx := 0
	e, err := NewExecutor(testCatalog(), DefaultConfig(),
		WithClock(func() time.Time { return pacificAt(t, 8, 30, 0) }),
		WithIDSource(func() string {
			id := ids[idx%len(ids)]
			idx++
			return id
		}),
	)
	require.NoError(t, err)

	first, err := e.GenerateDiscountCode()
	require.NoError(t, err)
	second, err := e.GenerateDiscountCode()
	require.NoError(t, err)

	assert.Equal(t, "EARLY10-AAAAAAAA", first.(DiscountCodeOutput).DiscountCode)
	assert.Equal(t, "EARLY10-BBBBBBBB", second.(DiscountCodeOutput).DiscountCode)
}

func TestCheckProductAvailabilityLowStock(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	out := decode(t, e.Execute(context.Background(), call(ToolCheckProductAvailability, `{"product_query":"backpack"}`)))

	assert.Equal(t, true, out["success"])
	assert.Equal(t, true, out["in_stock"])
	assert.Equal(t, float64(3), out["inventory"])
	assert.Equal(t, "SOSV001", out["sku"])
	assert.Contains(t, out["formatted_response"], "only 3 left")
}

func TestCheckProductAvailabilityTemplates(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))

	stove := e.CheckProductAvailability("SOTC002").(ProductAvailabilityOutput)
	assert.False(t, stove.InStock)
	assert.Contains(t, stove.FormattedResponse, "out of stock")

	// ten is at the threshold, not below it
	boots := e.CheckProductAvailability("boots").(ProductAvailabilityOutput)
	assert.True(t, boots.InStock)
	assert.Contains(t, boots.FormattedResponse, "well-stocked with 10")

	out := decode(t, stove)
	assert.Equal(t, false, out["in_stock"], "in_stock must be serialized even when false")
}

func TestCheckProductAvailabilityNotFound(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	base := e.CheckProductAvailability("kayak").Base()
	assert.False(t, base.Success)
	assert.Equal(t, msgProductNotFound, base.FormattedResponse)
}

func TestExecuteSoftFailures(t *testing.T) {
	t.Parallel()

	e := newTestExecutor(t, pacificAt(t, 9, 0, 0))

	unknown := e.Execute(context.Background(), call("teleport", `{}`)).Base()
	assert.False(t, unknown.Success)
	assert.Equal(t, msgUnknownTool, unknown.FormattedResponse)
	assert.Contains(t, unknown.Error, "teleport")

	malformed := e.Execute(context.Background(), call(ToolCheckOrderStatus, `{"email":`)).Base()
	assert.False(t, malformed.Success)
	assert.Contains(t, malformed.Error, contractx.ErrMalformedToolArguments.Error())
	assert.Equal(t, msgToolFault, malformed.FormattedResponse)

	wrongType := e.Execute(context.Background(), call(ToolCheckProductAvailability, `{"product_query":42}`)).Base()
	assert.False(t, wrongType.Success)
	assert.NotEmpty(t, wrongType.Error)
}

func TestExecuteRecoversToolPanic(t *testing.T) {
	t.Parallel()

	e, err := NewExecutor(testCatalog(), DefaultConfig(),
		WithClock(func() time.Time { return pacificAt(t, 9, 0, 0) }),
		WithIDSource(func() string { panic("entropy exhausted") }),
	)
	require.NoError(t, err)

	base := e.Execute(context.Background(), call(ToolGenerateDiscountCode, `{}`)).Base()
	assert.False(t, base.Success)
	assert.Contains(t, base.Error, "entropy exhausted")
	assert.Equal(t, msgToolFault, base.FormattedResponse)
}

func TestEveryBranchHasFormattedResponse(t *testing.T) {
	t.Parallel()

	open := newTestExecutor(t, pacificAt(t, 9, 0, 0))
	closed := newTestExecutor(t, pacificAt(t, 23, 0, 0))
	calls := []struct {
		e    *Executor
		call schema.ToolCall
	}{
		{open, call(ToolCheckOrderStatus, `{"email":"john@example.com","order_number":"#W001"}`)},
		{open, call(ToolCheckOrderStatus, `{"email":"nobody@example.com","order_number":"#W001"}`)},
		{open, call(ToolGenerateDiscountCode, `{}`)},
		{closed, call(ToolGenerateDiscountCode, `{}`)},
		{open, call(ToolCheckProductAvailability, `{"product_query":"SOSV001"}`)},
		{open, call(ToolCheckProductAvailability, `{"product_query":"stove"}`)},
		{open, call(ToolCheckProductAvailability, `{"product_query":"boots"}`)},
		{open, call(ToolCheckProductAvailability, `{"product_query":"kayak"}`)},
		{open, call("unknown_tool", `{}`)},
		{open, call(ToolCheckOrderStatus, `not json`)},
	}
	for _, c := range calls {
		out := decode(t, c.e.Execute(context.Background(), c.call))
		_, ok := out["success"].(bool)
		assert.True(t, ok, c.call.Function.Name)
		assert.NotEmpty(t, out["formatted_response"], c.call.Function.Name)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.PromoStartHour, bad.PromoEndHour = 10, 8
	assert.ErrorIs(t, bad.Validate(), contractx.ErrValidation)

	bad = cfg
	bad.TrackingURLTemplate = "https://example.com/track"
	assert.ErrorIs(t, bad.Validate(), contractx.ErrValidation)

	bad = cfg
	bad.Timezone = "Mars/Olympus_Mons"
	assert.ErrorIs(t, bad.Validate(), contractx.ErrValidation)
}
