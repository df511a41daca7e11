package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "", NormalizePhone(""))
	assert.Equal(t, "", NormalizePhone("N/A"))
	assert.Equal(t, "447700900123", NormalizePhone("+44 7700 900123"))
}

func TestNormalizeFulfillment(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	t.Run("defaults to delivery now", func(t *testing.T) {
		f := NormalizeFulfillment(FulfillmentRequest{}, loc)
		assert.Equal(t, FulfillmentDelivery, f.Method)
		assert.Equal(t, Schedule{Mode: ScheduleNow, ASAP: true}, f.Schedule)
	})

	t.Run("only exact pickup is pickup", func(t *testing.T) {
		assert.Equal(t, FulfillmentPickup, NormalizeFulfillment(FulfillmentRequest{Method: "pickup"}, loc).Method)
		assert.Equal(t, FulfillmentDelivery, NormalizeFulfillment(FulfillmentRequest{Method: "PICKUP"}, loc).Method)
	})

	t.Run("later with date and time", func(t *testing.T) {
		f := NormalizeFulfillment(FulfillmentRequest{
			Method:   "pickup",
			Schedule: &ScheduleRequest{Mode: "later", Date: "2026-10-19", Time: "19:30"},
		}, loc)
		require.NotNil(t, f.Schedule.ISO)
		assert.Equal(t, ScheduleLater, f.Schedule.Mode)
		assert.Equal(t, time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC), *f.Schedule.ISO)
		assert.False(t, f.Schedule.Unresolved())
	})

	t.Run("later with garbage keeps the order", func(t *testing.T) {
		f := NormalizeFulfillment(FulfillmentRequest{
			Schedule: &ScheduleRequest{Mode: "later", Date: "tomorrow", Time: "dinner"},
		}, loc)
		assert.Equal(t, ScheduleLater, f.Schedule.Mode)
		assert.Nil(t, f.Schedule.ISO)
		assert.True(t, f.Schedule.Unresolved())
	})

	t.Run("unresolved schedule serializes iso as null", func(t *testing.T) {
		f := NormalizeFulfillment(FulfillmentRequest{
			Schedule: &ScheduleRequest{Mode: "later", Date: "tomorrow", Time: "dinner"},
		}, loc)
		raw, err := json.Marshal(f.Schedule)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		iso, ok := fields["iso"]
		assert.True(t, ok)
		assert.Nil(t, iso)
		assert.Equal(t, "later", fields["mode"])
	})

	t.Run("later without time falls back to now", func(t *testing.T) {
		f := NormalizeFulfillment(FulfillmentRequest{
			Schedule: &ScheduleRequest{Mode: "later", Date: "2026-10-19"},
		}, loc)
		assert.Equal(t, ScheduleNow, f.Schedule.Mode)
	})
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 6.0, Subtotal([]OrderItem{{Quantity: 2, Price: 3.00}}))
	assert.Equal(t, 0.3, Subtotal([]OrderItem{{Quantity: 1, Price: 0.1}, {Quantity: 1, Price: 0.2}}))
	assert.Equal(t, 2.35, RoundMoney(2.345))
}

func TestNormalizeMenu(t *testing.T) {
	t.Run("empty menu gets default categories", func(t *testing.T) {
		m := NormalizeMenu(Menu{})
		assert.Equal(t, DefaultCategories(), m.Categories)
		for _, c := range m.Categories {
			assert.NotNil(t, m.Items[c.Key])
		}
	})

	t.Run("drops blank and duplicate keys and orphan buckets", func(t *testing.T) {
		m := NormalizeMenu(Menu{
			Categories: []Category{{Key: " soups "}, {Key: ""}, {Key: "soups", Label: "Dup"}, {Key: "chef_specials", Label: "  "}},
			Items: map[string][]MenuItem{
				"soups":  {{ID: "s1", Name: "Rasam", Spicy: 7, Available: true}},
				"ghosts": {{ID: "g1"}},
			},
		})
		assert.Equal(t, []Category{{Key: "soups", Label: "Soups"}, {Key: "chef_specials", Label: "Chef Specials"}}, m.Categories)
		assert.Equal(t, 3.0, m.Items["soups"][0].Spicy)
		assert.Empty(t, m.Items["chef_specials"])
		assert.NotContains(t, m.Items, "ghosts")
	})

	t.Run("normalization is a fixed point through JSON", func(t *testing.T) {
		raw := `{
			"categories": [{"key": "mains"}, {"key": 5}, "oops", {"key": "breads", "label": "Breads"}],
			"items": {"mains": [{"id": 1, "name": "Dal", "price": "120.5", "spicy": -2, "rating": "4.5", "reviews": 10}]},
			"breads": [{"id": "b1", "name": "Naan", "available": false, "veg": true}]
		}`
		var in Menu
		require.NoError(t, json.Unmarshal([]byte(raw), &in))
		first := NormalizeMenu(in)

		encoded, err := json.Marshal(first)
		require.NoError(t, err)
		var decoded Menu
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		second := NormalizeMenu(decoded)

		assert.Equal(t, first, second)
		assert.Equal(t, []Category{{Key: "mains", Label: "Mains"}, {Key: "breads", Label: "Breads"}}, first.Categories)

		dal := first.Items["mains"][0]
		assert.Equal(t, "1", dal.ID)
		assert.Equal(t, 120.5, dal.Price)
		assert.Equal(t, 0.0, dal.Spicy)
		assert.Equal(t, 4.5, dal.Rating)
		assert.True(t, dal.Available)

		naan := first.Items["breads"][0]
		assert.False(t, naan.Available)
		assert.True(t, naan.Veg)
	})

	t.Run("missing name is defaulted", func(t *testing.T) {
		var it MenuItem
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x"}`), &it))
		assert.Equal(t, "Menu Item", it.Name)
		assert.True(t, it.Available)
	})

	t.Run("fractional spice level is kept", func(t *testing.T) {
		var it MenuItem
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x","spicy":2.5}`), &it))
		assert.Equal(t, 2.5, it.Spicy)

		require.NoError(t, json.Unmarshal([]byte(`{"id":"y","spicy":"3.5"}`), &it))
		assert.Equal(t, 3.0, it.Spicy)
	})
}

func TestFallbackLabel(t *testing.T) {
	assert.Equal(t, "Main Course", FallbackLabel("main-course"))
	assert.Equal(t, "Chef Specials", FallbackLabel("chef__specials"))
	assert.Equal(t, "Menu", FallbackLabel("--"))
}

func TestKitchenStatusJSON(t *testing.T) {
	var k KitchenStatus
	require.NoError(t, json.Unmarshal([]byte(`{"message":""}`), &k))
	assert.Equal(t, DefaultKitchenStatus(), k)

	require.NoError(t, json.Unmarshal([]byte(`{"isOpen":false,"message":"Closed for Diwali"}`), &k))
	assert.Equal(t, KitchenStatus{IsOpen: false, Message: "Closed for Diwali"}, k)
}

func TestOrderSanitized(t *testing.T) {
	now := time.Now().UTC()
	o := Order{ID: "1", TrackingPhoneKey: "555", Items: []OrderItem{{ID: "a"}}, AcceptedAt: &now}
	s := o.Sanitized()
	assert.Empty(t, s.TrackingPhoneKey)
	assert.Equal(t, "555", o.TrackingPhoneKey)

	s.Items[0].ID = "changed"
	*s.AcceptedAt = now.Add(time.Hour)
	assert.Equal(t, "a", o.Items[0].ID)
	assert.Equal(t, now, *o.AcceptedAt)
}
