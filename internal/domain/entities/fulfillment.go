package entities

import (
	"strings"
	"time"
)

type FulfillmentMethod string

const (
	FulfillmentDelivery FulfillmentMethod = "delivery"
	FulfillmentPickup   FulfillmentMethod = "pickup"
)

type ScheduleMode string

const (
	ScheduleNow   ScheduleMode = "now"
	ScheduleLater ScheduleMode = "later"
)

const scheduleLayout = "2006-01-02T15:04:05"

type Schedule struct {
	Mode ScheduleMode `json:"mode"`
	ASAP bool         `json:"asap,omitempty"`
	Date string       `json:"date,omitempty"`
	Time string       `json:"time,omitempty"`
	ISO  *time.Time   `json:"iso"`
}

type Fulfillment struct {
	Method   FulfillmentMethod `json:"method"`
	Schedule Schedule          `json:"schedule"`
}

// FulfillmentRequest is the raw fulfillment block received at checkout.
type FulfillmentRequest struct {
	Method   string           `json:"method"`
	Schedule *ScheduleRequest `json:"schedule"`
}

type ScheduleRequest struct {
	Mode string `json:"mode"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// NormalizeFulfillment converts a checkout request into the canonical shape.
//
// A "later" schedule with both date and time keeps them and resolves ISO from
// date+"T"+time+":00" in loc. When that timestamp cannot be parsed ISO stays nil
// and the order is still accepted; callers can detect it with Schedule.Unresolved.
func NormalizeFulfillment(in FulfillmentRequest, loc *time.Location) Fulfillment {
	if loc == nil {
		loc = time.Local
	}
	method := FulfillmentDelivery
	if in.Method == string(FulfillmentPickup) {
		method = FulfillmentPickup
	}

	if s := in.Schedule; s != nil && s.Mode == string(ScheduleLater) && s.Date != "" && s.Time != "" {
		return Fulfillment{
			Method: method,
			Schedule: Schedule{
				Mode: ScheduleLater,
				Date: s.Date,
				Time: s.Time,
				ISO:  buildScheduleISO(s.Date, s.Time, loc),
			},
		}
	}

	return Fulfillment{
		Method:   method,
		Schedule: Schedule{Mode: ScheduleNow, ASAP: true},
	}
}

// Unresolved reports a "later" schedule whose timestamp could not be parsed.
func (s Schedule) Unresolved() bool {
	return s.Mode == ScheduleLater && s.ISO == nil
}

func buildScheduleISO(date, clock string, loc *time.Location) *time.Time {
	t, err := time.ParseInLocation(scheduleLayout, strings.TrimSpace(date)+"T"+strings.TrimSpace(clock)+":00", loc)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
