// Package flow implements the conversation state machines: one flow per
// business category, each a closed set of steps mapped to handlers.
package flow

import "github.com/resvio/bot-platform/internal/tenant"

// ID identifies a top-level conversation flow.
type ID string

// The closed set of flows.
const (
	FlowBooking  ID = "booking"
	FlowCatalog  ID = "catalog"
	FlowInfo     ID = "info"
	FlowMixed    ID = "mixed"
	FlowEvent    ID = "event"
	FlowDelivery ID = "delivery"
	FlowFallback ID = "fallback"
)

// Step identifies a position within a flow's state machine.
type Step string

// Steps shared by or specific to the flows.
const (
	StepMenu Step = "MENU"

	StepBookingSelectDateList Step = "BOOKING_SELECT_DATE_LIST"
	StepBookingSelectTime     Step = "BOOKING_SELECT_TIME"
	StepBookingEnterName      Step = "BOOKING_ENTER_NAME"
	StepBookingEnterNote      Step = "BOOKING_ENTER_NOTE"
	StepBookingConfirm        Step = "BOOKING_CONFIRM"
	StepBookingListAppts      Step = "BOOKING_LIST_APPOINTMENTS"
	StepBookingChangeType     Step = "BOOKING_CHANGE_TYPE"

	StepCatalogItem Step = "CATALOG_ITEM"

	StepInfoTopic Step = "INFO_TOPIC"

	StepEventRSVPName   Step = "EVENT_RSVP_NAME"
	StepEventRSVPGuests Step = "EVENT_RSVP_GUESTS"

	StepDeliveryQuantity Step = "DELIVERY_SELECT_ITEM"
	StepDeliveryAddress  Step = "DELIVERY_ENTER_ADDRESS"
	StepDeliveryConfirm  Step = "DELIVERY_CONFIRM"
)

// ForCategory maps a tenant's business category to its flow. Unrecognized
// categories fall back to the fallback flow.
func ForCategory(category string) ID {
	switch category {
	case tenant.CategoryBooking:
		return FlowBooking
	case tenant.CategoryProduct:
		return FlowCatalog
	case tenant.CategoryInfo:
		return FlowInfo
	case tenant.CategoryMixed:
		return FlowMixed
	case tenant.CategoryEvent:
		return FlowEvent
	case tenant.CategoryDelivery:
		return FlowDelivery
	default:
		return FlowFallback
	}
}

// InitialStep is where every flow starts and where broken sessions reset to.
func InitialStep(ID) Step {
	return StepMenu
}
