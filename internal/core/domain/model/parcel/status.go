package parcel

import (
	"parceltrack/internal/pkg/errs"
)

// Action is the raw status token reported by a scanning actor, e.g.
// "arrived_at_warehouse". The set of actions is intentionally open: actions
// outside the known table are accepted and mapped to the In Transit label.
type Action string

// Known actions. ActionCreated is reserved for the synthetic first checkpoint.
const (
	ActionCreated             Action = "created"
	ActionInStore             Action = "in_store"
	ActionAssignedDestination Action = "assigned_destination"
	ActionEnRouteToWarehouse  Action = "en_route_to_warehouse"
	ActionArrivedAtWarehouse  Action = "arrived_at_warehouse"
	ActionStoredInWarehouse   Action = "stored_in_warehouse"
	ActionReadyForDispatch    Action = "ready_for_dispatch"
	ActionOutForDelivery      Action = "out_for_delivery"
	ActionDelivered           Action = "delivered"
	ActionFailedDelivery      Action = "failed_delivery"
	ActionReturnedToSender    Action = "returned_to_sender"
)

// Validate checks the action token is present. Unknown tokens are accepted;
// only emptiness is rejected.
func (a Action) Validate() error {
	if a == "" {
		return errs.NewValueIsRequiredError("action")
	}
	return nil
}

// String returns the raw action token.
func (a Action) String() string {
	return string(a)
}

// PublicStatus is the customer-facing label derived from an internal action.
type PublicStatus string

const (
	StatusOrderCreated      PublicStatus = "Order Created"
	StatusInStoreProcessing PublicStatus = "In Store Processing"
	StatusInTransit         PublicStatus = "In Transit"
	StatusOutForDelivery    PublicStatus = "Out for Delivery"
	StatusDelivered         PublicStatus = "Delivered"
	StatusDeliveryAttempted PublicStatus = "Delivery Attempted"
	StatusReturnedToSender  PublicStatus = "Returned to Sender"
)

// String returns the public label.
func (s PublicStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the label conventionally ends a parcel's journey.
// The lifecycle engine does not enforce terminality; callers that opt into
// the strict-terminal policy use this to reject further scans.
func (s PublicStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturnedToSender
}

// getStatusTable returns the fixed mapping from action tokens to public labels.
func getStatusTable() map[Action]PublicStatus {
	return map[Action]PublicStatus{
		ActionCreated:             StatusOrderCreated,
		ActionInStore:             StatusInStoreProcessing,
		ActionAssignedDestination: StatusInTransit,
		ActionEnRouteToWarehouse:  StatusInTransit,
		ActionArrivedAtWarehouse:  StatusInTransit,
		ActionStoredInWarehouse:   StatusInTransit,
		ActionReadyForDispatch:    StatusInTransit,
		ActionOutForDelivery:      StatusOutForDelivery,
		ActionDelivered:           StatusDelivered,
		ActionFailedDelivery:      StatusDeliveryAttempted,
		ActionReturnedToSender:    StatusReturnedToSender,
	}
}

// MapActionToPublicStatus derives the public label for an action. The mapping
// is pure and total: actions outside the table map to StatusInTransit.
func MapActionToPublicStatus(action Action) PublicStatus {
	if status, ok := getStatusTable()[action]; ok {
		return status
	}
	return StatusInTransit
}
