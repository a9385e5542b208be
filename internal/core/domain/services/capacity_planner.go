package services

import (
	"sort"

	"pharmacy/internal/core/domain/model/order"
)

// DefaultMaxOrdersPerSlot is the capacity ceiling used when the deployment
// does not configure one.
const DefaultMaxOrdersPerSlot = 5

// SlotLoad describes how busy one delivery window is.
type SlotLoad struct {
	// Window is the delivery window label ("09:00 - 12:00")
	Window string
	// OrderCount is the number of open orders booked into the window
	OrderCount int
	// CapacityPercent rates the window against the ceiling, capped at 100.
	// The figure is advisory: it never blocks order placement.
	CapacityPercent int
}

// CapacityPlanner is a domain service that groups open orders by delivery
// window and rates each window's load against a configured ceiling.
//
// Business rules:
//   - Only non-terminal orders count towards a window's load
//   - CapacityPercent = round(count * 100 / ceiling), capped at 100
//   - A window over the ceiling still accepts orders; the rating only
//     drives dashboards and staffing decisions
type CapacityPlanner struct {
	maxOrdersPerSlot int
}

// NewCapacityPlanner creates a planner with the given per-window ceiling.
// Non-positive ceilings fall back to DefaultMaxOrdersPerSlot.
func NewCapacityPlanner(maxOrdersPerSlot int) CapacityPlanner {
	if maxOrdersPerSlot <= 0 {
		maxOrdersPerSlot = DefaultMaxOrdersPerSlot
	}
	return CapacityPlanner{maxOrdersPerSlot: maxOrdersPerSlot}
}

// MaxOrdersPerSlot returns the configured per-window ceiling.
func (p CapacityPlanner) MaxOrdersPerSlot() int {
	return p.maxOrdersPerSlot
}

// Plan groups the given orders by delivery window and rates each window.
// Terminal orders are skipped. Windows are returned sorted by label so the
// output is stable for dashboards and tests.
func (p CapacityPlanner) Plan(orders []*order.Order) []SlotLoad {
	counts := make(map[string]int)
	for _, o := range orders {
		if o == nil || o.Status().IsTerminal() {
			continue
		}
		counts[o.DeliveryWindow().String()]++
	}

	loads := make([]SlotLoad, 0, len(counts))
	for window, count := range counts {
		loads = append(loads, SlotLoad{
			Window:          window,
			OrderCount:      count,
			CapacityPercent: p.RatePercent(count),
		})
	}

	sort.Slice(loads, func(i, j int) bool { return loads[i].Window < loads[j].Window })
	return loads
}

// RatePercent rates a raw order count against the ceiling, capped at 100.
func (p CapacityPlanner) RatePercent(count int) int {
	if count <= 0 {
		return 0
	}

	percent := (count*100 + p.maxOrdersPerSlot/2) / p.maxOrdersPerSlot
	if percent > 100 {
		return 100
	}
	return percent
}
