package service

import "tableside/internal/domain"

// IsOccupied reports whether the table has any order that is still in flight.
// This is the advisory check the table listing uses; the authoritative check
// runs inside the order-creation transaction in storage.
func IsOccupied(tableID int, orders []domain.Order) bool {
	for _, order := range orders {
		if order.TableID == tableID && !order.Status.Terminal() {
			return true
		}
	}
	return false
}
