package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusServed,
	StatusCancelled,
	StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal statuses end the table's occupancy and accept no further moves.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// statusTransitions lists the allowed target statuses per current status.
// Kitchen workflows are deliberately permissive (a ready order can go back to
// preparing, any active order can be cancelled); cancelled is closed, and a
// completed order accepts only a repeated completion, which lets the caller
// retry invoice generation after a failure without reopening the order.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled, StatusCompleted},
	StatusPreparing: {StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled, StatusCompleted},
	StatusReady:     {StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled, StatusCompleted},
	StatusServed:    {StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {StatusCompleted},
}

func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
