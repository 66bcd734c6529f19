package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// StatusPending is the state assigned to every newly created order.
const StatusPending OrderStatus = "pending"

// Order is a purchase belonging to exactly one user. Ownership is logical:
// UserID references the user service's users table, which lives in another
// deployment, so no foreign key backs it.
type Order struct {
	ID       int64       `json:"id"`
	UserID   int64       `json:"user_id"`
	Product  string      `json:"product"`
	Quantity int         `json:"quantity"`
	Status   OrderStatus `json:"status"`
}
