package dto

// OrderRequest carries the client-writable order fields. The owner is never
// part of the payload; it always comes from the verified token subject.
type OrderRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}
