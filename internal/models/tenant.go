package models

// Tenant is a renter record owned by the upstream portal API. Status is
// authoritative for overdue classification; it is never recomputed from
// payment dates here.
type Tenant struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Status    string `json:"status"`
}
