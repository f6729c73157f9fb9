package models

type MaintenanceRequest struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}
