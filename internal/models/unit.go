package models

type Unit struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}
