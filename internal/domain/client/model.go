package client

import "time"

// Client is an external stakeholder a project is delivered to.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Active  bool   `json:"active"`
}

// ProjectHistory is one past or ongoing engagement with a client.
type ProjectHistory struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Budget    float64    `json:"budget"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
