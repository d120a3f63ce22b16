package models

// ServiceOption is a static catalog entry offered after analysis.
type ServiceOption struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// UPIDetails identifies the payee shown in payment instructions.
type UPIDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
