package models

// Part is a single entry of a generated parts list.
type Part struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Optional    bool    `json:"optional"`
}

// PartsList is the AI-generated bill of materials for a project.
type PartsList struct {
	Parts           []Part   `json:"parts"`
	TotalCost       float64  `json:"totalCost"`
	AdditionalNotes []string `json:"additionalNotes"`
}

// Challenge is one anticipated difficulty, e.g. TECHNICAL or SAFETY.
type Challenge struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Recommendation is one piece of advice, e.g. SAFETY or LEARNING.
type Recommendation struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CostEstimate is an optional min/max price band.
type CostEstimate struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ProjectAnalysis is the AI feasibility assessment of a submission.
type ProjectAnalysis struct {
	Feasibility           string           `json:"feasibility"` // HIGH | MEDIUM | LOW
	EstimatedTime         string           `json:"estimatedTime"`
	Complexity            string           `json:"complexity"` // BEGINNER | INTERMEDIATE | ADVANCED
	Challenges            []Challenge      `json:"challenges"`
	Recommendations       []Recommendation `json:"recommendations"`
	SafetyConsiderations  []string         `json:"safetyConsiderations"`
	PrerequisiteKnowledge []string         `json:"prerequisiteKnowledge"`
	EstimatedCost         *CostEstimate    `json:"estimatedCost,omitempty"`
}
