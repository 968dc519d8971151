package models

// AnalysisRequest carries the product attributes fed into the metrics and
// recycling prompts.
type AnalysisRequest struct {
	Name     string `json:"name" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Material string `json:"material" validate:"required"`
	Cost     string `json:"cost" validate:"required"`
}

type SupplyChainRequest struct {
	ProductName string `json:"productName" validate:"required"`
}
