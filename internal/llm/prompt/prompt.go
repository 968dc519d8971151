// Package prompt renders the exact text sent to the generative model for
// each analysis intent. Rendering is pure: no I/O, no state, identical
// attributes always produce identical prompts.
package prompt

import (
	"fmt"

	"github.com/ecoloop/backend/pkg/tmplx"
)

// Attributes is the fixed set of product attributes the analysis prompts
// are built from. Required fields are validated at the HTTP boundary
// before a prompt is ever rendered.
type Attributes struct {
	Name     string
	Size     string
	Type     string
	Material string
	// Cost is either a plain amount or a raw JSON object holding an
	// estimated_range_INR field, matching what the detail intent returns.
	Cost string
}

// productDetailPrompt asks the model to describe a product photographed by
// the user. Sent alongside the inline image payload.
const productDetailPrompt = `Analyze the provided product image and generate a detailed response in JSON. Extract the following information:

Product Details:

Name: The identified product name or category.
Size: Physical dimensions or volume (e.g., "500ml", "30cm x 20cm").
Type: The product's category or function (e.g., "single-use bottle", "smartphone").
Material: The materials used in the product (e.g., "PET plastic", "stainless steel").
Cost: Estimated price in INR based on typical market values in India.
Supply Chain Details:

Raw Materials: Likely materials and their probable sources or origin regions.
Manufacturing: Common manufacturing processes and typical hubs in India.
Distribution: Typical distribution channels or retail points in India, such as wholesalers, e-commerce platforms, or local markets.
Ensure the response is accurate, a single JSON object, and relevant for any product type provided via the image input.`

const metricsTemplate = `{{.Name}} is a {{.Size}} {{.Type}} made of {{.Material}} that costs INR {{.Cost}}.
Based on the provided product details, calculate the environmental benefits of recycling this product. Use the following metrics:
- Carbon Emissions Saved: Estimate the reduction in CO2 emissions (e.g., in kilograms).
- Trees Saved: Approximate the number of trees preserved due to recycling.
- Water Saved: Estimate the liters of water conserved.
- Energy Saved: Approximate energy savings (e.g., in kilowatt-hours).
- Landfill Space Saved: Estimate the landfill volume saved (e.g., in cubic meters).

Use the product details provided in the input to make relevant estimations and ensure the response is accurate, detailed, and formatted as a complete JSON object.`

const recyclingTemplate = `Given the following product details, provide creative and practical recycling methods. For each method, include a description and step-by-step instructions. The recycling methods should be unique and tailored to the specific product details. Ensure the response is structured as a detailed JSON object with the following keys:

- "product_name": The name of the product.
- "recycling_methods": An array of methods, where each method includes:
  - "method_name": The title of the recycling idea.
  - "description": A brief explanation of what the method achieves.
  - "steps": A step-by-step guide for implementing the recycling method.

Input product details:
{
  "name": {{quote .Name}},
  "size": {{quote .Size}},
  "type": {{quote .Type}},
  "material": {{quote .Material}},
  "cost": { "estimated_range_INR": {{quote .Cost}} }
}

Provide the response as a JSON object that is accurate, creative, and detailed.`

const supplyChainTemplate = `Predict the supply chain journey for the product {{quote .ProductName}} sold on a circular-economy marketplace in India. Answer as plain prose in exactly three numbered sections and nothing else:

1. The sourcing and manufacturing process the product most likely goes through.
2. An estimate of the end-to-end lead time and typical cost drivers.
3. Recommendations to shorten the chain or lower its environmental footprint.`

type Builder struct {
	metrics     *tmplx.Template
	recycling   *tmplx.Template
	supplyChain *tmplx.Template
}

func NewBuilder() *Builder {
	return &Builder{
		metrics:     tmplx.MustParse("metrics", metricsTemplate),
		recycling:   tmplx.MustParse("recycling", recyclingTemplate),
		supplyChain: tmplx.MustParse("supply_chain", supplyChainTemplate),
	}
}

// ProductDetail returns the image-to-product-detail prompt. It takes no
// attributes: the image payload is the input.
func (b *Builder) ProductDetail() string {
	return productDetailPrompt
}

func (b *Builder) Metrics(attrs Attributes) (string, error) {
	out, err := b.metrics.Render(attrs)
	if err != nil {
		return "", fmt.Errorf("render metrics prompt: %w", err)
	}
	return out, nil
}

func (b *Builder) Recycling(attrs Attributes) (string, error) {
	out, err := b.recycling.Render(attrs)
	if err != nil {
		return "", fmt.Errorf("render recycling prompt: %w", err)
	}
	return out, nil
}

func (b *Builder) SupplyChain(productName string) (string, error) {
	out, err := b.supplyChain.Render(map[string]any{"ProductName": productName})
	if err != nil {
		return "", fmt.Errorf("render supply chain prompt: %w", err)
	}
	return out, nil
}
