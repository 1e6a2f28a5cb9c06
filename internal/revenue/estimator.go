// Package revenue estimates service revenue over a fixed price table and
// assembles service packages with generated sample content.
package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/davidbz/ember/internal/content"
	"github.com/davidbz/ember/internal/domain"
)

const (
	// perRequestCost is the flat estimated fulfillment cost per unit.
	perRequestCost = 0.10

	// sampleLength bounds the sample excerpt included in a package.
	sampleLength = 200
)

// Default per-unit USD prices by service type.
const (
	blogPostPrice          = 50.0
	codeGenerationPrice    = 100.0
	dataAnalysisPrice      = 150.0
	marketingCampaignPrice = 200.0
)

// RegisterDefaultPricing registers the default service price table.
func RegisterDefaultPricing(ctx context.Context, registry domain.PricingRegistry) error {
	prices := map[string]float64{
		"blog_post":          blogPostPrice,
		"code_generation":    codeGenerationPrice,
		"data_analysis":      dataAnalysisPrice,
		"marketing_campaign": marketingCampaignPrice,
	}

	for service, price := range prices {
		if err := registry.RegisterPrice(ctx, service, price); err != nil {
			return fmt.Errorf("failed to register pricing for %s: %w", service, err)
		}
	}

	return nil
}

// Estimate is the projected economics of delivering a service.
type Estimate struct {
	ServiceType     string  `json:"service_type"`
	Quantity        int     `json:"quantity"`
	PricePerUnit    float64 `json:"price_per_unit"`
	TotalRevenue    float64 `json:"total_revenue"`
	EstimatedCost   float64 `json:"estimated_cost"`
	EstimatedProfit float64 `json:"estimated_profit"`
	ProfitMargin    string  `json:"profit_margin"`
}

// ServiceRequest describes one service line in a package.
type ServiceRequest struct {
	Type         string
	Quantity     int
	Topic        string
	Requirements map[string]any
}

// PackageItem is one priced service with a content sample.
type PackageItem struct {
	Service  string  `json:"service"`
	Quantity int     `json:"quantity"`
	Sample   string  `json:"sample"`
	Value    float64 `json:"value"`
}

// ServicePackage bundles services with a total value.
type ServicePackage struct {
	PackageName string        `json:"package_name"`
	Services    []PackageItem `json:"services"`
	TotalValue  float64       `json:"total_value"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Estimator computes revenue estimates and builds service packages.
type Estimator struct {
	pricing   domain.PricingRegistry
	generator *content.Generator
}

// NewEstimator creates a revenue estimator.
func NewEstimator(pricing domain.PricingRegistry, generator *content.Generator) *Estimator {
	return &Estimator{
		pricing:   pricing,
		generator: generator,
	}
}

// Estimate projects revenue for quantity units of a service. customPrice
// overrides the registry price when > 0; an unknown service type prices
// at zero. Margin is 0% when revenue is zero.
func (e *Estimator) Estimate(
	ctx context.Context,
	serviceType string,
	quantity int,
	customPrice float64,
) *Estimate {
	pricePerUnit := customPrice
	if pricePerUnit <= 0 {
		// Unknown services price at zero rather than failing.
		pricePerUnit, _ = e.pricing.GetPrice(ctx, serviceType)
	}

	totalRevenue := pricePerUnit * float64(quantity)
	estimatedCost := float64(quantity) * perRequestCost
	profit := totalRevenue - estimatedCost

	margin := 0.0
	if totalRevenue > 0 {
		margin = profit / totalRevenue * 100
	}

	return &Estimate{
		ServiceType:     serviceType,
		Quantity:        quantity,
		PricePerUnit:    pricePerUnit,
		TotalRevenue:    totalRevenue,
		EstimatedCost:   estimatedCost,
		EstimatedProfit: profit,
		ProfitMargin:    fmt.Sprintf("%.2f%%", margin),
	}
}

// BuildServicePackage generates sample content for every requested service
// and prices the bundle.
func (e *Estimator) BuildServicePackage(
	ctx context.Context,
	packageName string,
	services []ServiceRequest,
) (*ServicePackage, error) {
	pkg := &ServicePackage{
		PackageName: packageName,
		Services:    make([]PackageItem, 0, len(services)),
		CreatedAt:   time.Now(),
	}

	for _, service := range services {
		quantity := service.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		topic := service.Topic
		if topic == "" {
			topic = "General"
		}

		sample, err := e.generator.Generate(
			ctx,
			content.ParseType(service.Type),
			topic,
			service.Requirements,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to generate sample for %s: %w", service.Type, err)
		}

		estimate := e.Estimate(ctx, service.Type, quantity, 0)
		pkg.TotalValue += estimate.TotalRevenue

		pkg.Services = append(pkg.Services, PackageItem{
			Service:  service.Type,
			Quantity: quantity,
			Sample:   truncateSample(sample),
			Value:    estimate.TotalRevenue,
		})
	}

	return pkg, nil
}

func truncateSample(sample string) string {
	runes := []rune(sample)
	if len(runes) <= sampleLength {
		return sample
	}
	return string(runes[:sampleLength]) + "..."
}
