package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// InMemoryPricingRegistry stores service prices in memory.
type InMemoryPricingRegistry struct {
	mu     sync.RWMutex
	prices map[string]float64
}

// NewInMemoryPricingRegistry creates a new in-memory pricing registry.
func NewInMemoryPricingRegistry() *InMemoryPricingRegistry {
	return &InMemoryPricingRegistry{
		mu:     sync.RWMutex{},
		prices: make(map[string]float64),
	}
}

// GetPrice retrieves the per-unit price for a service type.
func (r *InMemoryPricingRegistry) GetPrice(
	_ context.Context,
	serviceType string,
) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	price, exists := r.prices[serviceType]
	if !exists {
		return 0, fmt.Errorf("pricing not found for service: %s", serviceType)
	}

	return price, nil
}

// RegisterPrice adds or overwrites the price for a service type.
func (r *InMemoryPricingRegistry) RegisterPrice(
	_ context.Context,
	serviceType string,
	perUnitUSD float64,
) error {
	if serviceType == "" {
		return errors.New("service type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prices[serviceType] = perUnitUSD
	return nil
}
