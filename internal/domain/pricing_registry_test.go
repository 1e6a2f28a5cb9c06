package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
)

func TestInMemoryPricingRegistry_RegisterAndGet(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	t.Run("register and retrieve price", func(t *testing.T) {
		err := registry.RegisterPrice(ctx, "blog_post", 50.0)
		require.NoError(t, err)

		price, err := registry.GetPrice(ctx, "blog_post")
		require.NoError(t, err)
		require.InDelta(t, 50.0, price, 0.0001)
	})

	t.Run("get price for non-existent service returns error", func(t *testing.T) {
		_, err := registry.GetPrice(ctx, "non-existent-service")
		require.Error(t, err)
	})

	t.Run("register with empty service returns error", func(t *testing.T) {
		err := registry.RegisterPrice(ctx, "", 10.0)
		require.Error(t, err)
	})

	t.Run("overwrite existing price", func(t *testing.T) {
		require.NoError(t, registry.RegisterPrice(ctx, "code_generation", 100.0))
		require.NoError(t, registry.RegisterPrice(ctx, "code_generation", 120.0))

		price, err := registry.GetPrice(ctx, "code_generation")
		require.NoError(t, err)
		require.InDelta(t, 120.0, price, 0.0001)
	})
}
