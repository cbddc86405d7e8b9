package registry

import (
	"context"
	"sort"

	"github.com/weblayers/weblayers/pkg/types"
)

// SortBackgrounds orders layer backgrounds for composition: ascending
// Order, ties broken by discovery order. The sort is stable, so equal
// orders keep their relative position.
func SortBackgrounds(backgrounds []types.Entrypoint) []types.Entrypoint {
	sorted := append([]types.Entrypoint(nil), backgrounds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// ComposeBackground chains layer background handlers into a single
// handler. Handlers run strictly sequentially in the given order: each
// one's return value is the next one's input, and a handler must finish
// before the next starts. Handlers that complete immediately and handlers
// that block are treated uniformly. The first error aborts the chain.
func ComposeBackground(handlers []types.BackgroundHandler) types.BackgroundHandler {
	return func(ctx context.Context, input any) (any, error) {
		current := input
		for _, handler := range handlers {
			result, err := handler(ctx, current)
			if err != nil {
				return nil, err
			}
			current = result
		}
		return current, nil
	}
}
