package catalog

import (
	"context"
	"fmt"
)

var defaultProducts = []Product{
	{Name: "Squeaky Bone", Price: 20.99},
	{Name: "Knotted Rope", Price: 12.99},
}

func SeedDefaults(ctx context.Context, st Store) error {
	n, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, p := range defaultProducts {
		if _, err := st.Insert(ctx, p); err != nil {
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return nil
}
