package repository

import "context"

// EnsureIndexes creates the collection indexes for the Mongo-backed
// repositories. No-op for other implementations.
func EnsureIndexes(ctx context.Context, carts CartRepository, products ProductRepository) error {
	if repo, ok := carts.(*mongoCartRepository); ok {
		if err := repo.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	if repo, ok := products.(*mongoProductRepository); ok {
		if err := repo.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
