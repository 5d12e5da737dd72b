package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	db_models "shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

const wishlistColumns = `id, user_id, product_id, product_name, product_url, product_image_url, notes, added_at`

const addWishlistItem = `-- name: AddWishlistItem :one
INSERT INTO wishlist_items (user_id, product_id, product_name, product_url, product_image_url, notes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + wishlistColumns + `;
`

// AddWishlistItem adds an item to the user's wishlist.
func (s *PostgresStore) AddWishlistItem(ctx context.Context, arg store.AddWishlistItemParams) (*db_models.WishlistItem, error) {
	row := s.db.QueryRow(ctx, addWishlistItem,
		arg.UserID,
		arg.ProductID,
		arg.ProductName,
		arg.ProductURL,
		arg.ProductImageURL,
		arg.Notes,
	)
	var item db_models.WishlistItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.ProductName,
		&item.ProductURL,
		&item.ProductImageURL,
		&item.Notes,
		&item.AddedAt,
	)
	if err != nil {
		s.logger.Error("failed to add wishlist item",
			zap.Int64("user_id", arg.UserID), zap.Error(err))
		return nil, fmt.Errorf("database error adding wishlist item: %w", err)
	}
	s.logger.Info("added wishlist item",
		zap.Int64("item_id", item.ID), zap.Int64("user_id", item.UserID))
	return &item, nil
}

const getWishlistItems = `-- name: GetWishlistItems :many
SELECT ` + wishlistColumns + `
FROM wishlist_items
WHERE user_id = $1
ORDER BY added_at DESC;
`

// GetWishlistItems retrieves all wishlist items for a user, newest first.
func (s *PostgresStore) GetWishlistItems(ctx context.Context, userID int64) ([]db_models.WishlistItem, error) {
	rows, err := s.db.Query(ctx, getWishlistItems, userID)
	if err != nil {
		s.logger.Error("failed to fetch wishlist items",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("database error fetching wishlist items: %w", err)
	}
	defer rows.Close()

	items := []db_models.WishlistItem{}
	for rows.Next() {
		var item db_models.WishlistItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductURL,
			&item.ProductImageURL,
			&item.Notes,
			&item.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning wishlist row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist rows: %w", err)
	}
	return items, nil
}

const removeWishlistItem = `-- name: RemoveWishlistItem :exec
DELETE FROM wishlist_items
WHERE id = $1 AND user_id = $2;
`

// RemoveWishlistItem removes one wishlist item by id, scoped to the owning
// user. Returns store.ErrNotFound when nothing was deleted.
func (s *PostgresStore) RemoveWishlistItem(ctx context.Context, userID, itemID int64) error {
	tag, err := s.db.Exec(ctx, removeWishlistItem, itemID, userID)
	if err != nil {
		s.logger.Error("failed to remove wishlist item",
			zap.Int64("item_id", itemID), zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("database error removing wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
