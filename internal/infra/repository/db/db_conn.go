package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrWishlistNotFound = errors.New("wishlist item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrStockNotEnough   = errors.New("product stock not enough")
	ErrUnavailable      = errors.New("database unavailable")
)

func GetDbConn(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// mapErr 把driver錯誤收斂成repo sentinel
// 連線類錯誤統一映射成ErrUnavailable, 讓catalog read path可以fallback
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
