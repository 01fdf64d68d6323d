package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IReviewService interface {
	AddReview(ctx context.Context, principal model.Principal, productID string, rating int, comment string) (*model.Review, error)
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
	AddReply(ctx context.Context, principal model.Principal, reviewID string, replyText string) (*model.Review, error)
}

type ReviewService struct {
	reviewRepo  db.IReviewRepository
	productRepo db.IProductRepository
}

func NewReviewService(reviewRepo db.IReviewRepository, productRepo db.IProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

var _ IReviewService = (*ReviewService)(nil)

// AddReview 一個user對同一商品只能評一次
func (s *ReviewService) AddReview(ctx context.Context, principal model.Principal, productID string, rating int, comment string) (*model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}
	if rating < 1 || rating > 5 {
		return nil, er.New(er.InvalidArgumentCode, "Rating must be between 1 and 5.")
	}
	if comment == "" {
		return nil, er.New(er.InvalidArgumentCode, "Comment is required.")
	}

	if _, err := s.productRepo.GetByID(ctx, oid); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, er.New(er.NotFoundCode, "Product not found.")
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByUserAndProduct(ctx, principal.ID, oid); err == nil {
		return nil, er.New(er.ConflictCode, "You have already reviewed this product.")
	} else if !errors.Is(err, db.ErrReviewNotFound) {
		return nil, err
	}

	review := &model.Review{
		ProductID:    oid,
		UserID:       principal.ID,
		UserName:     principal.Name,
		UserPhotoURL: principal.PhotoURL,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// 併發下靠unique index擋住第二筆
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, er.New(er.ConflictCode, "You have already reviewed this product.")
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Product ID")
	}
	return s.reviewRepo.ListByProduct(ctx, oid)
}

func (s *ReviewService) AddReply(ctx context.Context, principal model.Principal, reviewID string, replyText string) (*model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, er.New(er.InvalidArgumentCode, "Invalid Review ID")
	}
	if replyText == "" {
		return nil, er.New(er.InvalidArgumentCode, "Reply text is required.")
	}

	reply := model.Reply{
		UserID:       principal.ID,
		UserName:     principal.Name,
		UserPhotoURL: principal.PhotoURL,
		ReplyText:    replyText,
		CreatedAt:    time.Now().UTC(),
	}

	review, err := s.reviewRepo.AppendReply(ctx, oid, reply)
	if err != nil {
		if errors.Is(err, db.ErrReviewNotFound) {
			return nil, er.New(er.NotFoundCode, "Review not found.")
		}
		return nil, err
	}
	return review, nil
}
