package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/auth/idtoken"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
)

type SyncProfileParams struct {
	Email    string
	Name     string
	PhotoURL string
}

type IUserService interface {
	SyncFromIdentity(ctx context.Context, info *idtoken.UserInfo) (*model.User, bool, error)
	SyncProfile(ctx context.Context, uid string, params SyncProfileParams) (*model.User, error)
	GetUser(ctx context.Context, uid string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, uid string, upd db.UserUpdate) (*model.User, error)
	UpdateStatus(ctx context.Context, uid string, status string) (*model.User, error)
	UpdateRole(ctx context.Context, uid string, role string) (*model.User, error)
}

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ IUserService = (*UserService)(nil)

// SyncFromIdentity 第一次見到的uid自動建shadow profile
// 回傳created=true表示這次建了新user, caller可以記log
func (s *UserService) SyncFromIdentity(ctx context.Context, info *idtoken.UserInfo) (*model.User, bool, error) {
	user, err := s.userRepo.GetByUID(ctx, info.SubjectID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return nil, false, err
	}

	user = &model.User{
		UID:      info.SubjectID,
		Email:    info.Email,
		Name:     info.Name,
		PhotoURL: info.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 兩個request同時upsert同一個uid, 輸的那邊改讀贏家寫的
		if errors.Is(err, db.ErrDuplicateKey) {
			existing, gerr := s.userRepo.GetByUID(ctx, info.SubjectID)
			if gerr != nil {
				return nil, false, gerr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

// SyncProfile 登入後client主動回報的profile, 存在就更新, 不存在就建
func (s *UserService) SyncProfile(ctx context.Context, uid string, params SyncProfileParams) (*model.User, error) {
	upd := db.UserUpdate{}
	if params.Email != "" {
		upd.Email = &params.Email
	}
	if params.Name != "" {
		upd.Name = &params.Name
	}
	if params.PhotoURL != "" {
		upd.PhotoURL = &params.PhotoURL
	}

	user, err := s.userRepo.Update(ctx, uid, upd)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return nil, err
	}

	user = &model.User{
		UID:      uid,
		Email:    params.Email,
		Name:     params.Name,
		PhotoURL: params.PhotoURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return s.userRepo.GetByUID(ctx, uid)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.NotFoundCode, "User not found.")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, uid string, upd db.UserUpdate) (*model.User, error) {
	user, err := s.userRepo.Update(ctx, uid, upd)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.NotFoundCode, "User not found.")
		}
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, er.New(er.ConflictCode, "Email already in use.")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, uid string, status string) (*model.User, error) {
	newStatus := model.UserStatus(status)
	if !newStatus.Valid() {
		return nil, er.New(er.InvalidArgumentCode, "Invalid status provided. Must be 'active' or 'blocked'.")
	}

	user, err := s.userRepo.UpdateStatus(ctx, uid, newStatus)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.NotFoundCode, "User not found.")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, uid string, role string) (*model.User, error) {
	newRole := model.Role(role)
	if !newRole.Valid() {
		return nil, er.New(er.InvalidArgumentCode, "Invalid role provided. Must be 'user' or 'admin'.")
	}

	user, err := s.userRepo.UpdateRole(ctx, uid, newRole)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, er.New(er.NotFoundCode, "User not found.")
		}
		return nil, err
	}
	return user, nil
}
