// internal/repository/mocks/user_repository.go
package mocks

import (
	"context"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// UserRepository は repository.UserRepository のモック
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, db, userID)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, tx *gorm.DB, user *model.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}
