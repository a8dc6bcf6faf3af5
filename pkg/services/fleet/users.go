package fleet

import (
	"context"
	"fmt"

	"github.com/de-tools/fleet-atlas/pkg/adapters"
	"github.com/de-tools/fleet-atlas/pkg/models/domain"
	"github.com/de-tools/fleet-atlas/pkg/store/postgres/users"
)

type UserService interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

type userService struct {
	store users.Store
}

func NewUserService(store users.Store) (UserService, error) {
	if store == nil {
		return nil, fmt.Errorf("user store is nil")
	}
	return &userService{store: store}, nil
}

func (s *userService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return adapters.MapStoreUserToDomain(*u), nil
}
