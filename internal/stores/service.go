package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service exposes store operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	MarkSynced(ctx context.Context, id uuid.UUID, at time.Time) error
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	return toDTO(store), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	rows, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) MarkSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	if err := s.repo.TouchLastSynced(ctx, id, at); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark store synced")
	}
	return nil
}
