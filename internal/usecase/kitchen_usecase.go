package usecase

//go:generate mockgen -source=kitchen_usecase.go -destination=../adapter/http/handlers/mocks/mock_kitchen_usecase.go -package=mocks

import (
	"context"
	"errors"
	"log"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

var ErrInvalidKitchenStatus = errors.New("isOpen must be provided")

// SetKitchenStatusInput: IsOpen is required, a blank Message gets the default text.
type SetKitchenStatusInput struct {
	IsOpen  *bool
	Message string
}

type IKitchenUseCase interface {
	GetStatus(ctx context.Context) entities.KitchenStatus
	SetStatus(ctx context.Context, in SetKitchenStatusInput) (entities.KitchenStatus, error)
}

type KitchenUseCase struct {
	repo interfaces.IKitchenStatusRepository
}

var _ IKitchenUseCase = (*KitchenUseCase)(nil)

func NewKitchenUseCase(repo interfaces.IKitchenStatusRepository) *KitchenUseCase {
	return &KitchenUseCase{repo: repo}
}

// GetStatus never fails: when nothing is stored or no store answers, the kitchen
// is reported open with the default message.
func (u *KitchenUseCase) GetStatus(ctx context.Context) entities.KitchenStatus {
	status, found, err := u.repo.Get(ctx)
	if err != nil {
		log.Printf("[kitchen][usecase] status unavailable, assuming open err=%v", err)
		return entities.DefaultKitchenStatus()
	}
	if !found {
		return entities.DefaultKitchenStatus()
	}
	return status.Normalized()
}

func (u *KitchenUseCase) SetStatus(ctx context.Context, in SetKitchenStatusInput) (entities.KitchenStatus, error) {
	if in.IsOpen == nil {
		return entities.KitchenStatus{}, ErrInvalidKitchenStatus
	}

	status := entities.KitchenStatus{IsOpen: *in.IsOpen, Message: in.Message}.Normalized()
	if err := u.repo.Put(ctx, status); err != nil {
		log.Printf("[kitchen][usecase] status update failed is_open=%t err=%v", status.IsOpen, err)
		return entities.KitchenStatus{}, err
	}
	log.Printf("[kitchen][usecase] status updated is_open=%t", status.IsOpen)
	return status, nil
}
