package service

import (
	"context"
	"strings"

	"tableside/internal/domain"
)

type FoodService struct {
	repo FoodRepository
}

func NewFoodService(repo FoodRepository) *FoodService {
	return &FoodService{repo: repo}
}

func validateFood(food *domain.Food) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(food.Name) == "" {
		verr.Add("name", "must not be empty")
	}
	if food.Price < 0 {
		verr.Add("price", "must not be negative")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *FoodService) Create(ctx context.Context, food *domain.Food) error {
	if err := validateFood(food); err != nil {
		return err
	}
	return s.repo.CreateFood(ctx, food)
}

func (s *FoodService) List(ctx context.Context) ([]domain.Food, error) {
	return s.repo.ListFoods(ctx)
}

func (s *FoodService) Get(ctx context.Context, id int) (*domain.Food, error) {
	return s.repo.GetFood(ctx, id)
}

// Update edits the menu row only; order lines keep the price captured when
// they were placed.
func (s *FoodService) Update(ctx context.Context, food *domain.Food) error {
	if err := validateFood(food); err != nil {
		return err
	}
	return s.repo.UpdateFood(ctx, food)
}

func (s *FoodService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteFood(ctx, id)
}

func (s *FoodService) UpdateImage(ctx context.Context, id int, imageURL string) error {
	return s.repo.UpdateFoodImage(ctx, id, imageURL)
}

var _ FoodServiceInterface = (*FoodService)(nil)
