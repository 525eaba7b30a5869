package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"parampara-storefront/internal/models"
	"parampara-storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	defaultSearchLimit     = 20
	maxSearchLimit         = 50
	defaultSuggestionLimit = 5
)

type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	foodRepo     repositories.FoodRepository
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, foodRepo repositories.FoodRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		foodRepo:     foodRepo,
	}
}

func foodDTOs(records []models.FoodRecord) []models.Food {
	foods := make([]models.Food, 0, len(records))
	for _, r := range records {
		foods = append(foods, r.ToDTO())
	}
	return foods
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

// ListFoods returns available foods; categoryID 0 means all categories.
func (s *CatalogService) ListFoods(ctx context.Context, categoryID uint) ([]models.Food, error) {
	records, err := s.foodRepo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return foodDTOs(records), nil
}

func (s *CatalogService) GetFood(ctx context.Context, id uint) (*models.Food, error) {
	record, err := s.foodRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	if err := s.foodRepo.IncrementViewCount(ctx, id); err != nil {
		log.Printf("Failed to count view of food %d: %v", id, err)
	}

	food := record.ToDTO()
	return &food, nil
}

func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Food{}, nil
	}
	records, err := s.foodRepo.Search(ctx, query, clampLimit(limit, defaultSearchLimit))
	if err != nil {
		return nil, err
	}
	return foodDTOs(records), nil
}

func (s *CatalogService) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	names, err := s.foodRepo.Suggestions(ctx, query, clampLimit(limit, defaultSuggestionLimit))
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	records, err := s.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, r.ToDTO())
	}
	return categories, nil
}

type seedFood struct {
	name, description, brand, unit, tags, image string
	mrp, sale                                   float64
	quantity                                    float64
	stock                                       int
	organic                                     bool
}

var seedCatalog = []struct {
	name, description string
	foods             []seedFood
}{
	{"Grains & Millets", "Traditional grains and millets", []seedFood{
		{name: "Ragi Flour", description: "Stone-ground finger millet flour", brand: "Parampara", unit: "kg", tags: "millet,gluten-free", image: "/images/foods/ragi-flour.jpg", mrp: 90, sale: 75, quantity: 1, stock: 40, organic: true},
		{name: "Red Rice", description: "Hand-pounded Kerala matta rice", brand: "Parampara", unit: "kg", tags: "rice", image: "/images/foods/red-rice.jpg", mrp: 120, quantity: 1, stock: 25},
		{name: "Foxtail Millet", description: "Unpolished foxtail millet", brand: "Parampara", unit: "kg", tags: "millet", image: "/images/foods/foxtail-millet.jpg", mrp: 140, sale: 129, quantity: 1, stock: 4, organic: true},
	}},
	{"Spices", "Whole and ground spices", []seedFood{
		{name: "Turmeric Powder", description: "Lakadong turmeric, high curcumin", brand: "Parampara", unit: "g", tags: "spice", image: "/images/foods/turmeric.jpg", mrp: 110, quantity: 200, stock: 60, organic: true},
		{name: "Black Pepper", description: "Malabar whole pepper", brand: "Parampara", unit: "g", tags: "spice", image: "/images/foods/pepper.jpg", mrp: 240, sale: 199, quantity: 250, stock: 30},
	}},
	{"Oils & Ghee", "Cold-pressed oils and ghee", []seedFood{
		{name: "A2 Cow Ghee", description: "Bilona method desi ghee", brand: "Parampara", unit: "ml", tags: "ghee", image: "/images/foods/ghee.jpg", mrp: 650, sale: 599, quantity: 500, stock: 15},
		{name: "Cold Pressed Groundnut Oil", description: "Wood-pressed groundnut oil", brand: "Parampara", unit: "l", tags: "oil", image: "/images/foods/groundnut-oil.jpg", mrp: 380, quantity: 1, stock: 20},
	}},
	{"Sweeteners", "Unrefined sweeteners", []seedFood{
		{name: "Organic Jaggery", description: "Chemical-free sugarcane jaggery", brand: "Parampara", unit: "kg", tags: "jaggery", image: "/images/foods/jaggery.jpg", mrp: 95, quantity: 1, stock: 50, organic: true},
		{name: "Wild Forest Honey", description: "Raw unprocessed honey", brand: "Parampara", unit: "g", tags: "honey", image: "/images/foods/honey.jpg", mrp: 450, sale: 399, quantity: 500, stock: 12},
	}},
}

// Seed loads the starter catalog into an empty database.
func (s *CatalogService) Seed(ctx context.Context) error {
	n, err := s.foodRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, c := range seedCatalog {
		category := &models.CategoryRecord{Name: c.name, Description: c.description, IsActive: true}
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			return err
		}
		for _, f := range c.foods {
			food := &models.FoodRecord{
				Name:          f.name,
				Description:   f.description,
				MRP:           decimal.NewFromFloat(f.mrp),
				CategoryID:    category.ID,
				IsAvailable:   true,
				IsOrganic:     f.organic,
				StockQuantity: f.stock,
				MinStockLevel: models.DefaultMinStockLevel,
				ImageURL:      f.image,
				Brand:         f.brand,
				Unit:          f.unit,
				Quantity:      f.quantity,
				Tags:          f.tags,
				Rating:        5,
			}
			if f.sale > 0 {
				food.SalePrice = decimal.NewNullDecimal(decimal.NewFromFloat(f.sale))
			}
			if err := s.foodRepo.Create(ctx, food); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded catalog with %d categories", len(seedCatalog))
	return nil
}
