package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/model"
	"salestrack/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const productListCacheKey = "products:all"

func productCacheKey(id uuid.UUID) string { return "product:" + id.String() }

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	category := req.Category
	if category == "" {
		category = "General"
	}
	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      category,
		SKU:           req.SKU,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.dropCache(ctx, productListCacheKey)
	return productToResponse(p), nil
}

// Get serves the public catalog read through the redis cache.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	key := productCacheKey(id)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp dto.ProductResponse
			if json.Unmarshal(raw, &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	resp := productToResponse(p)
	s.fillCache(ctx, key, resp)
	return resp, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, productListCacheKey).Bytes(); err == nil {
			var resp []dto.ProductResponse
			if json.Unmarshal(raw, &resp) == nil {
				return resp, nil
			}
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *productToResponse(&products[i]))
	}
	s.fillCache(ctx, productListCacheKey, resp)
	return resp, nil
}

// Update applies a partial field merge with the same constraints as creation.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative")
		}
		p.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("stock_quantity must not be negative")
		}
		p.StockQuantity = *req.StockQuantity
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.SKU != nil {
		p.SKU = req.SKU
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.dropCache(ctx, productCacheKey(id), productListCacheKey)
	return productToResponse(p), nil
}

// Delete is unconditional: historical SaleItems keep their own name/price
// snapshot, so no referential-integrity check is made here.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	s.dropCache(ctx, productCacheKey(id), productListCacheKey)
	return nil
}

func (s *productService) fillCache(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	if raw, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, raw, s.cacheTTL)
	}
}

func (s *productService) dropCache(ctx context.Context, keys ...string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, keys...)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		SKU:           p.SKU,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
