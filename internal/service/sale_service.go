package service

import (
	"context"
	"fmt"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/infra"
	"salestrack/internal/model"
	"salestrack/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	// Receipt renders the sale as a PDF and returns the file path.
	Receipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	rdb         *redis.Client
	receiptPath string
	now         func() time.Time
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	rdb *redis.Client,
	receiptPath string,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		userRepo:    userRepo,
		rdb:         rdb,
		receiptPath: receiptPath,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
// Sale creation is a single transaction:
//  1. For each line item, in input order: load the product, reject on missing
//     product or insufficient stock, accumulate total with the loaded price.
//  2. Draw the next invoice number from the sequence.
//  3. Persist the Sale with its items (price and name snapshotted per item).
//  4. Decrement each product's stock with a stock_quantity >= qty guard; a
//     failed guard (concurrent sale drained the stock) aborts the whole tx.

func (s *saleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("sale must contain at least one item")
	}

	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
	}

	var sale model.Sale
	var resolved []resolvedItem

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		resolved = resolved[:0]
		total := decimal.Zero

		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("invalid product_id %q", item.ProductID)
			}
			p, err := s.productRepo.FindByIDTx(tx, pid)
			if err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
			}
			if p.StockQuantity < item.Quantity {
				return &InsufficientStockError{
					Product:   p.Name,
					Available: p.StockQuantity,
					Requested: item.Quantity,
				}
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			resolved = append(resolved, resolvedItem{
				productID: pid,
				name:      p.Name,
				price:     p.Price,
				quantity:  item.Quantity,
			})
		}

		seq, err := s.repo.NextInvoiceSeq(ctx, tx)
		if err != nil {
			return err
		}

		customer := "Cash Customer"
		if req.CustomerName != nil && *req.CustomerName != "" {
			customer = *req.CustomerName
		}

		sale = model.Sale{
			UserID:        userID,
			TotalAmount:   total,
			SaleDate:      s.now(),
			CustomerName:  customer,
			InvoiceNumber: fmt.Sprintf("INV-%06d", seq),
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:          r.productID,
				ProductName:        r.name,
				QuantitySold:       r.quantity,
				PricePerUnitAtSale: r.price,
			})
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, r := range resolved {
			n, err := s.productRepo.DecrementStockTx(tx, r.productID, r.quantity)
			if err != nil {
				return err
			}
			if n == 0 {
				// A concurrent sale drained the stock between our read and
				// this write; surface the current availability.
				avail := 0
				if p, ferr := s.productRepo.FindByIDTx(tx, r.productID); ferr == nil {
					avail = p.StockQuantity
				}
				return &InsufficientStockError{
					Product:   r.name,
					Available: avail,
					Requested: r.quantity,
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	ids := make([]uuid.UUID, 0, len(resolved))
	for _, r := range resolved {
		ids = append(ids, r.productID)
	}
	s.invalidateCatalog(ctx, ids)

	username := ""
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		username = user.Username
	}
	return saleToResponse(&sale, username), nil
}

// invalidateCatalog drops the cached catalog entries for products whose stock
// just changed. Best effort; the cache has a TTL as backstop.
func (s *saleService) invalidateCatalog(ctx context.Context, productIDs []uuid.UUID) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, 0, len(productIDs)+1)
	keys = append(keys, productListCacheKey)
	for _, id := range productIDs {
		keys = append(keys, productCacheKey(id))
	}
	s.rdb.Del(ctx, keys...)
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	sales, err := s.repo.List(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		username := ""
		if sales[i].User != nil {
			username = sales[i].User.Username
		}
		resp = append(resp, *saleToResponse(&sales[i], username))
	}
	return resp, nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	username := ""
	if sale.User != nil {
		username = sale.User.Username
	}
	return saleToResponse(sale, username), nil
}

func (s *saleService) Receipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	return infra.GenerateReceiptPDF(sale, s.receiptPath)
}

func saleToResponse(s *model.Sale, username string) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		qty := decimal.NewFromInt(int64(item.QuantitySold))
		items = append(items, dto.SaleItemResponse{
			ProductID:    item.ProductID.String(),
			Product:      item.ProductName,
			QuantitySold: item.QuantitySold,
			PricePerUnit: item.PricePerUnitAtSale,
			Subtotal:     item.PricePerUnitAtSale.Mul(qty),
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		InvoiceNumber: s.InvoiceNumber,
		TotalAmount:   s.TotalAmount,
		SaleDate:      s.SaleDate.Format(time.RFC3339),
		CustomerName:  s.CustomerName,
		SoldBy:        username,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
