package service

import (
	"context"
	"fmt"
	"time"

	"salestrack/internal/dto"
	"salestrack/internal/model"
	"salestrack/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.RangeFilter) ([]dto.ExpenseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo, now: time.Now}
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}
	expenseDate := s.now()
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		d, err := parseExpenseDate(*req.ExpenseDate)
		if err != nil {
			return nil, err
		}
		expenseDate = d
	}
	e := &model.Expense{
		UserID:      userID,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) List(ctx context.Context, filter dto.RangeFilter) ([]dto.ExpenseResponse, error) {
	from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, *expenseToResponse(&expenses[i]))
	}
	return resp, nil
}

// Update applies a partial field merge with the same constraints as creation.
func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative")
		}
		e.Amount = *req.Amount
	}
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		d, err := parseExpenseDate(*req.ExpenseDate)
		if err != nil {
			return nil, err
		}
		e.ExpenseDate = d
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	return nil
}

// parseExpenseDate accepts YYYY-MM-DD or RFC 3339.
func parseExpenseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid expense_date %q: expected YYYY-MM-DD or RFC 3339", s)
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	createdBy := ""
	if e.User != nil {
		createdBy = e.User.Username
	}
	return &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format(time.RFC3339),
		Description: e.Description,
		CreatedBy:   createdBy,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
