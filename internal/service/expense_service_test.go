package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"salestrack/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expenseNow = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func buildExpenseSvc() (ExpenseService, *stubExpenseRepo) {
	repo := newStubExpenseRepo()
	svc := NewExpenseService(repo)
	svc.(*expenseService).now = func() time.Time { return expenseNow }
	return svc, repo
}

func TestCreateExpense_DefaultsDateToNow(t *testing.T) {
	svc, _ := buildExpenseSvc()

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category: "Rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, expenseNow.Format(time.RFC3339), resp.ExpenseDate)
	assert.Equal(t, "Rent", resp.Category)
}

func TestCreateExpense_ExplicitDate(t *testing.T) {
	svc, _ := buildExpenseSvc()

	date := "2026-07-04"
	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category:    "Supplies",
		Amount:      decimal.NewFromInt(80),
		ExpenseDate: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04T00:00:00Z", resp.ExpenseDate)
}

func TestCreateExpense_RejectsBadDateAndNegativeAmount(t *testing.T) {
	svc, repo := buildExpenseSvc()

	bad := "July 4th"
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category:    "Supplies",
		Amount:      decimal.NewFromInt(80),
		ExpenseDate: &bad,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category: "Supplies",
		Amount:   decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
	assert.Empty(t, repo.expenses)
}

func TestUpdateExpense_PartialMerge(t *testing.T) {
	svc, _ := buildExpenseSvc()

	created, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category: "Rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	amount := decimal.NewFromInt(650)
	resp, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateExpenseRequest{
		Amount: &amount,
	})
	require.NoError(t, err)

	// Only the amount changed
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(650)))
	assert.Equal(t, "Rent", resp.Category)
	assert.Equal(t, created.ExpenseDate, resp.ExpenseDate)
}

func TestUpdateExpense_NotFound(t *testing.T) {
	svc, _ := buildExpenseSvc()
	category := "Misc"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateExpenseRequest{Category: &category})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteExpense(t *testing.T) {
	svc, repo := buildExpenseSvc()

	created, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
		Category: "Rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(created.ID)))
	assert.Empty(t, repo.expenses)

	err = svc.Delete(context.Background(), uuid.MustParse(created.ID))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListExpenses_InclusiveRange(t *testing.T) {
	svc, _ := buildExpenseSvc()

	d1 := "2026-03-15"
	d2 := "2026-03-31"
	d3 := "2026-04-02"
	for _, d := range []string{d1, d2, d3} {
		date := d
		_, err := svc.Create(context.Background(), uuid.New(), dto.CreateExpenseRequest{
			Category:    "Misc",
			Amount:      decimal.NewFromInt(10),
			ExpenseDate: &date,
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), dto.RangeFilter{
		StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}
