package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

func TestService_Create(t *testing.T) {
	type args struct {
		draft expense.Draft
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *expense.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				draft: expense.Draft{
					Description: "Coffee",
					Amount:      decimal.RequireFromString("4.5"),
					Category:    expense.CategoryFood,
					Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = expense.NewID()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			args: args{
				draft: expense.Draft{Description: "Bus"},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					Return(errors.New("store error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.draft)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.False(t, got.ID.IsZero())
			assert.Equal(t, tt.args.draft.Description, got.Description)
			assert.True(t, tt.args.draft.Amount.Equal(got.Amount))
			assert.Equal(t, tt.args.draft.Date, got.Date)
		})
	}
}

func TestService_Create_DefaultsDateToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)

	svc := expense.NewService(repo)
	got, err := svc.Create(context.Background(), expense.Draft{Description: "Lunch"})
	require.NoError(t, err)

	assert.False(t, got.Date.IsZero())
	assert.Equal(t, got.Date, expense.Today(got.Date))
}

func TestService_Update(t *testing.T) {
	id := expense.NewID()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	stored := func() *expense.Expense {
		return &expense.Expense{
			ID:          id,
			Description: "Rent",
			Amount:      decimal.RequireFromString("10.0"),
			Category:    expense.CategoryBills,
			Date:        date,
		}
	}

	t.Run("MergesProvidedFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetExpense(gomock.Any(), id).Return(stored(), nil)
		repo.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(nil)

		amount := decimal.RequireFromString("15.0")

		svc := expense.NewService(repo)
		got, err := svc.Update(context.Background(), id, expense.UpdateParams{Amount: &amount})
		require.NoError(t, err)

		assert.Equal(t, "15", got.Amount.String())
		assert.Equal(t, "Rent", got.Description)
		assert.Equal(t, expense.CategoryBills, got.Category)
		assert.Equal(t, date, got.Date)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetExpense(gomock.Any(), id).Return(nil, expense.ErrNotFound)

		svc := expense.NewService(repo)
		got, err := svc.Update(context.Background(), id, expense.UpdateParams{})

		assert.ErrorIs(t, err, expense.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetExpense(gomock.Any(), id).Return(stored(), nil)
		repo.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		svc := expense.NewService(repo)
		_, err := svc.Update(context.Background(), id, expense.UpdateParams{})
		assert.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().ListExpenses(gomock.Any()).Return([]*expense.Expense{
		{ID: expense.NewID()},
		{ID: expense.NewID()},
	}, nil)

	svc := expense.NewService(repo)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "4.5", want: "4.5"},
		{in: "-3.20", want: "-3.2"},
		{in: "10", want: "10"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1,50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expense.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, expense.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCategories(t *testing.T) {
	cats := expense.NewCategories([]string{"Food", "Bills"})

	assert.True(t, cats.Contains(expense.CategoryBills))
	assert.False(t, cats.Contains(expense.CategoryTransport))
	assert.Equal(t, expense.CategoryFood, cats.First())
	assert.Equal(t, []string{"Food", "Bills"}, cats.Strings())
	assert.Equal(t, expense.CategoryOther, expense.Categories{}.First())
}
