package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionWriter is the ledger write path used by confirmed actions.
// The transaction service satisfies it; going through the service keeps
// the budget-spent side effect and websocket events attached.
type TransactionWriter interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
}

// PrepareTools returns the two-phase write tools. Calling one never
// touches a store: it parks a pending action and asks the user to
// confirm. The commit runs only on an explicit confirm call.
func PrepareTools(store *ActionStore, transactions TransactionWriter, budgets domain.BudgetRepository, goals domain.GoalRepository, payments domain.ScheduledPaymentRepository) []*Tool {
	return []*Tool{
		{
			Name:                 "create_budget",
			Description:          "Prepare a spending budget for a category. The user must confirm before it is saved.",
			RequiresConfirmation: true,
			InputSchema: ObjectSchema(map[string]interface{}{
				"category": StringProperty("Spending category, e.g. 'Food & Dining'"),
				"amount":   NumberProperty("Budget cap in rupees"),
				"period":   StringEnumProperty("Budget period, default monthly", "weekly", "monthly", "yearly"),
				"name":     StringProperty("Optional display name"),
			}, "category", "amount"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Category string  `json:"category"`
					Amount   float64 `json:"amount"`
					Period   string  `json:"period"`
					Name     string  `json:"name"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("create_budget", "invalid arguments: "+err.Error())
				}
				if p.Category == "" || p.Amount <= 0 {
					return Fail("create_budget", "category and a positive amount are required")
				}
				if p.Period == "" {
					p.Period = "monthly"
				}
				if p.Name == "" {
					p.Name = p.Category + " budget"
				}

				budget := &domain.Budget{
					UserID:    userID,
					Name:      p.Name,
					Category:  p.Category,
					Amount:    decimal.NewFromFloat(p.Amount),
					Period:    domain.BudgetPeriod(p.Period),
					StartDate: util.FormatDate(time.Now()),
				}
				data := map[string]interface{}{
					"category": p.Category,
					"amount":   p.Amount,
					"period":   p.Period,
				}
				msg := fmt.Sprintf("Create a %s budget of ₹%.2f for %s?", p.Period, p.Amount, p.Category)
				action := store.Prepare(userID, "create_budget", msg, data, func(ctx context.Context) error {
					_, err := budgets.CreateBudget(ctx, budget)
					return err
				})
				return prepared(action)
			},
		},
		{
			Name:                 "create_savings_goal",
			Description:          "Prepare a savings goal with a target amount. The user must confirm before it is saved.",
			RequiresConfirmation: true,
			InputSchema: ObjectSchema(map[string]interface{}{
				"name":          StringProperty("What the user is saving for, e.g. 'Goa trip'"),
				"target_amount": NumberProperty("Target amount in rupees"),
				"deadline":      StringProperty("Optional deadline in YYYY-MM-DD"),
			}, "name", "target_amount"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Name     string  `json:"name"`
					Target   float64 `json:"target_amount"`
					Deadline string  `json:"deadline"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("create_savings_goal", "invalid arguments: "+err.Error())
				}
				if p.Name == "" || p.Target <= 0 {
					return Fail("create_savings_goal", "name and a positive target_amount are required")
				}
				if p.Deadline != "" {
					if _, err := util.ParseDate(p.Deadline); err != nil {
						return Fail("create_savings_goal", "deadline must be YYYY-MM-DD")
					}
				}

				goal := &domain.Goal{
					UserID:       userID,
					Name:         p.Name,
					TargetAmount: decimal.NewFromFloat(p.Target),
					Deadline:     p.Deadline,
					Status:       domain.GoalStatusActive,
				}
				data := map[string]interface{}{
					"name":          p.Name,
					"target_amount": p.Target,
					"deadline":      p.Deadline,
				}
				msg := fmt.Sprintf("Create savings goal %q with target ₹%.2f?", p.Name, p.Target)
				action := store.Prepare(userID, "create_savings_goal", msg, data, func(ctx context.Context) error {
					_, err := goals.CreateGoal(ctx, goal)
					return err
				})
				return prepared(action)
			},
		},
		{
			Name:                 "schedule_payment",
			Description:          "Prepare a recurring scheduled payment or bill reminder. The user must confirm before it is saved.",
			RequiresConfirmation: true,
			InputSchema: ObjectSchema(map[string]interface{}{
				"name":      StringProperty("Payment name, e.g. 'Rent'"),
				"amount":    NumberProperty("Amount due each cycle in rupees"),
				"category":  StringProperty("Spending category"),
				"frequency": StringEnumProperty("How often the payment recurs", "daily", "weekly", "monthly", "yearly"),
				"due_date":  StringProperty("First due date in YYYY-MM-DD"),
			}, "name", "amount", "frequency", "due_date"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Name      string  `json:"name"`
					Amount    float64 `json:"amount"`
					Category  string  `json:"category"`
					Frequency string  `json:"frequency"`
					DueDate   string  `json:"due_date"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("schedule_payment", "invalid arguments: "+err.Error())
				}
				if p.Name == "" || p.Amount <= 0 {
					return Fail("schedule_payment", "name and a positive amount are required")
				}
				switch domain.PaymentFrequency(p.Frequency) {
				case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyYearly:
				default:
					return Fail("schedule_payment", "frequency must be daily, weekly, monthly or yearly")
				}
				if _, err := util.ParseDate(p.DueDate); err != nil {
					return Fail("schedule_payment", "due_date must be YYYY-MM-DD")
				}

				payment := &domain.ScheduledPayment{
					UserID:      userID,
					Name:        p.Name,
					Amount:      decimal.NewFromFloat(p.Amount),
					Category:    p.Category,
					Frequency:   domain.PaymentFrequency(p.Frequency),
					DueDate:     p.DueDate,
					NextDueDate: p.DueDate,
					Status:      domain.PaymentStatusActive,
					PaymentType: domain.PaymentTypeRegular,
				}
				data := map[string]interface{}{
					"name":      p.Name,
					"amount":    p.Amount,
					"category":  p.Category,
					"frequency": p.Frequency,
					"due_date":  p.DueDate,
				}
				msg := fmt.Sprintf("Schedule %s payment %q of ₹%.2f starting %s?", p.Frequency, p.Name, p.Amount, p.DueDate)
				action := store.Prepare(userID, "schedule_payment", msg, data, func(ctx context.Context) error {
					_, err := payments.CreatePayment(ctx, payment)
					return err
				})
				return prepared(action)
			},
		},
		{
			Name:                 "add_transaction",
			Description:          "Prepare recording an income or expense transaction. The user must confirm before it is saved.",
			RequiresConfirmation: true,
			InputSchema: ObjectSchema(map[string]interface{}{
				"amount":      NumberProperty("Transaction amount in rupees"),
				"type":        StringEnumProperty("Transaction type", "income", "expense"),
				"category":    StringProperty("Spending or income category"),
				"description": StringProperty("What the transaction was for"),
				"date":        StringProperty("Date in YYYY-MM-DD, default today"),
				"merchant":    StringProperty("Optional merchant name"),
			}, "amount", "type", "category"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Amount      float64 `json:"amount"`
					Type        string  `json:"type"`
					Category    string  `json:"category"`
					Description string  `json:"description"`
					Date        string  `json:"date"`
					Merchant    string  `json:"merchant"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("add_transaction", "invalid arguments: "+err.Error())
				}
				if p.Amount <= 0 {
					return Fail("add_transaction", "amount must be positive")
				}
				if p.Type != string(domain.TransactionTypeIncome) && p.Type != string(domain.TransactionTypeExpense) {
					return Fail("add_transaction", "type must be income or expense")
				}
				if p.Category == "" {
					return Fail("add_transaction", "category is required")
				}
				if p.Date == "" {
					p.Date = util.FormatDate(time.Now())
				} else if _, err := util.ParseDate(p.Date); err != nil {
					return Fail("add_transaction", "date must be YYYY-MM-DD")
				}

				txn := &domain.Transaction{
					UserID:      userID,
					Amount:      decimal.NewFromFloat(p.Amount),
					Type:        domain.TransactionType(p.Type),
					Category:    p.Category,
					Description: p.Description,
					Date:        p.Date,
					Merchant:    p.Merchant,
				}
				data := map[string]interface{}{
					"amount":      p.Amount,
					"type":        p.Type,
					"category":    p.Category,
					"description": p.Description,
					"date":        p.Date,
				}
				msg := fmt.Sprintf("Record %s of ₹%.2f in %s on %s?", p.Type, p.Amount, p.Category, p.Date)
				action := store.Prepare(userID, "add_transaction", msg, data, func(ctx context.Context) error {
					_, err := transactions.Create(ctx, txn)
					return err
				})
				return prepared(action)
			},
		},
	}
}

// prepared shapes the pending action into the tool result the loop and
// the HTTP layer expect.
func prepared(a *PendingAction) *Result {
	data := map[string]interface{}{
		"action_id": a.ID,
	}
	for k, v := range a.Data {
		data[k] = v
	}
	return &Result{
		Success:           true,
		Action:            a.Type,
		Data:              data,
		Message:           a.Message,
		NeedsConfirmation: true,
	}
}
