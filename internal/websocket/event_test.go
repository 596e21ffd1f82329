package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_TypeFormat(t *testing.T) {
	e := NewEvent(EventTypeCreated, EntityTypeTransaction, map[string]string{"id": "t1"})
	assert.Equal(t, "transaction.created", e.Type)
	assert.Equal(t, EntityTypeTransaction, e.Entity)
	assert.False(t, e.Timestamp.IsZero())
}

func TestEvent_ToJSON(t *testing.T) {
	e := PaymentPaid(map[string]interface{}{"id": "p1", "amount": "1500.00"})
	data, err := e.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "payment.paid", decoded["type"])
	assert.Equal(t, "payment", decoded["entity"])
	payload := decoded["payload"].(map[string]interface{})
	assert.Equal(t, "1500.00", payload["amount"])
}

func TestEventConstructors(t *testing.T) {
	cases := []struct {
		event Event
		want  string
	}{
		{TransactionCreated(nil), "transaction.created"},
		{TransactionUpdated(nil), "transaction.updated"},
		{TransactionDeleted(nil), "transaction.deleted"},
		{TransactionsImported(nil), "transaction.imported"},
		{BudgetUpdated(nil), "budget.updated"},
		{GoalFunded(nil), "goal.funded"},
		{PaymentPaid(nil), "payment.paid"},
		{MilestoneAchieved(nil), "milestone.achieved"},
		{BillSplitUpdated(nil), "billsplit.updated"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.event.Type)
	}
}
