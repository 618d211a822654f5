package etorder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderArgs() (*CustomerInfo, *ShippingInfo, []*OrderItem) {
	customer := &CustomerInfo{Name: "สมชาย", Email: "somchai@example.com"}
	shipping := &ShippingInfo{RecipientName: "สมหญิง", Phone: "0812345678", Address: "99/1", Province: "กรุงเทพมหานคร", PostalCode: "10110"}
	items := []*OrderItem{
		{ProductID: "prd_001", ProductName: "ช่อกุหลาบ", UnitPrice: decimal.NewFromInt(1290), Quantity: 1},
	}
	return customer, shipping, items
}

func TestNewOrder(t *testing.T) {
	customer, shipping, items := validOrderArgs()

	order, err := NewOrder("id-1", "TT000000000000001", customer, shipping, items, PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	require.NotNil(t, order.Payment)
	assert.Equal(t, PaymentMethodCard, order.Payment.Method)
}

func TestNewOrderValidation(t *testing.T) {
	customer, shipping, items := validOrderArgs()

	tests := []struct {
		name    string
		build   func() (*Order, error)
		wantErr error
	}{
		{
			name: "empty id",
			build: func() (*Order, error) {
				return NewOrder("", "TT1", customer, shipping, items, PaymentMethodCard)
			},
			wantErr: ErrInvalidOrderID,
		},
		{
			name: "empty order number",
			build: func() (*Order, error) {
				return NewOrder("id-1", "", customer, shipping, items, PaymentMethodCard)
			},
			wantErr: ErrInvalidOrderNumber,
		},
		{
			name: "nil customer",
			build: func() (*Order, error) {
				return NewOrder("id-1", "TT1", nil, shipping, items, PaymentMethodCard)
			},
			wantErr: ErrNilCustomer,
		},
		{
			name: "no items",
			build: func() (*Order, error) {
				return NewOrder("id-1", "TT1", customer, shipping, nil, PaymentMethodCard)
			},
			wantErr: ErrEmptyItems,
		},
		{
			name: "zero quantity",
			build: func() (*Order, error) {
				bad := []*OrderItem{{ProductID: "p", UnitPrice: decimal.NewFromInt(100), Quantity: 0}}
				return NewOrder("id-1", "TT1", customer, shipping, bad, PaymentMethodCard)
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative price",
			build: func() (*Order, error) {
				bad := []*OrderItem{{ProductID: "p", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}}
				return NewOrder("id-1", "TT1", customer, shipping, bad, PaymentMethodCard)
			},
			wantErr: ErrInvalidUnitPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyQuoteRejectsNegativeFinal(t *testing.T) {
	customer, shipping, items := validOrderArgs()
	order, err := NewOrder("id-1", "TT1", customer, shipping, items, PaymentMethodCard)
	require.NoError(t, err)

	err = order.ApplyQuote(
		decimal.NewFromInt(100), decimal.Zero,
		decimal.NewFromInt(200), decimal.NewFromInt(-100), "BAD",
	)
	assert.ErrorIs(t, err, ErrNegativeFinalAmount)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	customer, shipping, items := validOrderArgs()
	order, err := NewOrder("id-1", "TT1", customer, shipping, items, PaymentMethodPromptPay)
	require.NoError(t, err)

	paidAt := time.Now()
	changed, err := order.ConfirmPayment("chrg_123", paidAt)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, OrderStatusPaid, order.Status)
	assert.Equal(t, PaymentStatusConfirmed, order.PaymentStatus)
	assert.Equal(t, "chrg_123", order.Payment.TransactionID)

	// 重复确认是空操作，交易标识保持首次写入的值
	changed, err = order.ConfirmPayment("chrg_456", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "chrg_123", order.Payment.TransactionID)
}

func TestConfirmPaymentAfterRejected(t *testing.T) {
	customer, shipping, items := validOrderArgs()
	order, err := NewOrder("id-1", "TT1", customer, shipping, items, PaymentMethodPromptPay)
	require.NoError(t, err)

	changed, err := order.RejectPayment()
	require.NoError(t, err)
	assert.True(t, changed)

	// 支付状态只向前流转
	_, err = order.ConfirmPayment("chrg_123", time.Now())
	assert.ErrorIs(t, err, ErrPaymentRejected)
}

func TestCancel(t *testing.T) {
	customer, shipping, items := validOrderArgs()
	order, err := NewOrder("id-1", "TT1", customer, shipping, items, PaymentMethodBankTransfer)
	require.NoError(t, err)

	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)

	order.Status = OrderStatusFulfilled
	assert.ErrorIs(t, order.Cancel(), ErrOrderFulfilled)
}

func TestValidMethod(t *testing.T) {
	assert.True(t, ValidMethod(PaymentMethodCard))
	assert.True(t, ValidMethod(PaymentMethodPromptPay))
	assert.True(t, ValidMethod(PaymentMethodBankTransfer))
	assert.False(t, ValidMethod("ALIPAY"))
}
