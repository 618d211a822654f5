package svconfirm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/logger"
)

type mockConfirmationStore struct {
	saved     []*etpayment.PaymentConfirmation
	createErr error
}

func (m *mockConfirmationStore) CreateConfirmation(ctx context.Context, c *etpayment.PaymentConfirmation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.saved = append(m.saved, c)
	return nil
}

type mockOrderFinder struct {
	orders map[string]*etorder.Order
}

func (m *mockOrderFinder) GetOrderByNumber(ctx context.Context, number string) (*etorder.Order, error) {
	return m.orders[number], nil
}

type mockSlipStore struct {
	saveErr error
	saved   []string
}

func (m *mockSlipStore) Save(ctx context.Context, orderNumber, filename string, r io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	path := "uploads/slips/" + orderNumber + "_" + filename
	m.saved = append(m.saved, path)
	return path, nil
}

func validSubmitInput() *SubmitInput {
	return &SubmitInput{
		OrderNumber:  "TT000000000000001",
		Amount:       decimal.NewFromInt(1300),
		BankName:     "กสิกรไทย",
		Note:         "โอนแล้วครับ",
		SlipFilename: "slip.jpg",
		SlipReader:   strings.NewReader("fake image bytes"),
	}
}

func TestSubmitKnownOrder(t *testing.T) {
	store := &mockConfirmationStore{}
	finder := &mockOrderFinder{orders: map[string]*etorder.Order{
		"TT000000000000001": {OrderNumber: "TT000000000000001", FinalAmount: decimal.NewFromInt(1300)},
	}}
	svc := NewConfirmationService(store, finder, &mockSlipStore{}, logger.NopLogger{})

	confirmation, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	assert.Equal(t, etpayment.ConfirmationStatusPending, confirmation.Status)
	assert.Equal(t, "TT000000000000001", confirmation.OrderNumber)
	assert.NotEmpty(t, confirmation.SlipImage)
	assert.Len(t, store.saved, 1)
}

func TestSubmitUnknownOrderAccepted(t *testing.T) {
	// 订单号是软引用：查无此单也照常受理，留给人工审核
	store := &mockConfirmationStore{}
	svc := NewConfirmationService(store, &mockOrderFinder{}, &mockSlipStore{}, logger.NopLogger{})

	confirmation, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	assert.Equal(t, etpayment.ConfirmationStatusPending, confirmation.Status)
	assert.Len(t, store.saved, 1)
}

func TestSubmitAmountMismatchAccepted(t *testing.T) {
	// 金额与订单不一致同样受理，核对属于人工审核环节
	store := &mockConfirmationStore{}
	finder := &mockOrderFinder{orders: map[string]*etorder.Order{
		"TT000000000000001": {OrderNumber: "TT000000000000001", FinalAmount: decimal.NewFromInt(9999)},
	}}
	svc := NewConfirmationService(store, finder, &mockSlipStore{}, logger.NopLogger{})

	_, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)
}

func TestSubmitSlipSaveFailure(t *testing.T) {
	store := &mockConfirmationStore{}
	slips := &mockSlipStore{saveErr: fmt.Errorf("disk full")}
	svc := NewConfirmationService(store, &mockOrderFinder{}, slips, logger.NopLogger{})

	_, err := svc.Submit(context.Background(), validSubmitInput())
	assert.Error(t, err)
	assert.Empty(t, store.saved, "confirmation must not persist without its slip")
}

func TestSubmitStoreFailure(t *testing.T) {
	store := &mockConfirmationStore{createErr: fmt.Errorf("db down")}
	svc := NewConfirmationService(store, &mockOrderFinder{}, &mockSlipStore{}, logger.NopLogger{})

	_, err := svc.Submit(context.Background(), validSubmitInput())
	assert.Error(t, err)
}
