package rppayment

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/common/entity"
)

// PaymentRepositoryImpl 支付侧仓储实现（MySQL）
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓储实例
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// CreateSession 持久化托管会话映射
func (r *PaymentRepositoryImpl) CreateSession(ctx context.Context, session *etpayment.GatewaySession) error {
	now := time.Now()
	po := &entity.GatewaySession{
		SessionID: session.SessionID,
		OrderID:   session.OrderID,
		Status:    string(session.Status),
		Amount:    session.Amount,
		Snapshot:  datatypes.JSON(session.Snapshot),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetSessionByID 根据会话标识查询映射
func (r *PaymentRepositoryImpl) GetSessionByID(ctx context.Context, sessionID string) (*etpayment.GatewaySession, error) {
	var po entity.GatewaySession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &etpayment.GatewaySession{
		SessionID: po.SessionID,
		OrderID:   po.OrderID,
		Status:    etpayment.GatewayStatus(po.Status),
		Amount:    po.Amount,
		Snapshot:  []byte(po.Snapshot),
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}, nil
}

// UpsertPendingPayment 兜底记录按 charge_id 幂等写入
func (r *PaymentRepositoryImpl) UpsertPendingPayment(ctx context.Context, pending *etpayment.PendingPayment) error {
	now := time.Now()
	po := &entity.PendingPayment{
		ChargeID:   pending.ChargeID,
		Amount:     pending.Amount,
		Method:     string(pending.Method),
		Status:     string(pending.Status),
		Processed:  pending.Processed,
		RawPayload: datatypes.JSON(pending.RawPayload),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if pending.OrderNumber != "" {
		num := pending.OrderNumber
		po.OrderNumber = &num
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "charge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_number", "amount", "status", "raw_payload", "updated_at",
		}),
	}).Create(po).Error
}

// GetPendingPaymentByChargeID 根据交易标识查询兜底记录
func (r *PaymentRepositoryImpl) GetPendingPaymentByChargeID(ctx context.Context, chargeID string) (*etpayment.PendingPayment, error) {
	var po entity.PendingPayment
	err := r.db.WithContext(ctx).Where("charge_id = ?", chargeID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pending := &etpayment.PendingPayment{
		ChargeID:   po.ChargeID,
		Amount:     po.Amount,
		Method:     etorder.PaymentMethod(po.Method),
		Status:     etorder.PaymentStatus(po.Status),
		Processed:  po.Processed,
		RawPayload: []byte(po.RawPayload),
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
	if po.OrderNumber != nil {
		pending.OrderNumber = *po.OrderNumber
	}
	return pending, nil
}

// MarkPendingProcessed 兜底记录终态化
func (r *PaymentRepositoryImpl) MarkPendingProcessed(ctx context.Context, chargeID string) error {
	return r.db.WithContext(ctx).Model(&entity.PendingPayment{}).
		Where("charge_id = ?", chargeID).
		Updates(map[string]interface{}{
			"processed":  true,
			"updated_at": time.Now(),
		}).Error
}

// CreateConfirmation 保存人工转账凭证
func (r *PaymentRepositoryImpl) CreateConfirmation(ctx context.Context, confirmation *etpayment.PaymentConfirmation) error {
	po := &entity.PaymentConfirmation{
		ID:          confirmation.ID,
		OrderNumber: confirmation.OrderNumber,
		Amount:      confirmation.Amount,
		BankName:    confirmation.BankName,
		Note:        confirmation.Note,
		SlipImage:   confirmation.SlipImage,
		Status:      string(confirmation.Status),
		CreatedAt:   confirmation.CreatedAt,
		UpdatedAt:   confirmation.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(po).Error
}
