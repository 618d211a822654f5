package rporder

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etorder"
	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
	"github.com/ballnaha/treetelu-sub002/internal/common/entity"
)

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create 创建订单聚合，所有子行与折扣码用量在同一事务内写入
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		po := toOrderPO(order)
		if err := tx.Create(po).Error; err != nil {
			return err
		}

		if err := tx.Create(toCustomerPO(order)).Error; err != nil {
			return err
		}
		if err := tx.Create(toShippingPO(order)).Error; err != nil {
			return err
		}
		if err := tx.Create(toItemPOs(order)).Error; err != nil {
			return err
		}
		if order.Payment != nil {
			if err := tx.Create(toPaymentPO(order)).Error; err != nil {
				return err
			}
		}

		// 折扣码用量在同一事务内递增，带上限保护
		if order.DiscountCode != "" {
			res := tx.Model(&entity.DiscountCode{}).
				Where("code = ? AND active = ? AND (usage_limit = 0 OR used_count < usage_limit)",
					order.DiscountCode, true).
				UpdateColumn("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errorx.ErrDiscountExhausted
			}
		}

		return nil
	})
}

// GetByID 根据ID查询订单
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.loadAggregate(ctx, &po)
}

// GetByOrderNumber 根据订单号查询
func (r *OrderRepositoryImpl) GetByOrderNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.loadAggregate(ctx, &po)
}

// GetByIdempotencyKey 根据幂等键查询（用于提交重试去重）
func (r *OrderRepositoryImpl) GetByIdempotencyKey(ctx context.Context, key string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.loadAggregate(ctx, &po)
}

// GetByTransactionID 根据网关交易标识查询
func (r *OrderRepositoryImpl) GetByTransactionID(ctx context.Context, transactionID string) (*etorder.Order, error) {
	var payment entity.PaymentInfo
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetByID(ctx, payment.OrderID)
}

// MarkPaid 支付确认状态机落库
// 行锁保护并发对账方，订单状态 + 支付信息 + 会话映射 + 通知标记单事务完成
func (r *OrderRepositoryImpl) MarkPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (*MarkPaidResult, error) {
	result := &MarkPaidResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po entity.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", orderID).
			First(&po).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.ErrOrderNotFound
			}
			return err
		}

		// 幂等：重复确认是空操作
		if po.PaymentStatus == entity.PaymentStatusConfirmed {
			result.AlreadyConfirmed = true
			return nil
		}
		if po.PaymentStatus == entity.PaymentStatusRejected {
			return etorder.ErrPaymentRejected
		}

		now := time.Now()
		updates := map[string]interface{}{
			"payment_status": entity.PaymentStatusConfirmed,
			"status":         entity.OrderStatusPaid,
			"updated_at":     now,
		}
		if po.NotifiedAt == nil {
			// 通知去重标记与状态流转同事务写入
			updates["notified_at"] = now
			result.NotifyNeeded = true
		}
		if err := tx.Model(&entity.Order{}).Where("id = ?", po.ID).Updates(updates).Error; err != nil {
			return err
		}

		payment := &entity.PaymentInfo{
			OrderID:       po.ID,
			Status:        entity.PaymentStatusConfirmed,
			TransactionID: &transactionID,
			PaymentDate:   &paidAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "transaction_id", "payment_date", "updated_at",
			}),
		}).Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&entity.GatewaySession{}).
			Where("order_id = ?", po.ID).
			Updates(map[string]interface{}{
				"status":     string(etpayment.GatewayStatusSuccessful),
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	order, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result.Order = order
	return result, nil
}

// GetDiscountByCode 查询折扣码
func (r *OrderRepositoryImpl) GetDiscountByCode(ctx context.Context, code string) (*etorder.DiscountCode, error) {
	var po entity.DiscountCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDiscountDomain(&po), nil
}

// loadAggregate 加载订单聚合的全部子行
func (r *OrderRepositoryImpl) loadAggregate(ctx context.Context, po *entity.Order) (*etorder.Order, error) {
	var customer entity.OrderCustomer
	if err := r.db.WithContext(ctx).Where("order_id = ?", po.ID).First(&customer).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var shipping entity.OrderShipping
	if err := r.db.WithContext(ctx).Where("order_id = ?", po.ID).First(&shipping).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var items []entity.OrderItem
	if err := r.db.WithContext(ctx).Where("order_id = ?", po.ID).Find(&items).Error; err != nil {
		return nil, err
	}

	var payment *entity.PaymentInfo
	var paymentPO entity.PaymentInfo
	err := r.db.WithContext(ctx).Where("order_id = ?", po.ID).First(&paymentPO).Error
	if err == nil {
		payment = &paymentPO
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return toOrderDomain(po, &customer, &shipping, items, payment), nil
}
