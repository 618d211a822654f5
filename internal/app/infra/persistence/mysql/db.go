package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ballnaha/treetelu-sub002/internal/common/entity"
)

// NewDB 创建 gorm 连接
// TranslateError 开启后唯一索引冲突以 gorm.ErrDuplicatedKey 返回，
// 上层据此把并发写冲突降级为"已存在，查回现有记录"
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate 建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Order{},
		&entity.OrderCustomer{},
		&entity.OrderShipping{},
		&entity.OrderItem{},
		&entity.DiscountCode{},
		&entity.PaymentInfo{},
		&entity.GatewaySession{},
		&entity.PendingPayment{},
		&entity.PaymentConfirmation{},
	)
}
