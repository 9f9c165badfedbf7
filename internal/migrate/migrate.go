package migrate

import (
	"context"

	"fadu-store/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Coupon{},
		&models.ProductReview{},
		&models.ProductQuestion{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_coupons_updated ON coupons;
CREATE TRIGGER trg_coupons_updated
BEFORE UPDATE ON coupons
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггер updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Статусы (храним TEXT)
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending_payment','paid','preparing','ready_for_pickup','completed','cancelled'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказа", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_payment_method_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_payment_method_allowed
  CHECK (payment_method IN ('mercadopago','transfer','test'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для способа оплаты", zap.Error(err))
			return err
		}

		// Суммы неотрицательные, количество > 0
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_non_negative
  CHECK (total_cents >= 0 AND discount_cents >= 0);

ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);

ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_prices_positive;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_prices_positive
  CHECK (unit_price_cents > 0 AND line_total_cents > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для сумм", zap.Error(err))
			return err
		}

		// Рейтинг 1..5 и журнал статусов
		if err := db.Exec(`
ALTER TABLE product_reviews
  DROP CONSTRAINT IF EXISTS chk_reviews_rating_range;
ALTER TABLE product_reviews
  ADD CONSTRAINT chk_reviews_rating_range
  CHECK (rating BETWEEN 1 AND 5);

ALTER TABLE order_status_history
  DROP CONSTRAINT IF EXISTS chk_history_status_allowed;
ALTER TABLE order_status_history
  ADD CONSTRAINT chk_history_status_allowed
  CHECK (status IN ('pending_payment','paid','preparing','ready_for_pickup','completed','cancelled'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для отзывов и истории", zap.Error(err))
			return err
		}

		// Купон: used_count не превышает лимит
		if err := db.Exec(`
ALTER TABLE coupons
  DROP CONSTRAINT IF EXISTS chk_coupons_used_within_limit;
ALTER TABLE coupons
  ADD CONSTRAINT chk_coupons_used_within_limit
  CHECK (used_count >= 0 AND (usage_limit IS NULL OR used_count <= usage_limit));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для купонов", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_pickup_code
ON orders (pickup_code) WHERE pickup_code IS NOT NULL;

CREATE UNIQUE INDEX IF NOT EXISTS ux_reviews_product_user
ON product_reviews (product_id, user_id);

CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);

CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);

CREATE INDEX IF NOT EXISTS ix_history_order_created
ON order_status_history (order_id, created_at);

CREATE INDEX IF NOT EXISTS ix_questions_unanswered
ON product_questions (product_id) WHERE answer IS NULL;
`).Error; err != nil {
			log.Error("Не удалось создать индексы", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
