package repository

import "gorm.io/gorm"

type Repository struct {
	DB        *gorm.DB
	Orders    OrderRepo
	Items     OrderItemRepo
	History   OrderStatusHistoryRepo
	Coupons   CouponRepo
	Reviews   ReviewRepo
	Questions QuestionRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:        db,
		Orders:    NewOrderRepo(db),
		Items:     NewOrderItemRepo(db),
		History:   NewHistoryRepo(db),
		Coupons:   NewCouponRepo(db),
		Reviews:   NewReviewRepo(db),
		Questions: NewQuestionRepo(db),
	}
}
