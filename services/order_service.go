package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/notify"
	"github.com/campus-eats/canteen-app/utils"
)

const (
	maxOrderNumberAttempts = 3
	defaultPageSize        = 10
	maxPageSize            = 100
)

// Publisher delivers fire-and-forget events to topic subscribers.
type Publisher interface {
	Publish(topic, event string, data interface{}) error
}

type CartLine struct {
	MenuItemID      uint    `json:"menu_item_id"`
	Quantity        int     `json:"quantity"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

type PlaceOrderInput struct {
	UserID              uint
	CanteenID           uint
	Lines               []CartLine
	PaymentMethod       string
	SpecialInstructions *string
}

// NewOrderEvent is published to the canteen topic after an order commits.
type NewOrderEvent struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	TotalAmount string             `json:"total_amount"`
	CanteenID   uint               `json:"canteen_id"`
	Status      models.OrderStatus `json:"status"`
	ItemCount   int                `json:"item_count"`
	CreatedAt   time.Time          `json:"created_at"`
}

// StatusEvent is published to the owner and canteen topics after a transition.
type StatusEvent struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	CanteenID   uint               `json:"canteen_id"`
	From        models.OrderStatus `json:"from"`
	Status      models.OrderStatus `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type OrderService struct {
	DB        *gorm.DB
	Publisher Publisher
	ETABuffer time.Duration
	// TxOptions is passed to the placement transaction; nil uses the driver default.
	TxOptions      *sql.TxOptions
	Now            func() time.Time
	NewOrderNumber func(time.Time) string
}

func NewOrderService(db *gorm.DB, publisher Publisher, etaBuffer time.Duration) *OrderService {
	return &OrderService{
		DB:             db,
		Publisher:      publisher,
		ETABuffer:      etaBuffer,
		Now:            time.Now,
		NewOrderNumber: GenerateOrderNumber,
	}
}

// PlaceOrder validates the cart against live menu state and persists the
// order with its items in one transaction. The new_order event is published
// only after commit and its failure never affects the result.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := validateCart(&in); err != nil {
		return nil, err
	}

	var (
		order *models.Order
		err   error
	)
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order, err = s.placeOrderTx(ctx, in)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		utils.InfoLogger.WithField("attempt", attempt).Warn("order number collision, regenerating")
	}
	if err != nil {
		return nil, persistence(err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"canteen_id":   order.CanteenID,
		"user_id":      order.UserID,
		"total":        utils.FormatCurrencyINR(order.TotalAmount),
	}).Info("order placed")

	s.publish(notify.CanteenTopic(order.CanteenID), notify.EventNewOrder, NewOrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount.StringFixed(2),
		CanteenID:   order.CanteenID,
		Status:      order.Status,
		ItemCount:   len(order.OrderItems),
		CreatedAt:   order.CreatedAt,
	})

	return order, nil
}

func validateCart(in *PlaceOrderInput) error {
	if len(in.Lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			return InvalidQuantity(line.MenuItemID, line.Quantity)
		}
	}

	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	switch in.PaymentMethod {
	case "":
		in.PaymentMethod = models.PaymentCash
	case models.PaymentCash, models.PaymentOnline:
	default:
		return ErrInvalidPaymentMethod
	}

	if in.SpecialInstructions != nil && strings.TrimSpace(*in.SpecialInstructions) == "" {
		in.SpecialInstructions = nil
	}
	return nil
}

func (s *OrderService) placeOrderTx(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	var order *models.Order

	var txOpts []*sql.TxOptions
	if s.TxOptions != nil {
		txOpts = append(txOpts, s.TxOptions)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var canteen models.Canteen
		if err := tx.First(&canteen, in.CanteenID).Error; err != nil {
			return notFoundOr(err, ErrCanteenNotFound)
		}
		if !canteen.IsActive {
			return ErrCanteenNotFound
		}

		now := s.Now()
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Lines))

		for _, line := range in.Lines {
			// read inside the transaction so a concurrent availability flip is observed
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, line.MenuItemID).Error; err != nil {
				return notFoundOr(err, MenuItemNotFound(line.MenuItemID))
			}
			if !menuItem.IsAvailable || menuItem.CanteenID != in.CanteenID {
				return ItemUnavailable(menuItem.ID)
			}

			lineTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				MenuItemID:      menuItem.ID,
				ItemName:        menuItem.Name,
				Quantity:        line.Quantity,
				UnitPrice:       menuItem.Price,
				TotalPrice:      lineTotal,
				SpecialRequests: line.SpecialRequests,
				CreatedAt:       now,
			})
		}

		order = &models.Order{
			OrderNumber:             s.NewOrderNumber(now),
			UserID:                  in.UserID,
			CanteenID:               in.CanteenID,
			TotalAmount:             total,
			Status:                  models.StatusPending,
			PaymentMethod:           in.PaymentMethod,
			SpecialInstructions:     in.SpecialInstructions,
			EstimatedCompletionTime: now.Add(s.ETABuffer),
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		order.OrderItems = items
		return nil
	}, txOpts...)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order one step along its lifecycle, or to cancelled.
// The row update is guarded on the status that was read, so a concurrent
// transition makes this one fail with InvalidTransition.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.User, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	db := s.DB.WithContext(ctx)

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, notFoundOr(err, ErrOrderNotFound)
	}

	var canteen models.Canteen
	if err := db.First(&canteen, order.CanteenID).Error; err != nil {
		return nil, notFoundOr(err, ErrCanteenNotFound)
	}
	if !canteen.ManagedBy(actor) {
		return nil, ErrForbidden
	}

	prev := order.Status
	if !prev.CanTransition(next) {
		return nil, InvalidTransition(prev, next)
	}

	now := s.Now()
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, string(prev)).
		Updates(map[string]interface{}{"status": string(next), "updated_at": now})
	if res.Error != nil {
		return nil, persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, InvalidTransition(prev, next)
	}

	order.Status = next
	order.UpdatedAt = now

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     prev,
		"to":       next,
		"actor":    actor.ID,
	}).Info("order status updated")

	event := StatusEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CanteenID:   order.CanteenID,
		From:        prev,
		Status:      next,
		UpdatedAt:   now,
	}
	s.publish(notify.UserTopic(order.UserID), notify.EventOrderStatusUpdated, event)
	s.publish(notify.CanteenTopic(order.CanteenID), notify.EventOrderStatusUpdated, event)

	return &order, nil
}

func (s *OrderService) Cancel(ctx context.Context, actor models.User, orderID uint) (*models.Order, error) {
	return s.UpdateStatus(ctx, actor, orderID, models.StatusCancelled)
}

// GetOrder loads an order with its items. Students may read their own
// orders only; canteen admins the orders of canteens they manage.
func (s *OrderService) GetOrder(ctx context.Context, actor models.User, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Canteen").
		First(&order, orderID).Error
	if err != nil {
		return nil, notFoundOr(err, ErrOrderNotFound)
	}

	if order.UserID == actor.ID {
		return &order, nil
	}
	if order.Canteen != nil && order.Canteen.ManagedBy(actor) {
		return &order, nil
	}
	return nil, ErrForbidden
}

// ListUserOrders returns a page of the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint, page, limit int) ([]models.Order, error) {
	page, limit = normalizePage(page, limit)

	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("OrderItems").
		Preload("Canteen").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, persistence(err)
	}
	return orders, nil
}

// ListCanteenOrders is the admin feed for one canteen, optionally filtered by status.
func (s *OrderService) ListCanteenOrders(ctx context.Context, actor models.User, canteenID uint, status string, page, limit int) ([]models.Order, error) {
	db := s.DB.WithContext(ctx)

	var canteen models.Canteen
	if err := db.First(&canteen, canteenID).Error; err != nil {
		return nil, notFoundOr(err, ErrCanteenNotFound)
	}
	if !canteen.ManagedBy(actor) {
		return nil, ErrForbidden
	}

	query := db.Preload("OrderItems").Where("canteen_id = ?", canteenID)
	if status != "" {
		if !models.OrderStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	page, limit = normalizePage(page, limit)
	var orders []models.Order
	if err := query.Order("created_at desc, id desc").Limit(limit).Offset((page - 1) * limit).Find(&orders).Error; err != nil {
		return nil, persistence(err)
	}
	return orders, nil
}

func (s *OrderService) publish(topic, event string, data interface{}) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(topic, event, data); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"topic": topic,
			"event": event,
		}).WithError(err).Error("notification delivery failed")
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
