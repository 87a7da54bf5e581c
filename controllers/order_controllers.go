package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type createOrderRequest struct {
	CanteenID           uint                `json:"canteen_id" binding:"required"`
	Items               []services.CartLine `json:"items"`
	PaymentMethod       string              `json:"payment_method"`
	SpecialInstructions *string             `json:"special_instructions"`
}

// CreateOrder -> place an order for the token holder (status 'pending')
func (oc *OrderController) CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), services.PlaceOrderInput{
		UserID:              user.ID,
		CanteenID:           body.CanteenID,
		Lines:               body.Items,
		PaymentMethod:       body.PaymentMethod,
		SpecialInstructions: body.SpecialInstructions,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

func (oc *OrderController) GetMyOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	orders, err := oc.Orders.ListUserOrders(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order with its items
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetCanteenOrders is the admin dashboard feed, filtered by ?status=.
func (oc *OrderController) GetCanteenOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	canteenID, ok := idParam(c, "id")
	if !ok {
		return
	}

	page, limit := pageParams(c)
	orders, err := oc.Orders.ListCanteenOrders(c.Request.Context(), user, canteenID, c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canteen orders", orders)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(c.Request.Context(), user, id, models.OrderStatus(body.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := oc.Orders.Cancel(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
