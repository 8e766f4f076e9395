package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderrepo "orderdesk/internal/repository/order"
	ordersvc "orderdesk/internal/service/order"
)

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := orderrepo.ListFilter{
			Status:     c.Query("status"),
			CustomerID: c.Query("customerId"),
			StartDate:  c.Query("startDate"),
			EndDate:    c.Query("endDate"),
		}
		orders, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func createOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func updateOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func deleteOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}
