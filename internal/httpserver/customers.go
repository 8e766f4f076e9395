package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	custrepo "orderdesk/internal/repository/customer"
	custsvc "orderdesk/internal/service/customer"
)

func listCustomersHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := custrepo.ListFilter{
			Rank:   c.Query("rank"),
			Search: c.Query("search"),
		}
		customers, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func createCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in custsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		customer, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func getCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func updateCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in custsvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		customer, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func deleteCustomerHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}
