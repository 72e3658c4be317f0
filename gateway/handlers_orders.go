package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (g *Gateway) listOrders(c *gin.Context) {
	orders, err := g.orders.ListAll(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (g *Gateway) myOrders(c *gin.Context) {
	user := currentUser(c)
	orders, err := g.orders.ListByUser(c.Request.Context(), user.ID.Hex())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, err := g.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	order, err := g.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

func (g *Gateway) orderStats(c *gin.Context) {
	result, err := g.orders.Stats(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
