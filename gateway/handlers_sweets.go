package gateway

import (
	"net/http"
	"strconv"

	"github.com/example/sweetshop/pkg/models"
	"github.com/gin-gonic/gin"
)

type addSweetRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description string   `json:"description"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (g *Gateway) addSweet(c *gin.Context) {
	var req addSweetRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Price == nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, category, price, and quantity are required"})
		return
	}

	sweet, err := g.inventory.Add(c.Request.Context(), req.Name, req.Category, *req.Price, *req.Quantity, req.Description)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sweet added successfully",
		"sweet":   sweet,
	})
}

func (g *Gateway) listSweets(c *gin.Context) {
	sweets, err := g.inventory.List(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sweets": sweets})
}

func (g *Gateway) searchSweets(c *gin.Context) {
	filter := models.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "minPrice must be a number"})
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be a number"})
			return
		}
		filter.MaxPrice = &v
	}

	sweets, err := g.inventory.Search(c.Request.Context(), filter)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sweets": sweets})
}

func (g *Gateway) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": g.inventory.Categories()})
}

func (g *Gateway) updateSweet(c *gin.Context) {
	var update models.SweetUpdate
	if err := c.BindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	sweet, err := g.inventory.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sweet updated successfully",
		"sweet":   sweet,
	})
}

func (g *Gateway) deleteSweet(c *gin.Context) {
	if err := g.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"})
}

func (g *Gateway) purchaseSweet(c *gin.Context) {
	// Defaults to one unit when the body is empty or omits quantity.
	quantity := 1
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Quantity != nil {
		quantity = *req.Quantity
	}

	user := currentUser(c)
	result, err := g.inventory.Purchase(c.Request.Context(), c.Param("id"), user.ID.Hex(), quantity)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Purchase successful",
		"sweet":             result.Sweet,
		"purchasedQuantity": result.PurchasedQuantity,
		"order":             result.Order,
	})
}

func (g *Gateway) restockSweet(c *gin.Context) {
	var req quantityRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sweet, err := g.inventory.Restock(c.Request.Context(), c.Param("id"), quantity)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Restock successful",
		"sweet":             sweet,
		"restockedQuantity": quantity,
	})
}
