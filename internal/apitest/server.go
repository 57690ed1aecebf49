// Package apitest provides an in-memory gin stand-in for the remote
// ordering service so client flows can be exercised end to end without a
// deployment.
package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/krono-coffee/ordering-client/pkg/models"
)

const signingSecret = "apitest-secret"

type account struct {
	Password string
	Role     string
}

// Server holds the fake service state. Handlers mimic the real service's
// conventions: bare JSON payloads on success, {"detail": ...} on error.
type Server struct {
	Engine *gin.Engine

	accounts map[string]account
	menu     []models.MenuItem
	orders   []models.Order
	nextItem int64
	nextID   int64
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Engine: gin.New(),
		accounts: map[string]account{
			"maria@example.com": {Password: "cliente123", Role: "client"},
			"sam@krono.coffee":  {Password: "barista123", Role: "employee"},
			"ada@krono.coffee":  {Password: "admin123", Role: "admin"},
		},
		menu: []models.MenuItem{
			{ID: 1, Name: "Espresso", Price: decimal.RequireFromString("3.50"), Category: "Coffee", IsAvailable: true},
			{ID: 2, Name: "Latte", Price: decimal.RequireFromString("4.50"), Category: "Coffee", IsAvailable: true},
			{ID: 3, Name: "Croissant", Price: decimal.RequireFromString("3.25"), Category: "Pastries", IsAvailable: true},
		},
		nextItem: 4,
		nextID:   1,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.Engine.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/token", s.login)
			auth.POST("/register", s.register)
		}

		api.GET("/menu/menu", s.listMenu)
		api.GET("/menu/menu/:id", s.getMenuItem)

		admin := api.Group("/admin", s.requireRole("admin"))
		{
			admin.POST("/menu", s.createMenuItem)
			admin.PUT("/menu/:id/availability", s.setAvailability)
		}

		orders := api.Group("/orders", s.requireAuth)
		{
			orders.POST("/", s.createOrder)
			orders.GET("/all", s.listAllOrders)
			orders.GET("/me", s.listMyOrders)
			orders.PUT("/:id/status", s.updateOrderStatus)
		}

		api.GET("/offers/", s.requireAuth, s.listOffers)
	}
}

func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	acct, ok := s.accounts[username]
	if !ok || acct.Password != c.PostForm("password") {
		detail(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": acct.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		detail(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: signed, TokenType: "bearer"})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid registration payload")
		return
	}
	if _, exists := s.accounts[req.Email]; exists {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	s.accounts[req.Email] = account{Password: req.Password, Role: "client"}
	c.JSON(http.StatusCreated, gin.H{"username": req.Username, "email": req.Email})
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		detail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(*jwt.Token) (any, error) {
		return []byte(signingSecret), nil
	})
	if err != nil {
		detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	c.Set("sub", sub)
	c.Set("role", role)
}

func (s *Server) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.requireAuth(c)
		if c.IsAborted() {
			return
		}
		current := c.GetString("role")
		for _, role := range roles {
			if current == role {
				return
			}
		}
		detail(c, http.StatusForbidden, "Not enough permissions")
	}
}

func (s *Server) listMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.menu)
}

func (s *Server) getMenuItem(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	for _, item := range s.menu {
		if item.ID == id {
			c.JSON(http.StatusOK, item)
			return
		}
	}
	detail(c, http.StatusNotFound, "Menu item not found")
}

func (s *Server) createMenuItem(c *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid menu item payload")
		return
	}
	item := models.MenuItem{
		ID:          s.nextItem,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	}
	s.nextItem++
	s.menu = append(s.menu, item)
	c.JSON(http.StatusCreated, item)
}

func (s *Server) setAvailability(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	available := c.Query("is_available") == "true"
	for i := range s.menu {
		if s.menu[i].ID == id {
			s.menu[i].IsAvailable = available
			c.JSON(http.StatusOK, s.menu[i])
			return
		}
	}
	detail(c, http.StatusNotFound, "Menu item not found")
}

func (s *Server) createOrder(c *gin.Context) {
	if c.GetString("role") != "client" {
		detail(c, http.StatusForbidden, "Only clients can place orders")
		return
	}
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		detail(c, http.StatusUnprocessableEntity, "invalid order payload")
		return
	}

	// The service recomputes the total from the items; the client's
	// submitted total is advisory only.
	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := models.Order{
		ID:        s.nextID,
		Customer:  c.GetString("sub"),
		Items:     req.Items,
		Total:     total,
		Status:    models.StatusPending,
		Timestamp: time.Now().UTC(),
	}
	s.nextID++
	s.orders = append(s.orders, order)

	c.JSON(http.StatusCreated, models.OrderReceipt{
		OrderID:   order.ID,
		Items:     order.Items,
		Total:     order.Total,
		Timestamp: order.Timestamp,
	})
}

func (s *Server) listAllOrders(c *gin.Context) {
	role := c.GetString("role")
	if role != "admin" && role != "employee" {
		detail(c, http.StatusForbidden, "Not enough permissions")
		return
	}
	c.JSON(http.StatusOK, s.orders)
}

func (s *Server) listMyOrders(c *gin.Context) {
	sub := c.GetString("sub")
	mine := []models.Order{}
	for _, order := range s.orders {
		if order.Customer == sub {
			mine = append(mine, order)
		}
	}
	c.JSON(http.StatusOK, mine)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	role := c.GetString("role")
	if role != "admin" && role != "employee" {
		detail(c, http.StatusForbidden, "Not enough permissions")
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		detail(c, http.StatusUnprocessableEntity, "invalid status")
		return
	}
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = req.Status
			c.JSON(http.StatusOK, s.orders[i])
			return
		}
	}
	detail(c, http.StatusNotFound, "Order not found")
}

func (s *Server) listOffers(c *gin.Context) {
	now := time.Now().UTC()
	c.JSON(http.StatusOK, []models.Offer{
		{
			ID:                 1,
			Name:               "Morning Espresso",
			Description:        "Espresso discount before noon",
			DiscountPercentage: 10,
			StartDate:          now.Add(-24 * time.Hour),
			EndDate:            now.Add(24 * time.Hour),
			MenuItemID:         1,
		},
	})
}
