package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// レガシーAPIゲートウェイのハンドラ。認証なし・全エラーはerrorキー一つ
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.root)
	e.GET("/api/health", h.health)

	e.GET("/api/inventory", h.listItems)
	e.GET("/api/inventory/:id", h.getItem)
	e.POST("/api/inventory", h.createItem)
	e.PUT("/api/inventory/:id", h.updateItem)
	e.DELETE("/api/inventory/:id", h.deleteItem)

	e.GET("/api/suppliers", h.listSuppliers)
	e.GET("/api/suppliers/:id", h.getSupplier)
	e.POST("/api/suppliers", h.createSupplier)
	e.PUT("/api/suppliers/:id", h.updateSupplier)
	e.DELETE("/api/suppliers/:id", h.deleteSupplier)

	e.GET("/api/orders", h.listOrders)
	e.GET("/api/orders/:id", h.getOrder)
	e.POST("/api/orders", h.createOrder)
	e.PUT("/api/orders/:id", h.updateOrder)
	e.DELETE("/api/orders/:id", h.deleteOrder)

	e.GET("/api/dashboard/summary", h.summary)
}

func (h *Handler) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to C TECH IMS API"})
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "C TECH IMS API is running",
	})
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) listItems(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]Item{"items": h.store.ListItems()})
}

func (h *Handler) getItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}

	item, err := h.store.GetItem(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}
	return c.JSON(http.StatusOK, item)
}

type itemCreateRequest struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

func (h *Handler) createItem(c echo.Context) error {
	var req itemCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	if req.Name == "" || req.SKU == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Name, SKU, and category are required"})
	}

	item, err := h.store.CreateItem(CreateItemInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if errors.Is(err, ErrDuplicateSKU) {
		//レガシー仕様は409ではなく400
		return c.JSON(http.StatusBadRequest, errorBody{Error: "SKU already exists"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, item)
}

type itemUpdateRequest struct {
	Name     string   `json:"name"`
	SKU      string   `json:"sku"`
	Category string   `json:"category"`
	Quantity *int64   `json:"quantity"`
	Price    *float64 `json:"price"`
}

func (h *Handler) updateItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}

	var req itemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	item, err := h.store.UpdateItem(id, UpdateItemInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}

	item, err := h.store.DeleteItem(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Item not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Item deleted successfully",
		"item":    item,
	})
}

func (h *Handler) listSuppliers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]Supplier{"suppliers": h.store.ListSuppliers()})
}

func (h *Handler) getSupplier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}

	sp, err := h.store.GetSupplier(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}
	return c.JSON(http.StatusOK, sp)
}

type supplierCreateRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status"`
}

func (h *Handler) createSupplier(c echo.Context) error {
	var req supplierCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Name and email are required"})
	}

	sp, err := h.store.CreateSupplier(CreateSupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        req.Status,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Email already exists"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, sp)
}

type supplierUpdateRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Status        string  `json:"status"`
}

func (h *Handler) updateSupplier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}

	var req supplierUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	sp, err := h.store.UpdateSupplier(id, UpdateSupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        req.Status,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *Handler) deleteSupplier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}

	sp, err := h.store.DeleteSupplier(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Supplier not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Supplier deleted successfully",
		"supplier": sp,
	})
}

func (h *Handler) listOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]Order{"orders": h.store.ListOrders()})
}

func (h *Handler) getOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}

	o, err := h.store.GetOrder(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}
	return c.JSON(http.StatusOK, o)
}

type orderCreateRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderLine `json:"items"`
}

func (h *Handler) createOrder(c echo.Context) error {
	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	if req.CustomerName == "" || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Customer name and at least one item are required"})
	}

	o, err := h.store.PlaceOrder(PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Lines:         req.Items,
	})
	if err != nil {
		var insuff *InsufficientStockError
		var unknown *UnknownLineItemError
		if errors.As(err, &insuff) || errors.As(err, &unknown) {
			return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}

	return c.JSON(http.StatusCreated, o)
}

type orderUpdateRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	Status        string  `json:"status"`
}

func (h *Handler) updateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}

	var req orderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid body"})
	}

	o, err := h.store.UpdateOrder(id, UpdateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Status:        req.Status,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) deleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}

	o, err := h.store.DeleteOrder(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order deleted successfully",
		"order":   o,
	})
}

func (h *Handler) summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Summarize())
}
