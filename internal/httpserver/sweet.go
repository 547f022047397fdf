package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/internal/service"
	"github.com/sweetshop/api/internal/transport"
	"github.com/sweetshop/api/pkg/logging"
)

type SweetHTTP struct {
	Catalog   *service.CatalogService
	Inventory *service.InventoryService
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func (h *SweetHTTP) ListSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.list")

	items, err := h.Catalog.ListSweets(ctx)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.OKCount(len(items), items))
}

func (h *SweetHTTP) SearchSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.search")

	req := transport.SearchRequest{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	var errs []transport.FieldError
	if v := c.QueryParam("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, transport.FieldError{Field: "minPrice", Message: "Minimum price must be a non-negative number"})
		} else {
			req.MinPrice = &f
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, transport.FieldError{Field: "maxPrice", Message: "Maximum price must be a non-negative number"})
		} else {
			req.MaxPrice = &f
		}
	}
	errs = append(errs, req.Validate()...)
	if len(errs) > 0 {
		l.Warn("search_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.FailValidation(errs))
	}

	items, err := h.Catalog.SearchSweets(ctx, repo.SearchCriteria{
		Name:     req.Name,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.OKCount(len(items), items))
}

func (h *SweetHTTP) SuggestSweets(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.suggest")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, transport.Fail("Query is required"))
	}
	size := 10
	if v := c.QueryParam("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			size = n
		}
	}

	items, err := h.Catalog.Suggest(ctx, q, size)
	if err != nil {
		l.Error("suggest_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}
	if len(items) > size {
		items = items[:size]
	}

	return c.JSON(http.StatusOK, transport.OKCount(len(items), items))
}

func (h *SweetHTTP) GetSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_failed", "status", 400, "reason", "malformed id")
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid ID format"))
	}

	sweet, err := h.Catalog.GetSweet(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_failed", "status", 404, "sweetID", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Sweet not found"))
		}
		l.Error("get_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.OK(sweet))
}

func (h *SweetHTTP) CreateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.create")

	var req transport.SweetRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if errs := req.Validate(); len(errs) > 0 {
		l.Warn("create_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.FailValidation(errs))
	}

	sweet := req.ToModel()
	if err := h.Catalog.CreateSweet(ctx, &sweet); err != nil {
		if errors.Is(err, repo.ErrNameTaken) {
			l.Warn("create_failed", "status", 400, "reason", "duplicate name")
			return c.JSON(http.StatusBadRequest, transport.Fail("Sweet with this name already exists"))
		}
		l.Error("create_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("create_success", "sweetID", sweet.ID)
	return c.JSON(http.StatusCreated, transport.OK(sweet))
}

func (h *SweetHTTP) UpdateSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_failed", "status", 400, "reason", "malformed id")
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid ID format"))
	}

	var req transport.SweetRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if errs := req.Validate(); len(errs) > 0 {
		l.Warn("update_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.FailValidation(errs))
	}

	sweet, err := h.Catalog.UpdateSweet(ctx, id, req.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_failed", "status", 404, "sweetID", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Sweet not found"))
		case errors.Is(err, repo.ErrNameTaken):
			l.Warn("update_failed", "status", 400, "reason", "duplicate name")
			return c.JSON(http.StatusBadRequest, transport.Fail("Sweet with this name already exists"))
		default:
			l.Error("update_failed", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
		}
	}

	l.Info("update_success", "sweetID", id)
	return c.JSON(http.StatusOK, transport.OK(sweet))
}

func (h *SweetHTTP) DeleteSweet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_failed", "status", 400, "reason", "malformed id")
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid ID format"))
	}

	if err := h.Catalog.DeleteSweet(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_failed", "status", 404, "sweetID", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Sweet not found"))
		}
		l.Error("delete_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("delete_success", "sweetID", id)
	return c.JSON(http.StatusOK, transport.OKMessage("Sweet deleted successfully", nil))
}

func (h *SweetHTTP) PurchaseSweet(c echo.Context) error {
	return h.adjust(c, "purchase")
}

func (h *SweetHTTP) RestockSweet(c echo.Context) error {
	return h.adjust(c, "restock")
}

func (h *SweetHTTP) adjust(c echo.Context, op string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sweet."+op)

	id, err := parseID(c)
	if err != nil {
		l.Warn(op+"_failed", "status", 400, "reason", "malformed id")
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid ID format"))
	}

	var req transport.QuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn(op+"_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Please provide a valid quantity"))
	}
	qty := 0
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	var sweet any
	var message string
	if op == "purchase" {
		sweet, err = h.Inventory.Purchase(ctx, id, qty)
		message = "Purchase successful"
	} else {
		sweet, err = h.Inventory.Restock(ctx, id, qty)
		message = "Restock successful"
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			l.Warn(op+"_failed", "status", 400, "reason", "invalid quantity", "quantity", qty)
			return c.JSON(http.StatusBadRequest, transport.Fail("Please provide a valid quantity"))
		case errors.Is(err, repo.ErrInsufficientStock):
			l.Warn(op+"_failed", "status", 400, "reason", "insufficient stock", "sweetID", id, "quantity", qty)
			return c.JSON(http.StatusBadRequest, transport.Fail("Insufficient stock"))
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn(op+"_failed", "status", 404, "sweetID", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Sweet not found"))
		default:
			l.Error(op+"_failed", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
		}
	}

	l.Info(op+"_success", "sweetID", id, "quantity", qty)
	return c.JSON(http.StatusOK, transport.OKMessage(message, sweet))
}
