package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/service"
	"github.com/maxviazov/warehouse-data-service/pkg/response"
)

// TableDataHandler serves paginated reads of arbitrary warehouse tables.
type TableDataHandler struct {
	svc     service.TableDataService
	timeout time.Duration
}

// NewTableDataHandler wires the data endpoint. A zero timeout disables the
// per-request deadline.
func NewTableDataHandler(svc service.TableDataService, timeout time.Duration) *TableDataHandler {
	return &TableDataHandler{svc: svc, timeout: timeout}
}

func (h *TableDataHandler) Register(r *gin.RouterGroup) {
	r.GET("/data", h.getTableData)
}

func (h *TableDataHandler) getTableData(c *gin.Context) {
	var ferrs []service.FieldError
	page := intQuery(c, "page", service.DefaultPage, &ferrs)
	pageSize := intQuery(c, "page_size", service.DefaultPageSize, &ferrs)
	if err := service.NewInvalidInput(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	req := service.TableDataRequest{
		Schema:   c.Query("schema_name"),
		Table:    c.Query("table_name"),
		Page:     page,
		PageSize: pageSize,
	}
	// An empty district means no filter; the service never sees it.
	if v := c.Query("district"); v != "" {
		req.District = &v
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	data, err := h.svc.FetchTableData(ctx, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, data)
}

// intQuery parses an optional integer query parameter, collecting a field
// error when the raw value is not an integer.
func intQuery(c *gin.Context, name string, def int, ferrs *[]service.FieldError) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: name, Message: "must be an integer"})
		return def
	}
	return v
}
