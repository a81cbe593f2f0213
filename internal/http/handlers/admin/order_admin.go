package admin

import (
	"errors"
	"time"

	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/repository"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderListQuery 后台订单筛选；时间为 RFC3339
type OrderListQuery struct {
	Status        string     `form:"status"`
	OrderNo       string     `form:"order_no"`
	CustomerEmail string     `form:"customer_email"`
	CreatedFrom   *time.Time `form:"created_from" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedTo     *time.Time `form:"created_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// AdminListOrders 订单列表，按 ID 倒序并附带订单项
func (h *Handler) AdminListOrders(c *gin.Context) {
	var q OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := handlershared.PageQuery(c)

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        q.Status,
		OrderNo:       q.OrderNo,
		CustomerEmail: q.CustomerEmail,
		CreatedFrom:   q.CreatedFrom,
		CreatedTo:     q.CreatedTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdminByID(id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case err != nil:
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
	default:
		response.Success(c, order)
	}
}
