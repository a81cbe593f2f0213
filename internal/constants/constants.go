package constants

// 订单状态常量
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
)

// 结账会话状态常量（已归一化）
const (
	CheckoutStatusPending = "pending"
	CheckoutStatusSuccess = "success"
	CheckoutStatusExpired = "expired"
	CheckoutStatusFailed  = "failed"
)

// 商品分类常量
const (
	CategoryDresses     = "Dresses"
	CategoryTops        = "Tops"
	CategoryBottoms     = "Bottoms"
	CategoryOuterwear   = "Outerwear"
	CategoryAccessories = "Accessories"
)

// 后台角色常量
const (
	RoleCatalogManager = "catalog_manager"
	RoleOrderViewer    = "order_viewer"
)

// 购物车单行数量上限；请求校验标签 max=999 与之保持一致
const MaxCartLineQuantity = 999

// 上下文键
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyAdminID       = "admin_id"
	ContextKeyAdminUsername = "username"
	ContextKeyCartSession   = "cart_session_id"
	ContextKeyUserID        = "user_id"
)

// 异步队列
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskOrderRecord = "order:record"
)
