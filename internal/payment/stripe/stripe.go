package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrInputInvalid    = errors.New("stripe input invalid")
	ErrRequestFailed   = errors.New("stripe request failed")
	ErrResponseInvalid = errors.New("stripe response invalid")
)

const (
	defaultAPIBaseURL = "https://api.stripe.com"
	defaultTimeout    = 12 * time.Second

	// 结账会话归一化状态
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusExpired = "expired"
)

var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

// Config Stripe 接入配置
type Config struct {
	SecretKey  string
	APIBaseURL string
	Timeout    time.Duration
}

// Client Stripe REST 客户端（表单编码请求）
type Client struct {
	cfg  Config
	http *http.Client
}

// LineInput 结账会话中的一行商品
type LineInput struct {
	ProductRef string // 写入 product_data[metadata][slug]
	Name       string
	ImageURL   string
	UnitAmount decimal.Decimal
	Quantity   int
}

// CheckoutInput 创建结账会话输入
type CheckoutInput struct {
	Lines                  []LineInput
	Currency               string
	SuccessURL             string
	CancelURL              string
	PaymentMethodTypes     []string
	BillingAddressAuto     bool
	TaxIDCollection        bool
	BoletoExpiresAfterDays int
	Metadata               map[string]string
}

// CheckoutSession 已创建的结账会话
type CheckoutSession struct {
	ID     string
	URL    string
	Status string
}

// Address 地址
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Shipping 收货信息
type Shipping struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// SessionLineItem 会话中的商品快照
type SessionLineItem struct {
	ProductRef string
	Name       string
	Image      string
	UnitAmount decimal.Decimal
	Quantity   int
}

// SessionDetail 查询到的结账会话
type SessionDetail struct {
	ID            string
	Status        string
	PaymentStatus string
	Currency      string
	AmountTotal   decimal.Decimal
	CustomerEmail string
	CustomerName  string
	Shipping      *Shipping
	LineItems     []SessionLineItem
	CreatedAt     *time.Time
}

// Paid 是否已支付成功
func (s *SessionDetail) Paid() bool {
	return s != nil && s.Status == StatusSuccess
}

// NewClient 创建客户端
func NewClient(cfg Config) (*Client, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Validate 校验配置
func (c Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(c.APIBaseURL)); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) normalize() {
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// CreateCheckoutSession 创建 Checkout Session（每个购物车行对应一个 line_item）
func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutSession, error) {
	form, err := buildCheckoutForm(input)
	if err != nil {
		return nil, err
	}

	respBody, statusCode, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create checkout session status %d: %s", ErrResponseInvalid, statusCode, readErrorMessage(respBody))
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	session := &CheckoutSession{
		ID:     readString(raw, "id"),
		URL:    readString(raw, "url"),
		Status: mapCheckoutSessionStatus(readString(raw, "payment_status"), readString(raw, "status")),
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("%w: missing session id or url", ErrResponseInvalid)
	}
	return session, nil
}

// RetrieveSession 查询结账会话（展开商品明细）
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*SessionDetail, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInputInvalid)
	}
	query := url.Values{}
	query.Add("expand[]", "line_items.data.price.product")
	path := fmt.Sprintf("/v1/checkout/sessions/%s?%s", url.PathEscape(sessionID), query.Encode())

	respBody, statusCode, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: retrieve checkout session status %d: %s", ErrResponseInvalid, statusCode, readErrorMessage(respBody))
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	return parseSessionDetail(raw)
}

func buildCheckoutForm(input CheckoutInput) (url.Values, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: line items are required", ErrInputInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInputInvalid)
	}
	if strings.TrimSpace(input.SuccessURL) == "" || strings.TrimSpace(input.CancelURL) == "" {
		return nil, fmt.Errorf("%w: success_url and cancel_url are required", ErrInputInvalid)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", strings.TrimSpace(input.SuccessURL))
	form.Set("cancel_url", strings.TrimSpace(input.CancelURL))
	for i, line := range input.Lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d name is required", ErrInputInvalid, i)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", ErrInputInvalid, i)
		}
		minor, err := toMinorAmount(line.UnitAmount, currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
		form.Set(prefix+"[price_data][currency]", strings.ToLower(currency))
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(minor, 10))
		form.Set(prefix+"[price_data][product_data][name]", name)
		if isAbsoluteURL(line.ImageURL) {
			form.Set(prefix+"[price_data][product_data][images][0]", strings.TrimSpace(line.ImageURL))
		}
		if ref := strings.TrimSpace(line.ProductRef); ref != "" {
			form.Set(prefix+"[price_data][product_data][metadata][slug]", ref)
		}
	}
	for _, pmType := range input.PaymentMethodTypes {
		if trimmed := strings.ToLower(strings.TrimSpace(pmType)); trimmed != "" {
			form.Add("payment_method_types[]", trimmed)
		}
	}
	if input.BillingAddressAuto {
		form.Set("billing_address_collection", "auto")
	}
	if input.TaxIDCollection {
		form.Set("tax_id_collection[enabled]", "true")
	}
	if input.BoletoExpiresAfterDays > 0 && containsFold(input.PaymentMethodTypes, "boleto") {
		form.Set("payment_method_options[boleto][expires_after_days]", strconv.Itoa(input.BoletoExpiresAfterDays))
	}
	for key, value := range input.Metadata {
		if strings.TrimSpace(key) == "" {
			continue
		}
		form.Set(fmt.Sprintf("metadata[%s]", strings.TrimSpace(key)), value)
	}
	return form, nil
}

func parseSessionDetail(raw map[string]interface{}) (*SessionDetail, error) {
	detail := &SessionDetail{
		ID:            readString(raw, "id"),
		PaymentStatus: strings.ToLower(readString(raw, "payment_status")),
		Currency:      strings.ToUpper(readString(raw, "currency")),
	}
	if detail.ID == "" {
		return nil, fmt.Errorf("%w: missing checkout session id", ErrResponseInvalid)
	}
	detail.Status = mapCheckoutSessionStatus(detail.PaymentStatus, readString(raw, "status"))
	if detail.Currency != "" {
		detail.AmountTotal = fromMinorAmount(readInt64(raw, "amount_total"), detail.Currency)
	}
	if created := readInt64(raw, "created"); created > 0 {
		createdAt := time.Unix(created, 0)
		detail.CreatedAt = &createdAt
	}

	customer := readMap(raw, "customer_details")
	detail.CustomerEmail = readString(customer, "email")
	if detail.CustomerEmail == "" {
		detail.CustomerEmail = readString(raw, "customer_email")
	}
	detail.CustomerName = readString(customer, "name")
	detail.Shipping = readShipping(raw)

	lineItems := readMap(raw, "line_items")
	for _, item := range readSlice(lineItems, "data") {
		line, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		detail.LineItems = append(detail.LineItems, parseSessionLine(line, detail.Currency))
	}
	return detail, nil
}

func parseSessionLine(line map[string]interface{}, currency string) SessionLineItem {
	item := SessionLineItem{
		Name:     readString(line, "description"),
		Quantity: int(readInt64(line, "quantity")),
	}
	price := readMap(line, "price")
	item.UnitAmount = fromMinorAmount(readInt64(price, "unit_amount"), currency)
	if product := readMap(price, "product"); product != nil {
		if name := readString(product, "name"); name != "" {
			item.Name = name
		}
		if images := readSlice(product, "images"); len(images) > 0 {
			if first, ok := images[0].(string); ok {
				item.Image = strings.TrimSpace(first)
			}
		}
		item.ProductRef = readString(readMap(product, "metadata"), "slug")
	}
	return item
}

// 优先 shipping_details，新版 API 位于 collected_information 下
func readShipping(raw map[string]interface{}) *Shipping {
	details := readMap(raw, "shipping_details")
	if details == nil {
		details = readMap(readMap(raw, "collected_information"), "shipping_details")
	}
	if details == nil {
		return nil
	}
	address := readMap(details, "address")
	return &Shipping{
		Name: readString(details, "name"),
		Address: Address{
			Line1:      readString(address, "line1"),
			Line2:      readString(address, "line2"),
			City:       readString(address, "city"),
			State:      readString(address, "state"),
			PostalCode: readString(address, "postal_code"),
			Country:    readString(address, "country"),
		},
	}
}

func mapCheckoutSessionStatus(paymentStatus string, sessionStatus string) string {
	paymentStatus = strings.ToLower(strings.TrimSpace(paymentStatus))
	sessionStatus = strings.ToLower(strings.TrimSpace(sessionStatus))
	if paymentStatus == "paid" {
		return StatusSuccess
	}
	if sessionStatus == "expired" {
		return StatusExpired
	}
	if sessionStatus == "complete" && paymentStatus == "no_payment_required" {
		return StatusSuccess
	}
	return StatusPending
}

// ToMinorAmount 金额转最小货币单位（BRL 分）
func ToMinorAmount(amount decimal.Decimal, currency string) (int64, error) {
	return toMinorAmount(amount, currency)
}

func toMinorAmount(amount decimal.Decimal, currency string) (int64, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrInputInvalid)
	}
	return amount.Shift(int32(currencyScale(currency))).Round(0).IntPart(), nil
}

func fromMinorAmount(minor int64, currency string) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(int32(-currencyScale(currency)))
}

func currencyScale(currency string) int {
	upper := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := zeroDecimalCurrencies[upper]; ok {
		return 0
	}
	return 2
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return respBody, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readErrorMessage(body []byte) string {
	raw, err := decodeRawMap(body)
	if err != nil {
		return ""
	}
	return readString(readMap(raw, "error"), "message")
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "https" || parsed.Scheme == "http") && parsed.Host != ""
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), target) {
			return true
		}
	}
	return false
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil || strings.TrimSpace(key) == "" {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return strings.TrimSpace(typed.String())
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	default:
		return ""
	}
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	mapped, ok := raw[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return mapped
}

func readSlice(raw map[string]interface{}, key string) []interface{} {
	if raw == nil {
		return nil
	}
	items, ok := raw[key].([]interface{})
	if !ok {
		return nil
	}
	return items
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil || strings.TrimSpace(key) == "" {
		return 0
	}
	switch typed := raw[key].(type) {
	case float64:
		return int64(typed)
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
