// Package stripetest 提供内存版 Stripe Checkout API，供测试使用。
package stripetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var lineFieldPattern = regexp.MustCompile(`^line_items\[(\d+)\]\[(.+)\]$`)

// Server 模拟 Stripe 的 /v1/checkout/sessions 接口
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	seq      int
	sessions map[string]map[string]interface{}
	forms    map[string]url.Values
	lastAuth string
}

// NewServer 启动模拟服务
func NewServer() *Server {
	s := &Server{
		sessions: make(map[string]map[string]interface{}),
		forms:    make(map[string]url.Values),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// SecretKey 测试用密钥
const SecretKey = "sk_test_boutique"

// MarkPaid 将会话标记为已支付并写入顾客信息
func (s *Server) MarkPaid(sessionID, email, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	session["payment_status"] = "paid"
	session["status"] = "complete"
	session["customer_details"] = map[string]interface{}{"email": email, "name": name}
	session["shipping_details"] = map[string]interface{}{
		"name": name,
		"address": map[string]interface{}{
			"line1":       "Rua Augusta, 100",
			"city":        "São Paulo",
			"state":       "SP",
			"postal_code": "01305-000",
			"country":     "BR",
		},
	}
}

// MarkExpired 将会话标记为过期
func (s *Server) MarkExpired(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		session["status"] = "expired"
	}
}

// Form 返回创建会话时提交的表单
func (s *Server) Form(sessionID string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[sessionID]
}

// LastSessionID 最近创建的会话 ID
func (s *Server) LastSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == 0 {
		return ""
	}
	return sessionID(s.seq)
}

// LastAuthorization 最近一次请求的 Authorization 头
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lastAuth = r.Header.Get("Authorization")
	s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+SecretKey {
		writeError(w, http.StatusUnauthorized, "Invalid API Key provided")
		return
	}
	const prefix = "/v1/checkout/sessions"
	switch {
	case r.Method == http.MethodPost && r.URL.Path == prefix:
		s.create(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, prefix+"/"):
		s.retrieve(w, strings.TrimPrefix(r.URL.Path, prefix+"/"))
	default:
		writeError(w, http.StatusNotFound, "Unrecognized request URL")
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	currency := r.PostForm.Get("line_items[0][price_data][currency]")
	lines := map[int]map[string]string{}
	for key, values := range r.PostForm {
		match := lineFieldPattern.FindStringSubmatch(key)
		if match == nil || len(values) == 0 {
			continue
		}
		idx, _ := strconv.Atoi(match[1])
		if lines[idx] == nil {
			lines[idx] = map[string]string{}
		}
		lines[idx][match[2]] = values[0]
	}

	data := make([]interface{}, 0, len(lines))
	total := int64(0)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		qty, _ := strconv.ParseInt(line["quantity"], 10, 64)
		unit, _ := strconv.ParseInt(line["price_data][unit_amount"], 10, 64)
		total += qty * unit
		product := map[string]interface{}{
			"name":     line["price_data][product_data][name"],
			"images":   []interface{}{},
			"metadata": map[string]interface{}{},
		}
		if image := line["price_data][product_data][images][0"]; image != "" {
			product["images"] = []interface{}{image}
		}
		if slug := line["price_data][product_data][metadata][slug"]; slug != "" {
			product["metadata"] = map[string]interface{}{"slug": slug}
		}
		data = append(data, map[string]interface{}{
			"description":  line["price_data][product_data][name"],
			"quantity":     qty,
			"amount_total": qty * unit,
			"price": map[string]interface{}{
				"unit_amount": unit,
				"currency":    currency,
				"product":     product,
			},
		})
	}

	s.mu.Lock()
	s.seq++
	id := sessionID(s.seq)
	session := map[string]interface{}{
		"id":             id,
		"object":         "checkout.session",
		"url":            "https://checkout.stripe.test/c/pay/" + id,
		"status":         "open",
		"payment_status": "unpaid",
		"currency":       currency,
		"amount_total":   total,
		"created":        time.Now().Unix(),
		"line_items":     map[string]interface{}{"object": "list", "data": data},
	}
	s.sessions[id] = session
	s.forms[id] = r.PostForm
	resp := withoutLineItems(session)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) retrieve(w http.ResponseWriter, id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	var body []byte
	if ok {
		body, _ = json.Marshal(session)
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "No such checkout.session: "+id)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func withoutLineItems(session map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(session))
	for k, v := range session {
		if k == "line_items" {
			continue
		}
		out[k] = v
	}
	return out
}

func sessionID(seq int) string {
	return fmt.Sprintf("cs_test_%04d", seq)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{"message": message},
	})
}
