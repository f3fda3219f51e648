package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// 网关在转发时注入的用户信息头，值为 base64url 编码的 JSON。
const gatewayUserInfoHeader = "x-apigateway-api-userinfo"

// HandlerType 区分读写请求，分别应用不同的超时。
type HandlerType int

const (
	// HandlerTypeQuery 表示只读请求。
	HandlerTypeQuery HandlerType = iota
	// HandlerTypeMutation 表示写请求。
	HandlerTypeMutation
)

const (
	defaultQueryTimeout    = 5 * time.Second
	defaultMutationTimeout = 10 * time.Second
)

// HandlerTimeouts 配置各类请求的超时上限，零值使用默认值。
type HandlerTimeouts struct {
	Query    time.Duration
	Mutation time.Duration
}

// BaseHandler 提供各 Handler 共用的租户解析与超时控制。
type BaseHandler struct {
	timeouts HandlerTimeouts
}

// NewBaseHandler 构造 BaseHandler。
func NewBaseHandler(timeouts HandlerTimeouts) *BaseHandler {
	if timeouts.Query <= 0 {
		timeouts.Query = defaultQueryTimeout
	}
	if timeouts.Mutation <= 0 {
		timeouts.Mutation = defaultMutationTimeout
	}
	return &BaseHandler{timeouts: timeouts}
}

// WithTimeout 按请求类型返回带超时的 context。
func (h *BaseHandler) WithTimeout(ctx context.Context, handlerType HandlerType) (context.Context, context.CancelFunc) {
	timeout := h.timeouts.Query
	if handlerType == HandlerTypeMutation {
		timeout = h.timeouts.Mutation
	}
	return context.WithTimeout(ctx, timeout)
}

type gatewayUserInfo struct {
	Sub string `json:"sub"`
}

// ExtractTenant 从网关用户信息头解析租户 ID。
// 头缺失、编码损坏或 sub 非数字都视为未认证。
func (h *BaseHandler) ExtractTenant(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(gatewayUserInfoHeader)
	if raw == "" {
		return 0, errors.New("missing gateway userinfo header")
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		return 0, errors.Wrap(err, "decode gateway userinfo")
	}
	var info gatewayUserInfo
	if err := json.Unmarshal(decoded, &info); err != nil {
		return 0, errors.Wrap(err, "unmarshal gateway userinfo")
	}
	tenantID, err := strconv.ParseInt(info.Sub, 10, 64)
	if err != nil || tenantID <= 0 {
		return 0, errors.New("invalid tenant id in gateway userinfo")
	}
	return tenantID, nil
}
