package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
)

// Client 外部通知供应商客户端。
// 四个发送方法都是同步的，供应商受理成功返回带标识的响应。
//
//go:generate mockgen -source=./types.go -destination=./mocks/client.mock.go -package=providermocks -typed Client
type Client interface {
	SendEmail(ctx context.Context, templateID, to string, placeholders map[string]string) (SendResponse, error)
	SendSMS(ctx context.Context, templateID, mobile string, placeholders map[string]string) (SendResponse, error)
	SendLetter(ctx context.Context, templateID string, address domain.Address, placeholders map[string]string) (SendResponse, error)
	// SendPrecompiledLetter 发送已经拼装好的信件文档
	SendPrecompiledLetter(ctx context.Context, filename string, document []byte) (SendResponse, error)
}

// SendResponse 供应商受理结果
type SendResponse struct {
	// NotificationID 供应商侧的通知标识
	NotificationID string
	Body           string
}

// ClientError 供应商返回的 HTTP 错误
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("供应商返回 %d: %s", e.StatusCode, e.Message)
}

// Fatal 客户端错误不重试。400 是请求本身有问题，403 是凭证问题，
// 重发同样的请求不会有不同结果。
func (e *ClientError) Fatal() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusForbidden
}

func (e *ClientError) Unwrap() error {
	if e.Fatal() {
		return errs.ErrProviderClient
	}
	return errs.ErrProviderServer
}

// IsFatal err 是否为不可重试的失败。
// 供应商 5xx 和网络错误都视为暂时故障，可以重试。
func IsFatal(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Fatal()
	}
	return false
}
