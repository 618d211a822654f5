package stripeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

// Client 托管收银台网关客户端
// 进程内只构造一次，注入给需要的服务
type Client struct {
	baseURL    string
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

// NewClient 创建托管收银台客户端
func NewClient(baseURL, secretKey, successURL, cancelURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSessionInput 创建托管会话参数
type CreateSessionInput struct {
	OrderNumber string
	Amount      decimal.Decimal
	Currency    string
	LineItems   []LineItem
}

// LineItem 收银台展示行
// 运费非零时作为单独一行，折扣作为负数行
type LineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// SessionResult 托管会话创建结果
type SessionResult struct {
	SessionID   string
	RedirectURL string
}

type createSessionRequest struct {
	Mode       string            `json:"mode"`
	Currency   string            `json:"currency"`
	LineItems  []LineItem        `json:"line_items"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata"`
}

type sessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`         // open / complete / expired
	PaymentStatus string            `json:"payment_status"` // paid / unpaid
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"` // 最小货币单位（萨当）
	Metadata      map[string]string `json:"metadata"`
}

// CreateSession 创建托管收银台会话，金额以订单实付金额为准
func (c *Client) CreateSession(ctx context.Context, input *CreateSessionInput) (*SessionResult, error) {
	body := &createSessionRequest{
		Mode:       "payment",
		Currency:   input.Currency,
		LineItems:  input.LineItems,
		SuccessURL: c.successURL + "?order=" + input.OrderNumber,
		CancelURL:  c.cancelURL + "?order=" + input.OrderNumber,
		Metadata:   map[string]string{"order_number": input.OrderNumber},
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", body, &resp); err != nil {
		return nil, err
	}

	return &SessionResult{
		SessionID:   resp.ID,
		RedirectURL: resp.URL,
	}, nil
}

// GetSession 查询托管会话，每次对账都重新查询网关，不信任本地缓存
func (c *Client) GetSession(ctx context.Context, sessionID string) (*etpayment.ChargeResult, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(resp)
	return &etpayment.ChargeResult{
		ChargeID:    resp.PaymentIntent,
		SessionID:   resp.ID,
		Status:      normalizeStatus(&resp),
		Amount:      decimal.New(resp.AmountTotal, -2),
		OrderNumber: resp.Metadata["order_number"],
		Raw:         raw,
	}, nil
}

// normalizeStatus 网关状态归一化
func normalizeStatus(resp *sessionResponse) etpayment.GatewayStatus {
	switch {
	case resp.PaymentStatus == "paid":
		return etpayment.GatewayStatusSuccessful
	case resp.Status == "expired":
		return etpayment.GatewayStatusFailed
	default:
		return etpayment.GatewayStatusPending
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络错误与超时统一降级，由对账方回退到本地快照
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %v", errorx.ErrGatewayUnavailable, err)
		}
		return fmt.Errorf("%w: %v", errorx.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errorx.ErrSessionNotFound
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status=%d", errorx.ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe request failed: status=%d body=%s", resp.StatusCode, string(data))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
