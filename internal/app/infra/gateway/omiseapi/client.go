package omiseapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ballnaha/treetelu-sub002/internal/app/domains/entity/etpayment"
	"github.com/ballnaha/treetelu-sub002/internal/app/pkg/errorx"
)

// Client 直连扣款网关客户端
// 页内支付流程：前端完成扣款后把 charge id 交给后端核实
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient 创建直连扣款客户端
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chargeResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"` // pending / successful / failed / expired
	Paid     bool              `json:"paid"`
	Amount   int64             `json:"amount"`   // 最小货币单位（萨当）
	Currency string            `json:"currency"` // thb
	Metadata map[string]string `json:"metadata"`
}

// GetCharge 查询扣款单，状态以网关返回为准
func (c *Client) GetCharge(ctx context.Context, chargeID string) (*etpayment.ChargeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/charges/"+chargeID, nil)
	if err != nil {
		return nil, err
	}
	// Omise 风格：secret key 作为 Basic Auth 用户名
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errorx.ErrChargeNotFound
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status=%d", errorx.ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("omise request failed: status=%d body=%s", resp.StatusCode, string(data))
	}

	var charge chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(charge)
	return &etpayment.ChargeResult{
		ChargeID:    charge.ID,
		Status:      normalizeStatus(&charge),
		Amount:      decimal.New(charge.Amount, -2),
		OrderNumber: charge.Metadata["order_number"],
		Raw:         raw,
	}, nil
}

// normalizeStatus 网关状态归一化
func normalizeStatus(charge *chargeResponse) etpayment.GatewayStatus {
	switch charge.Status {
	case "successful":
		if charge.Paid {
			return etpayment.GatewayStatusSuccessful
		}
		return etpayment.GatewayStatusPending
	case "failed", "expired":
		return etpayment.GatewayStatusFailed
	default:
		return etpayment.GatewayStatusPending
	}
}
