package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/config"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"
)

// ValidationClient asks the gateway's validation API whether a val_id is
// genuine. Any transport failure is returned as an error; the caller fails
// closed.
type ValidationClient struct {
	baseURL       string
	storeID       string
	storePassword string
	httpClient    *http.Client
}

func NewValidationClient(cfg config.GatewayConfig) *ValidationClient {
	return &ValidationClient{
		baseURL:       strings.TrimSuffix(cfg.ValidationURL, "/"),
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		httpClient:    &http.Client{Timeout: cfg.VerifyTimeout},
	}
}

type validationResponse struct {
	Status string `json:"status"`
	TranID string `json:"tran_id"`
	ValID  string `json:"val_id"`
	Amount string `json:"amount"`
}

func (c *ValidationClient) Verify(ctx context.Context, n payment.Notification) (commands.Verification, error) {
	if c.baseURL == "" {
		return commands.Verification{}, errs.New("gateway validation URL is not configured")
	}

	q := url.Values{}
	q.Set("val_id", n.ValID)
	q.Set("store_id", c.storeID)
	q.Set("store_passwd", c.storePassword)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return commands.Verification{}, errs.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return commands.Verification{}, errs.Wrap(err, "failed to call validation API")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return commands.Verification{}, errs.New("validation API returned status " + strconv.Itoa(resp.StatusCode))
	}

	var body validationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return commands.Verification{}, errs.Wrap(err, "failed to decode validation response")
	}

	status := payment.DeliveredStatus(strings.ToUpper(body.Status))
	v := commands.Verification{
		Valid:  status.IsSuccess(),
		TranID: body.TranID,
		Amount: body.Amount,
		Notes:  "gateway status " + body.Status,
	}
	return v, nil
}

// SandboxVerifier trusts the delivery as-is. It only runs in sandbox mode,
// after the signature has already been checked.
type SandboxVerifier struct{}

func NewSandboxVerifier() *SandboxVerifier {
	return &SandboxVerifier{}
}

func (s *SandboxVerifier) Verify(ctx context.Context, n payment.Notification) (commands.Verification, error) {
	if err := ctx.Err(); err != nil {
		return commands.Verification{}, err
	}
	return commands.Verification{
		Valid:  true,
		TranID: n.TranID,
		Amount: n.Amount,
		Notes:  "sandbox",
	}, nil
}
