package auspost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("auspost config invalid")
	ErrRequestFailed   = errors.New("auspost request failed")
	ErrResponseInvalid = errors.New("auspost response invalid")
	ErrNoService       = errors.New("auspost service unavailable")
)

const (
	defaultBaseURL = "https://digitalapi.auspost.com.au"
	defaultTimeout = 8 * time.Second

	// Domestic parcel service codes.
	ServiceRegular = "AUS_PARCEL_REGULAR"
	ServiceExpress = "AUS_PARCEL_EXPRESS"
)

// Client calls the Australia Post postage assessment API.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

// NewClient builds a client. timeout <= 0 falls back to the default.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("AUTH-KEY", apiKey)
	return &Client{http: httpClient, baseURL: baseURL, apiKey: apiKey}, nil
}

// QuoteInput describes a domestic parcel to price.
type QuoteInput struct {
	FromPostcode string
	ToPostcode   string
	LengthCM     int
	WidthCM      int
	HeightCM     int
	WeightKG     decimal.Decimal
	ServiceCode  string
}

// Quote is a priced postage service.
type Quote struct {
	ServiceCode  string
	ServiceName  string
	TotalCost    decimal.Decimal
	DeliveryTime string
}

// DomesticParcelQuote prices a domestic parcel for one service code.
func (c *Client) DomesticParcelQuote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateQuoteInput(input); err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from_postcode": input.FromPostcode,
			"to_postcode":   input.ToPostcode,
			"length":        strconv.Itoa(input.LengthCM),
			"width":         strconv.Itoa(input.WidthCM),
			"height":        strconv.Itoa(input.HeightCM),
			"weight":        input.WeightKG.String(),
			"service_code":  input.ServiceCode,
		}).
		Get("/postage/parcel/domestic/calculate.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode() == 400 {
		// The PAC API answers 400 for routes it cannot service.
		return nil, ErrNoService
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: status %d", ErrResponseInvalid, resp.StatusCode())
	}

	var decoded struct {
		PostageResult struct {
			Service      string `json:"service"`
			TotalCost    string `json:"total_cost"`
			DeliveryTime string `json:"delivery_time"`
		} `json:"postage_result"`
	}
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode failed", ErrResponseInvalid)
	}
	if decoded.PostageResult.TotalCost == "" {
		return nil, fmt.Errorf("%w: missing total_cost", ErrResponseInvalid)
	}
	cost, err := decimal.NewFromString(decoded.PostageResult.TotalCost)
	if err != nil || cost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: total_cost is invalid", ErrResponseInvalid)
	}
	return &Quote{
		ServiceCode:  input.ServiceCode,
		ServiceName:  decoded.PostageResult.Service,
		TotalCost:    cost,
		DeliveryTime: decoded.PostageResult.DeliveryTime,
	}, nil
}

func validateQuoteInput(input QuoteInput) error {
	if !isPostcode(input.FromPostcode) || !isPostcode(input.ToPostcode) {
		return fmt.Errorf("%w: postcode must be four digits", ErrConfigInvalid)
	}
	if input.LengthCM <= 0 || input.WidthCM <= 0 || input.HeightCM <= 0 {
		return fmt.Errorf("%w: parcel dimensions are required", ErrConfigInvalid)
	}
	if input.WeightKG.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: weight must be greater than zero", ErrConfigInvalid)
	}
	switch input.ServiceCode {
	case ServiceRegular, ServiceExpress:
		return nil
	default:
		return fmt.Errorf("%w: unknown service code %q", ErrConfigInvalid, input.ServiceCode)
	}
}

func isPostcode(value string) bool {
	if len(value) != 4 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
