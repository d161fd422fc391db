package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

// paymentGateway wraps the hosted-checkout provider. When no consumer
// key is configured, Enabled reports false and checkout completes
// without initiating payment.
type paymentGateway struct {
	cfg    config.PaymentConfig
	client *resty.Client
}

func newPaymentGateway(cfg config.PaymentConfig) *paymentGateway {
	return &paymentGateway{
		cfg:    cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

func (g *paymentGateway) Enabled() bool {
	return g.cfg.ConsumerKey != "" && g.cfg.ConsumerSecret != ""
}

func (g *paymentGateway) requestToken() (string, error) {
	requestBody := map[string]string{
		"consumer_key":    g.cfg.ConsumerKey,
		"consumer_secret": g.cfg.ConsumerSecret,
	}

	resp, err := g.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestBody).
		Post(g.cfg.BaseURL + "/api/Auth/RequestToken")
	if err != nil {
		return "", err
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response: %v", response)
	}

	return token, nil
}

// SubmitOrder registers the order with the gateway and returns the
// hosted-checkout redirect URL plus the gateway tracking id.
func (g *paymentGateway) SubmitOrder(order models.Order) (string, string, error) {
	token, err := g.requestToken()
	if err != nil {
		return "", "", err
	}

	gatewayOrder := map[string]any{
		"id":              order.Reference,
		"currency":        "KES",
		"amount":          order.Total,
		"description":     fmt.Sprintf("Payment for order %s", order.Reference),
		"callback_url":    g.cfg.CallbackURL,
		"notification_id": g.cfg.NotificationID,
		"billing_address": map[string]any{
			"phone_number": order.Phone,
			"first_name":   order.ShippingName,
			"city":         order.ShippingCity,
			"line_1":       order.ShippingStreet,
		},
	}

	resp, err := g.client.R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(gatewayOrder).
		Post(g.cfg.BaseURL + "/api/Transactions/SubmitOrderRequest")
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", "", fmt.Errorf("order submission failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		return "", "", fmt.Errorf("invalid response from payment gateway: %w", err)
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		return "", "", fmt.Errorf("incomplete response from payment gateway")
	}

	return redirectURL, trackingID, nil
}

func (g *paymentGateway) transactionStatus(trackingID string) (string, error) {
	token, err := g.requestToken()
	if err != nil {
		return "", err
	}

	resp, err := g.client.R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		Get(g.cfg.BaseURL + "/api/Transactions/GetTransactionStatus?orderTrackingId=" + trackingID)
	if err != nil {
		return "", err
	}

	var statusResp map[string]any
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		return "", fmt.Errorf("invalid status response: %w", err)
	}

	if errObj, exists := statusResp["error"]; exists && errObj != nil {
		if errMap, ok := errObj.(map[string]interface{}); ok {
			if errMap["code"] != nil || errMap["message"] != nil {
				return "", fmt.Errorf("error in transaction response")
			}
		}
	}

	return fmt.Sprint(statusResp["payment_status_description"]), nil
}

// HandlePaymentIPN is the gateway's notification callback. It looks up
// the live transaction status and records it on the matching order.
func HandlePaymentIPN(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	gateway := newPaymentGateway(cfg.Payment)

	return func(ctx *gin.Context) {
		var trackingID, merchantRef string

		if ctx.Request.Method == http.MethodPost {
			var payload struct {
				OrderTrackingId        string `json:"OrderTrackingId"`
				OrderMerchantReference string `json:"OrderMerchantReference"`
			}
			if err := ctx.BindJSON(&payload); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
			trackingID = payload.OrderTrackingId
			merchantRef = payload.OrderMerchantReference
		} else {
			trackingID = ctx.Query("orderTrackingId")
			merchantRef = ctx.Query("orderMerchantReference")
		}

		if trackingID == "" || merchantRef == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
			return
		}

		statusDesc, err := gateway.transactionStatus(trackingID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
			return
		}

		if err := db.Model(&models.Order{}).
			Where("payment_tracking_id = ?", trackingID).
			Update("payment_status", statusDesc).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"orderNotificationType":  "IPNCHANGE",
			"orderTrackingId":        trackingID,
			"orderMerchantReference": merchantRef,
			"status":                 200,
		})
	}
}
