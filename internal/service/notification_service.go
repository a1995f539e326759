package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/go-resty/resty/v2"
)

var (
	ErrEmailDisabled      = errors.New("email sending disabled")
	ErrEmailNotConfigured = errors.New("email sender not configured")
	ErrEmailInvalid       = errors.New("invalid email address")
	ErrSMSDisabled        = errors.New("sms sending disabled")
)

// NotificationService delivers order emails and SMS messages. It is
// called from queue workers, never from request handlers.
type NotificationService struct {
	emailCfg  *config.EmailConfig
	smsCfg    *config.SMSConfig
	smsClient *resty.Client
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

func NewNotificationService(emailCfg *config.EmailConfig, smsCfg *config.SMSConfig, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *NotificationService {
	svc := &NotificationService{
		emailCfg:  emailCfg,
		smsCfg:    smsCfg,
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
	if smsCfg != nil && smsCfg.Enabled {
		timeout := time.Duration(smsCfg.TimeoutMS) * time.Millisecond
		if timeout <= 0 {
			timeout = 8 * time.Second
		}
		svc.smsClient = resty.New().
			SetBaseURL(strings.TrimRight(smsCfg.Endpoint, "/")).
			SetTimeout(timeout).
			SetHeader("Authorization", "Bearer "+smsCfg.APIKey)
	}
	return svc
}

// SendOrderConfirmation emails the order receipt after checkout.
func (s *NotificationService) SendOrderConfirmation(orderID uint) error {
	order, email, err := s.loadOrderAndEmail(orderID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNo)
	var body bytes.Buffer
	fmt.Fprintf(&body, "Thanks for your order.\n\n")
	fmt.Fprintf(&body, "Order number: %s\n", order.OrderNo)
	for i := range order.Items {
		item := order.Items[i]
		fmt.Fprintf(&body, "  %s x%d  %s %s\n", item.ProductName, item.Quantity, item.TotalPrice.String(), order.Currency)
	}
	fmt.Fprintf(&body, "Total: %s %s\n", order.TotalAmount.String(), order.Currency)
	if order.ExpiresAt != nil && order.Status == constants.OrderStatusPending {
		fmt.Fprintf(&body, "\nPlease complete payment before %s.\n", order.ExpiresAt.Format("2 Jan 2006 15:04 MST"))
	}
	return s.sendTextEmail(email, subject, body.String())
}

// SendOrderStatus emails the customer about an order status change.
func (s *NotificationService) SendOrderStatus(orderID uint, status string) error {
	order, email, err := s.loadOrderAndEmail(orderID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order %s %s", order.OrderNo, statusLabel(status))
	body := fmt.Sprintf("Your order %s is now %s.\n\nTotal: %s %s\n",
		order.OrderNo, statusLabel(status), order.TotalAmount.String(), order.Currency)
	return s.sendTextEmail(email, subject, body)
}

// SendShipmentNotice emails the tracking number once an order ships.
func (s *NotificationService) SendShipmentNotice(orderID uint, trackingNumber string) error {
	order, email, err := s.loadOrderAndEmail(orderID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order %s has shipped", order.OrderNo)
	body := fmt.Sprintf("Your order %s is on its way with Australia Post.\n\nTracking number: %s\nTrack it at https://auspost.com.au/mypost/track/#/details/%s\n",
		order.OrderNo, trackingNumber, trackingNumber)
	return s.sendTextEmail(email, subject, body)
}

// SendSMS posts a message to the configured SMS gateway.
func (s *NotificationService) SendSMS(ctx context.Context, phone, message string) error {
	if s.smsClient == nil {
		return ErrSMSDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := s.smsClient.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"to":      strings.TrimSpace(phone),
			"from":    s.smsCfg.Sender,
			"message": message,
		}).
		Post("/messages")
	if err != nil {
		return err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("sms gateway status %d", resp.StatusCode())
	}
	return nil
}

func (s *NotificationService) loadOrderAndEmail(orderID uint) (*models.Order, string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", ErrOrderNotFound
	}
	email, err := s.orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		return nil, "", err
	}
	if email == "" {
		return nil, "", ErrUserNotFound
	}
	return order, email, nil
}

func statusLabel(status string) string {
	switch status {
	case constants.OrderStatusPaid:
		return "paid"
	case constants.OrderStatusShipped:
		return "shipped"
	case constants.OrderStatusDelivered:
		return "delivered"
	case constants.OrderStatusCancelled:
		return "cancelled"
	case constants.OrderStatusRefunded:
		return "refunded"
	case constants.OrderStatusDisputed:
		return "under review"
	default:
		return status
	}
}

func (s *NotificationService) sendTextEmail(toEmail, subject, body string) error {
	if s.emailCfg == nil || !s.emailCfg.Enabled {
		return ErrEmailDisabled
	}
	if s.emailCfg.Host == "" || s.emailCfg.Port == 0 || s.emailCfg.From == "" {
		return ErrEmailNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrEmailInvalid
	}

	from := buildFromAddress(s.emailCfg.From, s.emailCfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.emailCfg.Host, s.emailCfg.Port)
	var auth smtp.Auth
	if s.emailCfg.Username != "" || s.emailCfg.Password != "" {
		auth = smtp.PlainAuth("", s.emailCfg.Username, s.emailCfg.Password, s.emailCfg.Host)
	}

	var err error
	switch {
	case s.emailCfg.UseSSL:
		err = sendMailWithSSL(addr, auth, s.emailCfg.Host, s.emailCfg.From, []string{toEmail}, []byte(msg))
	case s.emailCfg.UseTLS:
		err = sendMailWithStartTLS(addr, auth, s.emailCfg.Host, s.emailCfg.From, []string{toEmail}, []byte(msg))
	default:
		err = sendMailPlain(addr, auth, s.emailCfg.Host, s.emailCfg.From, []string{toEmail}, []byte(msg))
	}
	if err != nil {
		logger.Warnw("notification_email_send_failed",
			"to", toEmail,
			"subject", subject,
			"error", err,
		)
	}
	return err
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
