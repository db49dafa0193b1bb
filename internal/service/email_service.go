package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg  *config.EmailConfig
	site *config.SiteConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig, site *config.SiteConfig) *EmailService {
	return &EmailService{cfg: cfg, site: site}
}

// SendVerificationEmail 发送账号激活邮件
func (s *EmailService) SendVerificationEmail(toEmail, token string) error {
	link := s.buildLink("/verify/" + token)
	subject := fmt.Sprintf("Verify your %s account", s.siteName())
	body := fmt.Sprintf("Welcome to %s!\n\nPlease verify your email address by opening the link below:\n\n%s\n\nIf you did not create this account, you can ignore this email.", s.siteName(), link)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	link := s.buildLink("/reset-password/" + token)
	subject := fmt.Sprintf("Reset your %s password", s.siteName())
	body := fmt.Sprintf("We received a request to reset your password.\n\nOpen the link below to choose a new password. The link expires in 1 hour:\n\n%s\n\nIf you did not request a password reset, you can ignore this email.", link)
	return s.sendTextEmail(toEmail, subject, body)
}

// OrderConfirmationEmailInput 订单确认邮件输入
type OrderConfirmationEmailInput struct {
	OrderNo string
	Total   models.Money
}

// SendOrderConfirmationEmail 发送下单成功通知
func (s *EmailService) SendOrderConfirmationEmail(toEmail string, input OrderConfirmationEmailInput) error {
	subject := fmt.Sprintf("Order %s confirmed", input.OrderNo)
	body := fmt.Sprintf("Thank you for shopping at %s!\n\nYour order %s has been placed successfully.\nOrder total: %s\n\nWe will let you know as soon as it ships.", s.siteName(), input.OrderNo, input.Total.String())
	return s.sendTextEmail(toEmail, subject, body)
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo        string
	Status         string
	Total          models.Money
	TrackingNumber string
}

// SendOrderStatusEmail 发送订单状态变更通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject, body := s.buildOrderStatusContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP configuration test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = fmt.Sprintf("This is a test email from %s. Your SMTP configuration works.", s.siteName())
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) siteName() string {
	if s.site != nil && strings.TrimSpace(s.site.Name) != "" {
		return s.site.Name
	}
	return "Aurora Mall"
}

func (s *EmailService) buildLink(path string) string {
	base := ""
	if s.site != nil {
		base = strings.TrimRight(strings.TrimSpace(s.site.BaseURL), "/")
	}
	return base + path
}

func (s *EmailService) buildOrderStatusContent(input OrderStatusEmailInput) (string, string) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	subject := fmt.Sprintf("Order %s update: %s", input.OrderNo, statusLabel(status))
	var body string
	switch status {
	case constants.OrderStatusShipped, constants.OrderStatusOutForDelivery:
		body = fmt.Sprintf("Good news! Your order %s is now %s.\nOrder total: %s", input.OrderNo, statusLabel(status), input.Total.String())
		if tracking := strings.TrimSpace(input.TrackingNumber); tracking != "" {
			body += fmt.Sprintf("\nTracking number: %s", tracking)
		}
	case constants.OrderStatusDelivered:
		body = fmt.Sprintf("Your order %s has been delivered.\nOrder total: %s\n\nThank you for shopping at %s!", input.OrderNo, input.Total.String(), s.siteName())
	case constants.OrderStatusCancelled:
		body = fmt.Sprintf("Your order %s has been cancelled.\nOrder total: %s\n\nIf you have any questions, reply to this email.", input.OrderNo, input.Total.String())
	default:
		body = fmt.Sprintf("Your order %s is now %s.\nOrder total: %s", input.OrderNo, statusLabel(status), input.Total.String())
	}
	return subject, body
}

func statusLabel(status string) string {
	switch status {
	case constants.OrderStatusOutForDelivery:
		return "out for delivery"
	default:
		return strings.ReplaceAll(status, "_", " ")
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
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
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
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
