package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"repair_desk/internal/repair"
	"repair_desk/internal/retry"

	"github.com/rs/zerolog/log"
)

var _ repair.Notifier = (*Client)(nil)

const (
	circuitThreshold = 5
	circuitCooldown  = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	Topic    string
	Enabled  bool
	Priority string
	Delivery retry.Config
	// BoardURL is linked from notification messages when set.
	BoardURL string
}

// Client posts plain-text messages to an ntfy topic.
type Client struct {
	httpClient *http.Client
	opts       Options

	// Circuit breaker state
	mutex       sync.Mutex
	failures    int
	lastFailure time.Time
	circuitOpen bool
	// Metrics
	totalSent   int64
	totalFailed int64

	wg sync.WaitGroup
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error {
	return e.Underlying
}

func (e *NotificationError) IsRetryable() bool {
	switch e.Type {
	case "network", "server", "timeout", "rate_limit":
		return true
	case "auth", "client", "circuit_open":
		return false
	default:
		return e.StatusCode >= 500
	}
}

func NewClient(opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Delivery.Retryable == nil {
		opts.Delivery.Retryable = isRetryable
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		opts: opts,
	}
}

func isRetryable(err error) bool {
	var notifErr *NotificationError
	if errors.As(err, &notifErr) {
		return notifErr.IsRetryable()
	}
	return true
}

// Enabled reports whether messages are actually sent.
func (c *Client) Enabled() bool {
	return c != nil && c.opts.Enabled
}

// ReportSubmitted announces a new repair report.
func (c *Client) ReportSubmitted(ctx context.Context, task repair.Task) {
	if !c.Enabled() {
		return
	}
	c.SendNotificationAsync(ctx, c.formatReportMessage(task.Record))
}

// StatusUpdated announces a status change.
func (c *Client) StatusUpdated(ctx context.Context, rowIndex int, status string) {
	if !c.Enabled() {
		return
	}
	c.SendNotificationAsync(ctx, c.formatStatusMessage(rowIndex, status))
}

func (c *Client) SendNotification(ctx context.Context, message string) error {
	if !c.Enabled() {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	if c.isCircuitOpen() {
		log.Warn().Msg("Circuit breaker open, skipping notification")
		return &NotificationError{
			Type:       "circuit_open",
			Underlying: errors.New("circuit breaker is open"),
		}
	}

	_, err := retry.WithRetry(ctx, c.opts.Delivery, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.sendSingleNotification(ctx, message)
	})
	if err != nil {
		c.recordFailure()
		return err
	}
	c.recordSuccess()
	return nil
}

// SendNotificationAsync sends in the background, detached from ctx's
// cancellation so a finished HTTP request does not abort delivery.
func (c *Client) SendNotificationAsync(ctx context.Context, message string) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.SendNotification(ctx, message); err != nil {
			log.Warn().Err(err).Msg("Async notification failed")
		}
	}()
}

// Wait blocks until pending async notifications finish.
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) sendSingleNotification(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.opts.BaseURL, c.opts.Topic)

	log.Debug().
		Str("url", url).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}

	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", "Repair desk")
	if c.opts.Priority != "" {
		req.Header.Set("Priority", c.opts.Priority)
	}
	if c.opts.BoardURL != "" {
		req.Header.Set("Click", c.opts.BoardURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &NotificationError{Type: "timeout", Underlying: err}
		}
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Debug().
		Int("status_code", resp.StatusCode).
		Msg("Notification sent successfully")
	return nil
}

func (c *Client) formatReportMessage(rec repair.Record) string {
	var sb strings.Builder
	sb.WriteString("🔧 新的設備報修\n")
	sb.WriteString(fmt.Sprintf("📍 %s\n", rec.DeviceLocation))
	sb.WriteString(fmt.Sprintf("👤 %s\n", rec.ReporterName))
	sb.WriteString(fmt.Sprintf("📝 %s\n", rec.ProblemDescription))
	if rec.HelperTeacher != "" && rec.HelperTeacher != repair.HelperUnspecified {
		sb.WriteString(fmt.Sprintf("🧑‍🏫 %s\n", rec.HelperTeacher))
	}
	sb.WriteString(fmt.Sprintf("🕒 %s", rec.Timestamp))
	return sb.String()
}

func (c *Client) formatStatusMessage(rowIndex int, status string) string {
	return fmt.Sprintf("✅ 第 %d 列任務狀態更新為「%s」", rowIndex, status)
}

func (c *Client) isCircuitOpen() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.circuitOpen {
		return false
	}
	// half-open: let one attempt through after the cooldown
	if time.Since(c.lastFailure) > circuitCooldown {
		c.circuitOpen = false
		c.failures = 0
		log.Info().Msg("Circuit breaker moving to half-open state")
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.totalSent++
	c.failures = 0
	if c.circuitOpen {
		c.circuitOpen = false
		log.Info().Msg("Circuit breaker closed after successful notification")
	}
}

func (c *Client) recordFailure() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.totalFailed++
	c.failures++
	c.lastFailure = time.Now()

	if c.failures >= circuitThreshold && !c.circuitOpen {
		c.circuitOpen = true
		log.Warn().
			Int("failures", c.failures).
			Msg("Circuit breaker opened due to consecutive failures")
	}
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}

// GetMetrics returns current notification metrics
func (c *Client) GetMetrics() (sent, failed int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.totalSent, c.totalFailed
}
