package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Все вызовы best-effort: доставка уведомлений никогда не должна
// блокировать или откатывать переход заявки
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RequestCreated отправляет событие о создании заявки
// Адресаты (подходящие исполнители) вычисляются на стороне NotifyService
func (c *Client) RequestCreated(request *domain.WashRequest) {
	c.publishAsync(Event{
		Type:            EventRequestCreated,
		WashRequestID:   request.ID,
		ClientCompanyID: request.ClientCompanyID,
		DateTime:        request.DateTime,
	})
}

// RequestAccepted отправляет событие о принятии заявки исполнителем
func (c *Client) RequestAccepted(request *domain.WashRequest) {
	c.publishAsync(Event{
		Type:            EventRequestAccepted,
		WashRequestID:   request.ID,
		ClientCompanyID: request.ClientCompanyID,
		ProviderID:      request.ProviderID,
		DateTime:        request.DateTime,
	})
}

// ProviderCancelled отправляет событие об отмене заявки исполнителем
func (c *Client) ProviderCancelled(request *domain.WashRequest, providerID int64) {
	c.publishAsync(Event{
		Type:            EventProviderCancelled,
		WashRequestID:   request.ID,
		ClientCompanyID: request.ClientCompanyID,
		ProviderID:      &providerID,
		DateTime:        request.DateTime,
	})
}

// publishAsync отправляет событие в отдельной горутине
// Ошибки доставки логируются и проглатываются
func (c *Client) publishAsync(event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.publish(ctx, event); err != nil {
			c.log.Warn("NotifyService delivery failed for event=%s, request_id=%d: %v",
				event.Type, event.WashRequestID, err)
			return
		}

		c.log.Info("NotifyService event delivered: event=%s, request_id=%d",
			event.Type, event.WashRequestID)
	}()
}

func (c *Client) publish(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
