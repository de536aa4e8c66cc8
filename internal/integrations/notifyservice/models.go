package notifyservice

import "time"

// Event types
const (
	EventRequestCreated    = "wash_request.created"
	EventRequestAccepted   = "wash_request.accepted"
	EventProviderCancelled = "wash_request.provider_cancelled"
)

// Event событие жизненного цикла заявки для рассылки уведомлений
type Event struct {
	Type            string    `json:"type"`
	WashRequestID   int64     `json:"wash_request_id"`
	ClientCompanyID int64     `json:"client_company_id"`
	ProviderID      *int64    `json:"provider_id,omitempty"`
	DateTime        time.Time `json:"date_time"`
}
