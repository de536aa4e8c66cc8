package attach_invoice

import (
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
)

// AttachInvoiceRequest HTTP request model
type AttachInvoiceRequest struct {
	InvoiceURL string `json:"invoiceUrl"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AttachInvoiceRequest) ToServiceRequest(providerID int64) *models.AttachInvoiceRequest {
	return &models.AttachInvoiceRequest{
		ProviderID: providerID,
		InvoiceURL: r.InvoiceURL,
	}
}
