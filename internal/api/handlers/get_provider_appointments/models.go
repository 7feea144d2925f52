package get_provider_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров.
// Пустые параметры означают отсутствие фильтра
func ToServiceRequest(providerID int64, pageStr, limitStr, dateStr, statusStr string) (*models.GetProviderAppointmentsRequest, error) {
	req := &models.GetProviderAppointmentsRequest{
		ProviderID: providerID,
		Page:       domain.DefaultPage,
		Limit:      domain.DefaultLimit,
	}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, strconv.ErrSyntax
		}
		req.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return nil, strconv.ErrSyntax
		}
		req.Limit = limit
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
