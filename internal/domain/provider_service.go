package domain

import (
	"time"
)

type ProviderServiceStatus string

const (
	ProviderServiceActive   ProviderServiceStatus = "ACTIVE"
	ProviderServiceInactive ProviderServiceStatus = "INACTIVE"
)

type ProviderService struct {
	ID          int64                 `json:"id"`
	ProviderID  int64                 `json:"providerId"`
	Name        string                `json:"name"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	Status      ProviderServiceStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	Version     int32                 `json:"-"`
}
