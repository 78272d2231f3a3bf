package lead

import (
	"time"
)

const (
	VehicleSedan = "sedan"
	VehicleSUV   = "suv"
	VehicleTruck = "truck"
)

// ValidVehicleType reports whether s is one of the supported vehicle types.
func ValidVehicleType(s string) bool {
	switch s {
	case VehicleSedan, VehicleSUV, VehicleTruck:
		return true
	}
	return false
}

type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	OriginZip   string    `json:"origin_zip"`
	DestZip     string    `json:"dest_zip"`
	VehicleType string    `json:"vehicle_type"` // sedan | suv | truck
	Operable    bool      `json:"operable"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows a lead listing. Zero values mean "no constraint".
type Filter struct {
	CreatedBy   string
	OriginZip   string
	DestZip     string
	VehicleType string
	Operable    *bool
	Limit       int
	Offset      int
}
