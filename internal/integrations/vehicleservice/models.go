package vehicleservice

// Vehicle модель автомобиля из VehicleService
type Vehicle struct {
	ID           int64  `json:"id"`
	ClientID     int64  `json:"client_id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Year         *int   `json:"year,omitempty"`
}

// ErrorResponse модель ошибки от VehicleService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
