package dto

// CreateTransportRouteRequest represents transport route creation data
type CreateTransportRouteRequest struct {
	Name      string   `json:"name" binding:"required"`
	VehicleNo string   `json:"vehicleNo" binding:"required"`
	Stops     []string `json:"stops" binding:"required,min=1"`
	Fare      float64  `json:"fare" binding:"required,gt=0"`
}

// UpdateTransportRouteRequest represents transport route update data
type UpdateTransportRouteRequest struct {
	Name      string   `json:"name" binding:"required"`
	VehicleNo string   `json:"vehicleNo" binding:"required"`
	Stops     []string `json:"stops" binding:"required,min=1"`
	Fare      float64  `json:"fare" binding:"required,gt=0"`
}
