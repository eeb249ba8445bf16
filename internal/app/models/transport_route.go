package models

// TransportRoute represents a campus transport route
type TransportRoute struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	VehicleNo string       `json:"vehicleNo"`
	Stops     []string     `json:"stops"`
	Fare      float64      `json:"fare"`
	Status    EntityStatus `json:"status"`
}
