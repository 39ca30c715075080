package models

type CreateOrderRequest struct {
	Customer   Customer   `json:"customer"`
	Photos     []Photo    `json:"photos"`
	Selections Selections `json:"selections"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetDeliveryRequest struct {
	DeliveryURL string `json:"delivery_url" binding:"required"`
}
