package request

// AddCartItemRequest adds one unit of a product to a cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// AdjustCartItemRequest changes a line quantity by delta
type AdjustCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// TransferCartRequest moves a cart to another location
type TransferCartRequest struct {
	Target string `json:"target" binding:"required,max=100"`
}
