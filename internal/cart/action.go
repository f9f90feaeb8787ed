package cart

import "floralshop/internal/model"

// Action is a cart mutation. The set of actions is closed; see Apply.
type Action interface {
	// Type returns the action's tag, used for logging.
	Type() string
	isAction()
}

// AddItem puts Item in the cart with the given Quantity. If the product is already
// present its quantity is replaced, not incremented; callers that want "one more"
// compute existing+1 before dispatching.
type AddItem struct {
	Item     Item
	Quantity int
}

// RemoveItem drops the line for ProductID. Removing an absent product is a no-op.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the quantity of an existing line. Absent products are ignored.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// SaveShippingAddress replaces the shipping address wholesale.
type SaveShippingAddress struct {
	Address model.ShippingAddress
}

// SavePaymentMethod replaces the payment method. Membership is not checked here.
type SavePaymentMethod struct {
	Method PaymentMethod
}

// Reset clears items, shipping address and payment method.
type Reset struct{}

func (AddItem) Type() string             { return "CART_ADD_ITEM" }
func (RemoveItem) Type() string          { return "CART_REMOVE_ITEM" }
func (UpdateQuantity) Type() string      { return "CART_UPDATE_QUANTITY" }
func (SaveShippingAddress) Type() string { return "SAVE_SHIPPING_ADDRESS" }
func (SavePaymentMethod) Type() string   { return "SAVE_PAYMENT_METHOD" }
func (Reset) Type() string               { return "CART_RESET" }

func (AddItem) isAction()             {}
func (RemoveItem) isAction()          {}
func (UpdateQuantity) isAction()      {}
func (SaveShippingAddress) isAction() {}
func (SavePaymentMethod) isAction()   {}
func (Reset) isAction()               {}
