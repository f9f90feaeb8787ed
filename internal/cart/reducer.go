package cart

import "floralshop/internal/model"

// Apply returns the cart that results from applying action to state.
// It has no side effects and never modifies state's backing arrays.
// Stock is not checked here; that happens before dispatch.
func Apply(state Cart, action Action) Cart {
	switch a := action.(type) {
	case AddItem:
		item := a.Item
		item.Quantity = a.Quantity
		items := cloneItems(state.Items)
		// An existing line keeps its position but takes the fresh product data.
		if i := indexOf(items, item.ProductID); i >= 0 {
			items[i] = item
		} else {
			items = append(items, item)
		}
		state.Items = items
		return state

	case RemoveItem:
		items := make([]Item, 0, len(state.Items))
		for _, it := range state.Items {
			if it.ProductID != a.ProductID {
				items = append(items, it)
			}
		}
		state.Items = items
		return state

	case UpdateQuantity:
		items := cloneItems(state.Items)
		if i := indexOf(items, a.ProductID); i >= 0 {
			items[i].Quantity = a.Quantity
		}
		state.Items = items
		return state

	case SaveShippingAddress:
		state.Items = cloneItems(state.Items)
		state.ShippingAddress = a.Address
		return state

	case SavePaymentMethod:
		state.Items = cloneItems(state.Items)
		state.PaymentMethod = a.Method
		return state

	case Reset:
		return Cart{Items: []Item{}, ShippingAddress: model.ShippingAddress{}}
	}

	return state
}

func indexOf(items []Item, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return out
}
