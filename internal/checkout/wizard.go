// Package checkout gates navigation through the Shipping -> Payment -> PlaceOrder wizard.
// The wizard keeps no state; every decision is made from the requested step and the cart.
package checkout

import (
	"fmt"
	"strings"

	"floralshop/internal/cart"
	"floralshop/internal/model"
)

// Step is a wizard position.
type Step int

const (
	StepCart Step = iota
	StepShipping
	StepPayment
	StepPlaceOrder
)

var stepNames = map[Step]string{
	StepCart:       "cart",
	StepShipping:   "shipping",
	StepPayment:    "payment",
	StepPlaceOrder: "placeorder",
}

// String returns the route name of the step.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// MarshalText renders the step as its route name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStep maps a route name to a Step.
func ParseStep(name string) (Step, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return StepCart, model.NewValidationError(model.ErrCodeInvalidCheckoutStep, fmt.Sprintf("unknown checkout step %q", name))
}

// Decision is where the customer ends up after asking for a step.
type Decision struct {
	Requested  Step   `json:"requested"`
	Step       Step   `json:"step"`
	Redirected bool   `json:"redirected"`
	Reason     string `json:"reason,omitempty"`
}

// ShippingComplete reports whether the shipping step has been filled in.
func ShippingComplete(c cart.Cart) bool {
	return c.ShippingAddress.Address != ""
}

// PaymentComplete reports whether a payment method has been chosen.
func PaymentComplete(c cart.Cart) bool {
	return c.PaymentMethod != ""
}

// Enter decides which step the customer lands on when navigating to target.
// A step whose precondition fails redirects to the step that satisfies it;
// this is a soft failure, not an error. Going backward is always allowed.
func Enter(target Step, c cart.Cart) Decision {
	d := Decision{Requested: target, Step: target}

	switch target {
	case StepPayment:
		if !ShippingComplete(c) {
			d.redirect(StepShipping, "shipping address required")
		}
	case StepPlaceOrder:
		if !ShippingComplete(c) {
			d.redirect(StepShipping, "shipping address required")
		} else if !PaymentComplete(c) {
			d.redirect(StepPayment, "payment method required")
		}
	}

	return d
}

func (d *Decision) redirect(to Step, reason string) {
	d.Step = to
	d.Redirected = true
	d.Reason = reason
}
