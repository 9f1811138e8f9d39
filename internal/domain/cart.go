package domain

import "errors"

var (
	// ErrMixedSellers is returned when a line from a second restaurant is
	// added to a cart; orders are single-restaurant.
	ErrMixedSellers = errors.New("cart lines must belong to a single seller")

	ErrInvalidQuantity = errors.New("cart line quantity must be at least 1")
)

type CartLine struct {
	ProductID uint
	SellerID  uint
	Name      string
	Price     float64
	Quantity  int
	ImageRef  *string
}

// Cart is an immutable value object: every operation returns a new snapshot
// and leaves the receiver untouched.
type Cart struct {
	UserID uint
	Lines  []CartLine
}

func (c Cart) clone() Cart {
	out := Cart{UserID: c.UserID}
	if len(c.Lines) > 0 {
		out.Lines = make([]CartLine, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}

// Add returns a snapshot with the line added. Adding a product that is
// already in the cart increases its quantity.
func (c Cart) Add(line CartLine) (Cart, error) {
	if line.Quantity < 1 {
		return c, ErrInvalidQuantity
	}
	for _, l := range c.Lines {
		if l.SellerID != line.SellerID {
			return c, ErrMixedSellers
		}
	}

	next := c.clone()
	for i, l := range next.Lines {
		if l.ProductID == line.ProductID {
			next.Lines[i].Quantity += line.Quantity
			return next, nil
		}
	}
	next.Lines = append(next.Lines, line)
	return next, nil
}

// Decrement returns a snapshot with the product's quantity reduced by one;
// the line disappears when it reaches zero. Unknown products are a no-op.
func (c Cart) Decrement(productID uint) Cart {
	next := c.clone()
	for i, l := range next.Lines {
		if l.ProductID != productID {
			continue
		}
		if l.Quantity <= 1 {
			next.Lines = append(next.Lines[:i], next.Lines[i+1:]...)
		} else {
			next.Lines[i].Quantity--
		}
		break
	}
	return next
}

// RemoveAll returns a snapshot without the product, regardless of quantity.
func (c Cart) RemoveAll(productID uint) Cart {
	next := Cart{UserID: c.UserID}
	for _, l := range c.Lines {
		if l.ProductID != productID {
			next.Lines = append(next.Lines, l)
		}
	}
	return next
}

func (c Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func (c Cart) Find(productID uint) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}
