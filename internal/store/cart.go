package store

import (
	"github.com/shopspring/decimal"

	"parampara-storefront/internal/models"
)

// AddToCart adds one unit of product, creating its line at the product's
// effective price if needed. The cart is client-side only; no API call.
func (s *Store) AddToCart(product models.Food) {
	s.mu.Lock()
	if i := s.lineIndexLocked(product.FoodID); i >= 0 {
		s.cart[i].Quantity++
	} else {
		s.cart = append(s.cart, CartLine{
			ProductID:    product.FoodID,
			Name:         product.Name,
			UnitPrice:    product.EffectivePrice(),
			Quantity:     1,
			ImageURL:     product.ImageURL,
			CategoryName: product.CategoryName,
		})
	}
	s.persistCartLocked()
	s.unlockAndNotify()
}

// RemoveFromCart deletes the product's line if there is one.
func (s *Store) RemoveFromCart(productID int) {
	s.mu.Lock()
	s.removeLineLocked(productID)
	s.persistCartLocked()
	s.unlockAndNotify()
}

// UpdateQuantity sets the quantity of an existing line; quantity <= 0 removes
// it. It reports whether the cart held the product. Updating an absent
// product changes nothing.
func (s *Store) UpdateQuantity(productID, quantity int) bool {
	s.mu.Lock()
	i := s.lineIndexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	if quantity <= 0 {
		s.removeLineLocked(productID)
	} else {
		s.cart[i].Quantity = quantity
	}
	s.persistCartLocked()
	s.unlockAndNotify()
	return true
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.persistCartLocked()
	s.unlockAndNotify()
}

func (s *Store) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.cart...)
}

// CartTotal is computed from the current lines on every call.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

// CartCount is the number of units across all lines.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartCount(s.cart)
}

func (s *Store) BillSummary() BillSummary {
	s.mu.Lock()
	subtotal := cartSubtotal(s.cart)
	s.mu.Unlock()

	shipping := models.ShippingFor(subtotal)
	remaining := decimal.Zero
	if subtotal.Sign() > 0 {
		remaining = decimal.NewFromInt(models.FreeShippingThreshold).Sub(subtotal)
		if remaining.Sign() < 0 {
			remaining = decimal.Zero
		}
	}

	return BillSummary{
		Subtotal:             models.RoundMoney(subtotal),
		Shipping:             models.RoundMoney(shipping),
		Total:                models.RoundMoney(subtotal.Add(shipping)),
		AmountToFreeShipping: models.RoundMoney(remaining),
	}
}

func (s *Store) lineIndexLocked(productID int) int {
	for i, line := range s.cart {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeLineLocked(productID int) {
	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	s.cart = kept
}

func cartSubtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(models.LineTotal(line.UnitPrice, line.Quantity))
	}
	return total
}

func cartTotal(lines []CartLine) float64 {
	return models.RoundMoney(cartSubtotal(lines))
}

func cartCount(lines []CartLine) int {
	n := 0
	for _, line := range lines {
		n += line.Quantity
	}
	return n
}

func nonNilCart(lines []CartLine) []CartLine {
	if lines == nil {
		return []CartLine{}
	}
	return lines
}
