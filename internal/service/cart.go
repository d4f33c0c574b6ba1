package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
)

// CartService does a plain read-modify-write of the cart map. Concurrent
// updates for the same user race and the last write wins.
type CartService struct {
	Users  store.UserStore
	Events mykafka.Publisher
	Slots  int
}

func (s *CartService) slots() int {
	if s.Slots <= 0 {
		return cart.DefaultSlots
	}
	return s.Slots
}

func (s *CartService) load(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	if u.CartData == nil {
		u.CartData = cart.Cart{}
	}
	return u, nil
}

func (s *CartService) save(ctx context.Context, userID string, c cart.Cart) error {
	if err := s.Users.UpdateCart(ctx, userID, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CartService) Add(ctx context.Context, userID, itemID string) error {
	slot, err := cart.ParseSlot(itemID, s.slots())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	count := u.CartData.Add(slot)
	if err := s.save(ctx, userID, u.CartData); err != nil {
		return err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
		"type":   "cart_item_added",
		"userID": userID,
		"itemID": slot,
		"count":  count,
	})
	return nil
}

// Remove is a no-op on an empty slot, but the cart is still written back.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	slot, err := cart.ParseSlot(itemID, s.slots())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	changed := u.CartData.Remove(slot)
	if err := s.save(ctx, userID, u.CartData); err != nil {
		return err
	}

	if changed {
		publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
			"type":   "cart_item_removed",
			"userID": userID,
			"itemID": slot,
			"count":  u.CartData.Count(slot),
		})
	}
	return nil
}

func (s *CartService) Get(ctx context.Context, userID string) (cart.Cart, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.CartData, nil
}
