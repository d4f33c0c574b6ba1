package cart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlots is the historical cart size every new user starts with.
const DefaultSlots = 300

var ErrInvalidSlot = errors.New("invalid cart slot")

// Cart maps a slot index, written in decimal, to the quantity held.
type Cart map[string]int

func New(slots int) Cart {
	c := make(Cart, slots)
	for i := 0; i < slots; i++ {
		c[strconv.Itoa(i)] = 0
	}
	return c
}

// ParseSlot normalises a raw item id into a slot key within [0, slots).
func ParseSlot(raw string, slots int) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty item id: %w", ErrInvalidSlot)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("item id %q is not an integer: %w", raw, ErrInvalidSlot)
	}
	if n < 0 || n >= slots {
		return "", fmt.Errorf("item id %d out of range [0,%d): %w", n, slots, ErrInvalidSlot)
	}
	return strconv.Itoa(n), nil
}

// Add creates the slot when a legacy cart lacks it.
func (c Cart) Add(slot string) int {
	c[slot]++
	return c[slot]
}

// Remove reports whether the count changed.
func (c Cart) Remove(slot string) bool {
	if c[slot] > 0 {
		c[slot]--
		return true
	}
	return false
}

func (c Cart) Count(slot string) int {
	return c[slot]
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
