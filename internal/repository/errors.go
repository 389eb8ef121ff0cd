// Package repository defines the errors shared by storage implementations.
package repository

import "errors"

var (
	// ErrProductNotFound is returned when a product id is not tracked.
	ErrProductNotFound = errors.New("product not found")
	// ErrStateNotFound is returned when a product has never been
	// successfully observed.
	ErrStateNotFound = errors.New("observed state not found")
)
