package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrNotFound is returned by implementations when no row matches.
var ErrNotFound = errors.New("record not found")
