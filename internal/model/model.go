package model

// Package model contains domain models/data structures.
// No business logic here; permission rules live in internal/access.
