// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns; each model converts with ToDomain / FromDomain.
//
// Structure:
// - base.go: shared timestamp columns
// - customer.go: customers
// - shop.go: shops and channels
// - catalog.go: categories, items and SKUs
package models
