// Package repository provides data access layer implementations for the application.
package repository

import (
	"gorm.io/gorm"
)

// ownerFields limits preloaded user rows to the publicly projected columns.
// Every view that embeds an owner exposes exactly this set.
func ownerFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "full_name", "avatar")
}
