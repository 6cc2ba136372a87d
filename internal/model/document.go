package model

import "time"

// Document represents a stored PDF in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Filename    string `json:"filename"`
	StoragePath string `json:"-"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	// LinkToken is the permanent public-link capability minted at upload
	// time. Anyone holding it may view and download the document.
	LinkToken string `json:"link_token"`
	// SharedWith holds the ids of users granted non-owner access.
	// Never contains OwnerID, and each id at most once.
	SharedWith []string  `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsSharedWith reports whether id is in the document's shared-access set.
func (d *Document) IsSharedWith(id string) bool {
	for _, uid := range d.SharedWith {
		if uid == id {
			return true
		}
	}
	return false
}
