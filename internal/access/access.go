// Package access decides whether a requester may perform an operation
// on a document. It is the single authority for the owner / shared /
// stranger distinction; the public-link path is a separate capability
// set that never consults the evaluator.
package access

import "pdfvault/internal/model"

// Operation is something a requester can attempt on a document.
type Operation int

const (
	View Operation = iota
	Comment
	Download
	ManageSharing
	Delete
)

func (o Operation) String() string {
	switch o {
	case View:
		return "view"
	case Comment:
		return "comment"
	case Download:
		return "download"
	case ManageSharing:
		return "manage_sharing"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Anonymous is the requester id used when no identity was presented.
const Anonymous = ""

// Role is the relationship the evaluator resolved between requester
// and document.
type Role int

const (
	RoleNone Role = iota
	RoleShared
	RoleOwner
)

// Decision is the outcome of an access check. Reason is for internal
// logging only; HTTP handlers must surface denied checks as
// "not found or access denied" so non-permitted callers cannot probe
// for document existence.
type Decision struct {
	Allowed bool
	Role    Role
	Reason  string
}

// Evaluate applies the permission rules in precedence order:
//
//  1. the owner may do everything;
//  2. a member of the shared-access set may View, Comment and Download
//     but never ManageSharing or Delete;
//  3. everyone else, including anonymous requesters, is denied.
func Evaluate(requesterID string, doc *model.Document, op Operation) Decision {
	if doc == nil {
		return Decision{Reason: "no document"}
	}
	if requesterID != Anonymous && requesterID == doc.OwnerID {
		return Decision{Allowed: true, Role: RoleOwner}
	}
	if requesterID != Anonymous && doc.IsSharedWith(requesterID) {
		switch op {
		case View, Comment, Download:
			return Decision{Allowed: true, Role: RoleShared}
		default:
			return Decision{Role: RoleShared, Reason: "operation reserved for owner"}
		}
	}
	return Decision{Reason: "requester has no relationship to document"}
}

// LinkOperations is the fixed capability set granted to anyone holding
// a document's public link token. The link is the only secret: no
// bearer token is required, and nothing beyond viewing and downloading
// is ever granted through it.
func LinkOperations() []Operation {
	return []Operation{View, Download}
}

// LinkAllows reports whether the public-link capability covers op.
func LinkAllows(op Operation) bool {
	return op == View || op == Download
}
