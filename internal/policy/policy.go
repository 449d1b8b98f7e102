// Package policy holds the per-row access rules for every resource a client
// can touch. Services call Authorize for rows they hold in memory and add the
// Visible / Writable scopes to every query so rows a requester may not see are
// never loaded.
package policy

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/google/uuid"
)

// ErrDenied carries no reason.
var ErrDenied = errors.New("not permitted")

type Resource string

const (
	ResourceProfile       Resource = "profile"
	ResourceViolationKind Resource = "violation_kind"
	ResourceReport        Resource = "report"
	ResourceEvidence      Resource = "evidence"
)

type Action string

const (
	ActionSelect Action = "select"
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Row is the part of a stored row the rules look at.
type Row struct {
	OwnerID uuid.UUID
	Status  string
	Key     string
}

type rule func(requester uuid.UUID, row Row) bool

func anyone(uuid.UUID, Row) bool { return true }

func owner(requester uuid.UUID, row Row) bool {
	return requester != uuid.Nil && row.OwnerID == requester
}

func ownerWhilePending(requester uuid.UUID, row Row) bool {
	return owner(requester, row) && row.Status == models.StatusPending
}

func ownPrefix(requester uuid.UUID, row Row) bool {
	if requester == uuid.Nil || row.Key == "" {
		return false
	}
	return strings.HasPrefix(row.Key, requester.String()+"/")
}

// Missing entries deny. Profiles are inserted by account provisioning, not by
// clients; catalog rows and report status changes belong to administration.
var rules = map[Resource]map[Action]rule{
	ResourceProfile: {
		ActionSelect: owner,
		ActionUpdate: owner,
	},
	ResourceViolationKind: {
		ActionSelect: anyone,
	},
	ResourceReport: {
		ActionSelect: owner,
		ActionInsert: owner,
		ActionUpdate: ownerWhilePending,
	},
	ResourceEvidence: {
		ActionSelect: ownPrefix,
		ActionInsert: ownPrefix,
	},
}

func Allowed(res Resource, act Action, requester uuid.UUID, row Row) bool {
	r, ok := rules[res][act]
	if !ok {
		return false
	}
	return r(requester, row)
}

func Authorize(res Resource, act Action, requester uuid.UUID, row Row) error {
	if !Allowed(res, act, requester, row) {
		return ErrDenied
	}
	return nil
}
