// Package domain defines the core models shared across the repository,
// service, and transport layers. This file holds the lead payload written
// to the remote lead store. The record itself is owned remotely; this
// service only constructs it and reads back the assigned id.
package domain

import "time"

// Lead is the payload created in the remote lead store once a submission
// passes cooldown, validation, and the duplicate guard.
type Lead struct {
	ID        string            `json:"id,omitempty"`
	Name      string            `json:"name"`
	Mobile    string            `json:"mobile"`
	Email     string            `json:"email"`
	Message   string            `json:"message,omitempty"`
	Source    string            `json:"source"`
	Status    string            `json:"status"`
	Extra     map[string]string `json:"extra,omitempty"`
	Tracking  *TrackingSnapshot `json:"tracking,omitempty"`
	Device    *DeviceInfo       `json:"device,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// LeadStatusNew is the status assigned to every freshly created lead.
const LeadStatusNew = "new"
