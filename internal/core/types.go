package core

import "time"

const (
	AppName    = "contextd"
	AppVersion = "0.1.0"
)

// MemoryType tags a stored business fact with its broad category.
// The set is open-ended: unrecognized values are carried through and
// rendered with the raw type string as their section label.
type MemoryType string

const (
	MemoryClientContext    MemoryType = "CLIENT_CONTEXT"
	MemoryProjectContext   MemoryType = "PROJECT_CONTEXT"
	MemoryUserPreference   MemoryType = "USER_PREFERENCE"
	MemoryFactualStatement MemoryType = "FACTUAL_STATEMENT"
)

// MemoryRecord is a tenant-scoped business fact captured by the platform.
// Records are shared tenant-wide; AttributedTo only identifies the author
// and is never used for filtering.
type MemoryRecord struct {
	ID           int64      `json:"id"`
	TenantID     string     `json:"tenant_id"`
	Type         MemoryType `json:"type"`
	Content      string     `json:"content"`
	Subject      string     `json:"subject,omitempty"`
	AttributedTo string     `json:"attributed_to,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Relationship describes how a candidate concept relates to a reference
// topic the tenant already knows about.
type Relationship string

const (
	RelPrerequisite Relationship = "PREREQUISITE"
	RelRelated      Relationship = "RELATED"
	RelAdvanced     Relationship = "ADVANCED"
)

// Owner-tier roles get a lowered discovery threshold.
const (
	RolePlatformOwner = "PLATFORM_OWNER"
	RoleTenantOwner   = "TENANT_OWNER"
)
