package content

import "slices"

// Schema describes how one entity kind maps onto its table: which
// statuses it supports, which status counts as publicly active, how
// listings are ordered, which counter column it exposes, and which
// optional columns exist.
type Schema struct {
	Kind          string
	Table         string
	Statuses      []Status
	DefaultStatus Status
	ActiveStatus  Status
	OrderColumn   string // "created_at", or "scheduled_at" for time-scheduled kinds
	CounterColumn string
	HasGallery    bool
	HasDimensions bool
	HasSchedule   bool
}

// ValidStatus reports whether s is a member of the kind's status set.
func (s Schema) ValidStatus(status Status) bool {
	return slices.Contains(s.Statuses, status)
}

var editorialStatuses = []Status{StatusDraft, StatusPublished, StatusArchived}

// registry holds the nine entity kinds sharing the CRUD contract.
var registry = map[string]Schema{
	"blogs": {
		Kind:          "blogs",
		Table:         "blogs",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "views",
	},
	"assignments": {
		Kind:          "assignments",
		Table:         "assignments",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "download_count",
	},
	"help-articles": {
		Kind:          "help-articles",
		Table:         "help_articles",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "helpful_votes",
	},
	"newsletters": {
		Kind:          "newsletters",
		Table:         "newsletters",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "download_count",
	},
	"products": {
		Kind:          "products",
		Table:         "products",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "views",
		HasGallery:    true,
		HasDimensions: true,
	},
	"reports": {
		Kind:          "reports",
		Table:         "reports",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "download_count",
	},
	"tutorials": {
		Kind:          "tutorials",
		Table:         "tutorials",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "views",
	},
	"webinars": {
		Kind:          "webinars",
		Table:         "webinars",
		Statuses:      []Status{StatusUpcoming, StatusCompleted, StatusArchived},
		DefaultStatus: StatusUpcoming,
		ActiveStatus:  StatusUpcoming,
		OrderColumn:   "scheduled_at",
		CounterColumn: "registered_participants",
		HasSchedule:   true,
	},
	"whitepapers": {
		Kind:          "whitepapers",
		Table:         "whitepapers",
		Statuses:      editorialStatuses,
		DefaultStatus: StatusDraft,
		ActiveStatus:  StatusPublished,
		OrderColumn:   "created_at",
		CounterColumn: "download_count",
	},
}

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind string) (Schema, bool) {
	s, ok := registry[kind]
	return s, ok
}

// Kinds returns all registered kind names in stable order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
