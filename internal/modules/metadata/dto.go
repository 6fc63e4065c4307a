package metadata

import "crmcore/internal/domain"

// ReplaceModuleRequest is the full-document payload of PATCH /modules/:id.
// The caller sends the complete desired meta array, not a field-level patch.
type ReplaceModuleRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Meta        domain.FieldMetaList   `json:"meta" binding:"required"`
	ConvertMeta domain.ConvertMetaList `json:"convert_meta,omitempty"`
	KanbanMeta  *domain.KanbanMeta     `json:"kanban_meta,omitempty"`
}

type MoveFieldRequest struct {
	Field     string `json:"field" binding:"required"`
	FromGroup string `json:"from_group"`
	ToGroup   string `json:"to_group"`
	ToIndex   int    `json:"to_index"`
}

type ReorderGroupsRequest struct {
	Group     string `json:"group" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
