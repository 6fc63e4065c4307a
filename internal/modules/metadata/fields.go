package metadata

import (
	"fmt"

	"crmcore/internal/domain"
)

// nameField is the display-name pseudo-field. It always sits first in the
// meta list and cannot move or change group.
const nameField = "name"

// UpsertField merges a field descriptor into the module's meta by name: an
// existing field is updated in place (keeping its position and group), a new
// one is appended.
func UpsertField(m *domain.Module, f domain.FieldMeta) error {
	if err := ValidateField(f); err != nil {
		return err
	}

	for i := range m.Meta {
		if m.Meta[i].Name == f.Name {
			f.Group = m.Meta[i].Group
			m.Meta[i] = f
			pinNameFirst(m)
			return nil
		}
	}
	m.Meta = append(m.Meta, f)
	pinNameFirst(m)
	return nil
}

// MoveField removes the field from its current group list and re-inserts it
// at toIndex within toGroup, updating the field's group attribute. Moving a
// field onto its own position is a no-op.
func MoveField(m *domain.Module, fieldName, fromGroup, toGroup string, toIndex int) error {
	if fieldName == nameField {
		return fmt.Errorf("%w: the name field is not draggable", ErrValidation)
	}

	groups, order := groupLists(m)
	fromList, ok := groups[fromGroup]
	if !ok {
		return fmt.Errorf("%w: %q", ErrGroupNotFound, fromGroup)
	}

	fromIndex := -1
	var field domain.FieldMeta
	for i, f := range fromList {
		if f.Name == fieldName {
			fromIndex = i
			field = f
			break
		}
	}
	if fromIndex < 0 {
		return fmt.Errorf("%w: %q in group %q", ErrFieldNotFound, fieldName, fromGroup)
	}
	if fromGroup == toGroup && fromIndex == toIndex {
		return nil
	}

	groups[fromGroup] = append(fromList[:fromIndex], fromList[fromIndex+1:]...)

	toList, ok := groups[toGroup]
	if !ok {
		// Moving into a group with no fields yet creates it at the end.
		order = append(order, toGroup)
		toList = nil
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(toList) {
		toIndex = len(toList)
	}
	field.Group = toGroup
	toList = append(toList[:toIndex], append([]domain.FieldMeta{field}, toList[toIndex:]...)...)
	groups[toGroup] = toList

	rebuildMeta(m, groups, order)
	return nil
}

// ReorderGroups swaps the group with its immediate neighbor in the given
// direction ("up" or "down"). At either edge the index clamps and the call is
// a no-op.
func ReorderGroups(m *domain.Module, groupName, direction string) error {
	groups, order := groupLists(m)

	idx := -1
	for i, g := range order {
		if g == groupName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrGroupNotFound, groupName)
	}

	swap := idx
	switch direction {
	case "up":
		swap = idx - 1
	case "down":
		swap = idx + 1
	default:
		return fmt.Errorf("%w: direction must be up or down", ErrValidation)
	}
	if swap < 0 || swap >= len(order) {
		return nil
	}

	order[idx], order[swap] = order[swap], order[idx]
	rebuildMeta(m, groups, order)
	return nil
}

// DeleteGroup removes every field belonging to the group. There is no
// soft-delete here; callers must have confirmed the action.
func DeleteGroup(m *domain.Module, groupName string) error {
	kept := make(domain.FieldMetaList, 0, len(m.Meta))
	removed := 0
	for _, f := range m.Meta {
		if f.Group == groupName {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %q", ErrGroupNotFound, groupName)
	}
	m.Meta = kept
	return nil
}

// DedupeMeta enforces name uniqueness with last-write-wins semantics: a later
// duplicate replaces the earlier entry at its original position.
func DedupeMeta(meta domain.FieldMetaList) domain.FieldMetaList {
	out := make(domain.FieldMetaList, 0, len(meta))
	seen := make(map[string]int, len(meta))
	for _, f := range meta {
		if i, ok := seen[f.Name]; ok {
			out[i] = f
			continue
		}
		seen[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}

// ValidateField checks the per-type payload of a field descriptor.
func ValidateField(f domain.FieldMeta) error {
	if f.Name == "" {
		return fmt.Errorf("%w: field name is required", ErrValidation)
	}

	switch f.Type {
	case domain.FieldTypeSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: select field %q needs at least one option", ErrValidation, f.Name)
		}
	case domain.FieldTypeRelation:
		if f.RelateTo == "" {
			return fmt.Errorf("%w: relation field %q needs a relate_to module", ErrValidation, f.Name)
		}
		if f.RelateType != domain.RelateSingle && f.RelateType != domain.RelateMultiple {
			return fmt.Errorf("%w: relation field %q needs relate_type SINGLE or MULTIPLE", ErrValidation, f.Name)
		}
	case domain.FieldTypeNumber:
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("%w: field %q has min greater than max", ErrValidation, f.Name)
		}
	case domain.FieldTypeText, domain.FieldTypeMultilineText, domain.FieldTypeEmail, domain.FieldTypePhone:
		if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
			return fmt.Errorf("%w: field %q has min_length greater than max_length", ErrValidation, f.Name)
		}
	case domain.FieldTypeDate, domain.FieldTypeCheckBox:
		// no payload
	default:
		return fmt.Errorf("%w: unknown field type %q", ErrValidation, f.Type)
	}
	return nil
}

// groupLists partitions the meta into per-group field lists plus the distinct
// group order by first occurrence.
func groupLists(m *domain.Module) (map[string][]domain.FieldMeta, []string) {
	groups := make(map[string][]domain.FieldMeta)
	var order []string
	for _, f := range m.Meta {
		if _, ok := groups[f.Group]; !ok {
			order = append(order, f.Group)
		}
		groups[f.Group] = append(groups[f.Group], f)
	}
	return groups, order
}

func rebuildMeta(m *domain.Module, groups map[string][]domain.FieldMeta, order []string) {
	meta := make(domain.FieldMetaList, 0, len(m.Meta))
	for _, g := range order {
		meta = append(meta, groups[g]...)
	}
	m.Meta = meta
	pinNameFirst(m)
}

func pinNameFirst(m *domain.Module) {
	for i := range m.Meta {
		if m.Meta[i].Name != nameField {
			continue
		}
		if i == 0 {
			return
		}
		f := m.Meta[i]
		copy(m.Meta[1:i+1], m.Meta[0:i])
		m.Meta[0] = f
		return
	}
}
