package metadata

import (
	"fmt"

	"crmcore/internal/domain"
)

// compatibleTargets says which target field types a source type may populate
// during cross-module conversion. The table is deliberately asymmetric and
// one-directional: Phone may land in an Email field (phone numbers are often
// kept as free text there) but not the other way around.
var compatibleTargets = map[domain.FieldType][]domain.FieldType{
	domain.FieldTypeDate:          {domain.FieldTypeDate},
	domain.FieldTypeCheckBox:      {domain.FieldTypeCheckBox},
	domain.FieldTypeEmail:         {domain.FieldTypeEmail, domain.FieldTypeText, domain.FieldTypeMultilineText},
	domain.FieldTypeMultilineText: {domain.FieldTypeMultilineText},
	domain.FieldTypeNumber:        {domain.FieldTypeNumber, domain.FieldTypeText, domain.FieldTypeMultilineText},
	domain.FieldTypePhone:         {domain.FieldTypeEmail, domain.FieldTypeText, domain.FieldTypeMultilineText},
	domain.FieldTypeRelation:      {domain.FieldTypeRelation},
	domain.FieldTypeSelect:        {domain.FieldTypeText, domain.FieldTypeMultilineText},
	domain.FieldTypeText:          {domain.FieldTypeText, domain.FieldTypeMultilineText},
}

// CanConvert reports whether a source field type may populate a target field
// type.
func CanConvert(src, dst domain.FieldType) bool {
	for _, t := range compatibleTargets[src] {
		if t == dst {
			return true
		}
	}
	return false
}

// CompatibleTargetFields returns every field of the target module that the
// given source field may be mapped onto.
func CompatibleTargetFields(src domain.FieldMeta, target *domain.Module) []domain.FieldMeta {
	out := make([]domain.FieldMeta, 0)
	for _, f := range target.Meta {
		if CanConvert(src.Type, f.Type) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateMapping checks every source→target pair of a convert mapping
// against both modules' metadata and the compatibility table.
func ValidateMapping(source, target *domain.Module, cm domain.ConvertMeta) error {
	for srcName, dstName := range cm.Meta {
		srcField := source.Field(srcName)
		if srcField == nil {
			return fmt.Errorf("%w: source field %q not in module %q", ErrFieldNotFound, srcName, source.Name)
		}
		dstField := target.Field(dstName)
		if dstField == nil {
			return fmt.Errorf("%w: target field %q not in module %q", ErrFieldNotFound, dstName, target.Name)
		}
		if !CanConvert(srcField.Type, dstField.Type) {
			return fmt.Errorf("%w: %s (%s) -> %s (%s)",
				ErrIncompatibleTypes, srcName, srcField.Type, dstName, dstField.Type)
		}
	}
	return nil
}

// MapRecord applies a validated convert mapping to a source record, producing
// the payload for the target entity. Source values without a mapping entry
// are dropped; mapped fields absent from the record are skipped.
func MapRecord(source, target *domain.Module, cm domain.ConvertMeta, values map[string]any) (map[string]any, error) {
	if err := ValidateMapping(source, target, cm); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(cm.Meta))
	for srcName, dstName := range cm.Meta {
		v, ok := values[srcName]
		if !ok {
			continue
		}
		out[dstName] = v
	}
	return out, nil
}
