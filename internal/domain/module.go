package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldTypeText          FieldType = "Text"
	FieldTypeMultilineText FieldType = "MultilineText"
	FieldTypeEmail         FieldType = "Email"
	FieldTypePhone         FieldType = "Phone"
	FieldTypeNumber        FieldType = "Number"
	FieldTypeDate          FieldType = "Date"
	FieldTypeSelect        FieldType = "Select"
	FieldTypeRelation      FieldType = "Relation"
	FieldTypeCheckBox      FieldType = "CheckBox"
)

type RelateType string

const (
	RelateSingle   RelateType = "SINGLE"
	RelateMultiple RelateType = "MULTIPLE"
)

// Visibility controls on which views a field is rendered.
type Visibility struct {
	Overview bool `json:"overview"`
	Update   bool `json:"update"`
	Create   bool `json:"create"`
	Detail   bool `json:"detail"`
}

// FieldMeta describes one runtime-defined field of a module. Which optional
// payload applies depends on Type: Select carries Options, Relation carries
// RelateTo/RelateType, Number carries Min/Max, text kinds carry
// MinLength/MaxLength.
type FieldMeta struct {
	Name       string     `json:"name" validate:"required"`
	Group      string     `json:"group"`
	Required   bool       `json:"required"`
	Type       FieldType  `json:"type" validate:"required"`
	Visibility Visibility `json:"visibility"`

	Options    []string   `json:"options,omitempty"`
	RelateTo   string     `json:"relate_to,omitempty"`
	RelateType RelateType `json:"relate_type,omitempty"`
	Min        *float64   `json:"min,omitempty"`
	Max        *float64   `json:"max,omitempty"`
	MinLength  *int       `json:"min_length,omitempty"`
	MaxLength  *int       `json:"max_length,omitempty"`
}

type FieldMetaList []FieldMeta

func (l FieldMetaList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FieldMetaList) Scan(src any) error {
	return scanJSON(src, l)
}

// ConvertMeta maps fields of a source module onto fields of this module
// during generic cross-module conversion. At most one entry per Source.
type ConvertMeta struct {
	Source                  string            `json:"source" validate:"required"`
	Meta                    map[string]string `json:"meta"`
	ShouldConvertNote       bool              `json:"should_convert_note"`
	ShouldConvertAttachment bool              `json:"should_convert_attachment"`
}

type ConvertMetaList []ConvertMeta

func (l ConvertMetaList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ConvertMetaList) Scan(src any) error {
	return scanJSON(src, l)
}

// KanbanMeta configures board aggregation for a module (for example sum of
// amount per deal stage).
type KanbanMeta struct {
	Field       string `json:"field"`
	AggregateBy string `json:"aggregate_by"`
	Metric      string `json:"metric"`
}

func (k *KanbanMeta) Value() (driver.Value, error) {
	if k == nil {
		return nil, nil
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (k *KanbanMeta) Scan(src any) error {
	return scanJSON(src, k)
}

// Module is the runtime schema of one entity type. Seeded once for the four
// default modules and mutated only through the customization endpoints.
type Module struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	Name        string          `json:"name" gorm:"uniqueIndex" validate:"required"`
	Meta        FieldMetaList   `json:"meta" gorm:"type:json"`
	ConvertMeta ConvertMetaList `json:"convert_meta,omitempty" gorm:"type:json"`
	KanbanMeta  *KanbanMeta     `json:"kanban_meta,omitempty" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Field returns the field descriptor with the given name, or nil.
func (m *Module) Field(name string) *FieldMeta {
	for i := range m.Meta {
		if m.Meta[i].Name == name {
			return &m.Meta[i]
		}
	}
	return nil
}

// ConvertMetaFor returns the convert mapping whose source is the given
// module name, or nil.
func (m *Module) ConvertMetaFor(source string) *ConvertMeta {
	for i := range m.ConvertMeta {
		if m.ConvertMeta[i].Source == source {
			return &m.ConvertMeta[i]
		}
	}
	return nil
}
