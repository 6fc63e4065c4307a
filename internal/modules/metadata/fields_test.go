package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmcore/internal/domain"
)

func metaNames(m *domain.Module) []string {
	names := make([]string, 0, len(m.Meta))
	for _, f := range m.Meta {
		names = append(names, f.Name)
	}
	return names
}

func TestUpsertField_AppendsNewField(t *testing.T) {
	m := leadModule()

	err := UpsertField(m, domain.FieldMeta{
		Name:  "budget",
		Group: "Scoring",
		Type:  domain.FieldTypeNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "email", "phone_num", "score", "signup_date", "budget"}, metaNames(m))
}

func TestUpsertField_UpdatesInPlaceKeepingGroup(t *testing.T) {
	m := leadModule()

	err := UpsertField(m, domain.FieldMeta{
		Name:  "email",
		Group: "Somewhere Else",
		Type:  domain.FieldTypeText,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "email", "phone_num", "score", "signup_date"}, metaNames(m))
	f := m.Field("email")
	require.NotNil(t, f)
	assert.Equal(t, domain.FieldTypeText, f.Type)
	assert.Equal(t, "Lead Information", f.Group, "upsert keeps the existing group")
}

func TestUpsertField_RejectsBadPayload(t *testing.T) {
	m := leadModule()

	err := UpsertField(m, domain.FieldMeta{Name: "priority", Type: domain.FieldTypeSelect})
	assert.ErrorIs(t, err, ErrValidation, "select without options")

	err = UpsertField(m, domain.FieldMeta{Name: "", Type: domain.FieldTypeText})
	assert.ErrorIs(t, err, ErrValidation)

	err = UpsertField(m, domain.FieldMeta{Name: "owner", Type: domain.FieldTypeRelation})
	assert.ErrorIs(t, err, ErrValidation, "relation without relate_to")
}

func TestMoveField_WithinGroup(t *testing.T) {
	m := leadModule()

	err := MoveField(m, "phone_num", "Lead Information", "Lead Information", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "phone_num", "email", "score", "signup_date"}, metaNames(m))
}

func TestMoveField_AcrossGroups(t *testing.T) {
	m := leadModule()

	err := MoveField(m, "email", "Lead Information", "Scoring", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "phone_num", "email", "score", "signup_date"}, metaNames(m))
	f := m.Field("email")
	assert.Equal(t, "Scoring", f.Group)
}

func TestMoveField_SamePositionIsNoop(t *testing.T) {
	m := leadModule()
	before := metaNames(m)

	err := MoveField(m, "email", "Lead Information", "Lead Information", 1)
	require.NoError(t, err)
	assert.Equal(t, before, metaNames(m))
}

func TestMoveField_NameFieldIsNotDraggable(t *testing.T) {
	m := leadModule()
	err := MoveField(m, "name", "Lead Information", "Scoring", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReorderGroups_Down(t *testing.T) {
	m := leadModule()

	err := ReorderGroups(m, "Lead Information", "down")
	require.NoError(t, err)

	// Scoring fields now precede Lead Information fields, with the name
	// pseudo-field still pinned first.
	assert.Equal(t, []string{"name", "score", "signup_date", "email", "phone_num"}, metaNames(m))
}

func TestReorderGroups_EdgeClampIsNoop(t *testing.T) {
	m := leadModule()
	before := metaNames(m)

	require.NoError(t, ReorderGroups(m, "Lead Information", "up"))
	assert.Equal(t, before, metaNames(m))

	require.NoError(t, ReorderGroups(m, "Scoring", "down"))
	assert.Equal(t, before, metaNames(m))
}

func TestReorderGroups_UnknownGroup(t *testing.T) {
	m := leadModule()
	err := ReorderGroups(m, "Nope", "up")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDeleteGroup(t *testing.T) {
	m := leadModule()

	err := DeleteGroup(m, "Scoring")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email", "phone_num"}, metaNames(m))

	err = DeleteGroup(m, "Scoring")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDedupeMeta_LastWriteWins(t *testing.T) {
	meta := domain.FieldMetaList{
		{Name: "name", Type: domain.FieldTypeText},
		{Name: "email", Type: domain.FieldTypeEmail},
		{Name: "email", Type: domain.FieldTypeText, Group: "Other"},
		{Name: "notes", Type: domain.FieldTypeMultilineText},
	}

	out := DedupeMeta(meta)

	require.Len(t, out, 3)
	assert.Equal(t, "email", out[1].Name)
	assert.Equal(t, domain.FieldTypeText, out[1].Type, "later duplicate wins")
	assert.Equal(t, "Other", out[1].Group)
}

func TestPinNameFirst(t *testing.T) {
	m := &domain.Module{
		Meta: domain.FieldMetaList{
			{Name: "email", Type: domain.FieldTypeEmail},
			{Name: "name", Type: domain.FieldTypeText},
		},
	}

	require.NoError(t, UpsertField(m, domain.FieldMeta{Name: "phone", Type: domain.FieldTypePhone}))
	assert.Equal(t, "name", m.Meta[0].Name)
}
