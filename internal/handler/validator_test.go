package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRarityTag(t *testing.T) {
	v := GetValidator()

	type payload struct {
		Rarity string `validate:"required,rarity"`
	}

	assert.NoError(t, v.ValidateStruct(payload{Rarity: "Mythic"}))
	assert.Error(t, v.ValidateStruct(payload{Rarity: "mythic"}))
	assert.Error(t, v.ValidateStruct(payload{Rarity: "Shiny"}))
	assert.Error(t, v.ValidateStruct(payload{Rarity: ""}))
}

func TestValidateItemSlotTag(t *testing.T) {
	v := GetValidator()

	type payload struct {
		Slot string `validate:"required,itemslot"`
	}

	assert.NoError(t, v.ValidateStruct(payload{Slot: "Weapon"}))
	assert.NoError(t, v.ValidateStruct(payload{Slot: "Relic"}))
	assert.Error(t, v.ValidateStruct(payload{Slot: "weapon"}))
	assert.Error(t, v.ValidateStruct(payload{Slot: "Boots"}))
}

func TestValidateSlotNameTag(t *testing.T) {
	v := GetValidator()

	type payload struct {
		SlotName string `validate:"required,slotname"`
	}

	assert.NoError(t, v.ValidateStruct(payload{SlotName: "weapon"}))
	assert.NoError(t, v.ValidateStruct(payload{SlotName: "relic"}))
	assert.Error(t, v.ValidateStruct(payload{SlotName: "Weapon"}))
	assert.Error(t, v.ValidateStruct(payload{SlotName: "head"}))
}

func TestFormatValidationErrorFieldNames(t *testing.T) {
	v := GetValidator()

	type payload struct {
		AdminSecret string `validate:"required"`
		SlotName    string `validate:"required,slotname"`
	}

	err := v.ValidateStruct(payload{SlotName: "head"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["adminSecret"])
	assert.Equal(t, "Invalid slot name", fields["slotName"])
}
