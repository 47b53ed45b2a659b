package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsreddy3/persona-backend/models"
)

func newCharacterLogic() (*CharacterLogic, *fakeCharacterStore) {
	store := newFakeCharacterStore()
	return NewCharacterLogic(store), store
}

func TestCreateCharacter(t *testing.T) {
	logic, _ := newCharacterLogic()

	character, err := logic.CreateCharacter(1, "Ada", "A pioneering mathematician", "Charmed, I'm sure.", "First programmer", "", []string{"witty", "precise"})
	require.NoError(t, err)
	assert.NotZero(t, character.ID)
	assert.EqualValues(t, 1, character.CreatorID)
	assert.Equal(t, []string{"witty", "precise"}, character.Attributes)

	got, err := logic.GetCharacter(character.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestCreateCharacterValidation(t *testing.T) {
	logic, _ := newCharacterLogic()

	cases := []struct {
		name        string
		charName    string
		description string
		greeting    string
	}{
		{"missing name", "  ", "desc", "hi"},
		{"missing description", "Ada", "", "hi"},
		{"missing greeting", "Ada", "desc", "\t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := logic.CreateCharacter(1, tc.charName, tc.description, tc.greeting, "", "", nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateCharacterNilAttributes(t *testing.T) {
	logic, _ := newCharacterLogic()

	character, err := logic.CreateCharacter(1, "Ada", "desc", "hi", "", "", nil)
	require.NoError(t, err)
	assert.NotNil(t, character.Attributes)
	assert.Empty(t, character.Attributes)
}

func TestGetCharacterNotFound(t *testing.T) {
	logic, _ := newCharacterLogic()

	_, err := logic.GetCharacter(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStats(t *testing.T) {
	logic, store := newCharacterLogic()
	character, err := logic.CreateCharacter(1, "Ada", "desc", "hi", "", "", nil)
	require.NoError(t, err)
	require.NoError(t, store.IncrementChatsCreated(character.ID))
	require.NoError(t, store.IncrementMessages(character.ID))
	require.NoError(t, store.IncrementMessages(character.ID))

	stats, err := logic.GetStats(character.ID)
	require.NoError(t, err)
	assert.Equal(t, character.ID, stats.CharacterID)
	assert.EqualValues(t, 1, stats.NumChatsCreated)
	assert.EqualValues(t, 2, stats.NumMessages)
}

func TestUpdateCharacterPhoto(t *testing.T) {
	logic, _ := newCharacterLogic()
	character, err := logic.CreateCharacter(1, "Ada", "desc", "hi", "", "", nil)
	require.NoError(t, err)

	updated, err := logic.UpdateCharacterPhoto(character.ID, 1, "https://cdn.example.com/ada.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ada.png", updated.PhotoURL)

	_, err = logic.UpdateCharacterPhoto(character.ID, 2, "https://cdn.example.com/mallory.png")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := logic.GetCharacter(character.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ada.png", got.PhotoURL)
}

func TestGetPopularCharactersClampsPaging(t *testing.T) {
	store := newFakeCharacterStore()
	for i := 0; i < 3; i++ {
		_, err := store.CreateCharacter(&models.Character{CreatorID: 1, Name: "c", Description: "d", Greeting: "g"})
		require.NoError(t, err)
	}
	logic := NewCharacterLogic(store)

	characters, err := logic.GetPopularCharacters(0, -5)
	require.NoError(t, err)
	assert.Len(t, characters, 3)
}
