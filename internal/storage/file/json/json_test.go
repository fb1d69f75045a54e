package json

import (
	"testing"

	"github.com/drakos74/auto-stack/internal/storage"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
}

func TestLocalStorage(t *testing.T) {
	store := NewLocalStorage()
	key := storage.Key{ID: "1", Name: "stacked", Label: "ensemble"}

	var missing payload
	err := store.Load(key, &missing)
	assert.Error(t, err)
	assert.ErrorIs(t, err, storage.NotFoundErr)

	in := payload{Name: "stacked", Classes: []string{"no", "yes"}}
	assert.NoError(t, store.Store(key, in))

	var out payload
	assert.NoError(t, store.Load(key, &out))
	assert.Equal(t, in, out)
}

func TestKeyPath(t *testing.T) {
	key := storage.Key{ID: "1", Name: "stacked", Label: "ensemble"}
	assert.Equal(t, "stacked_1_ensemble", key.Path())
}
