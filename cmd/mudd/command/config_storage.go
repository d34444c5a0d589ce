package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/RednibCoding/mudden-sub004/internal/game"
	"github.com/RednibCoding/mudden-sub004/internal/storage"
)

type StorageConfig struct {
	Rooms      AssetConfig[*game.Room]      `json:"rooms"`
	Items      AssetConfig[*game.Item]      `json:"items"`
	Npcs       AssetConfig[*game.Npc]       `json:"npcs"`
	Characters AssetConfig[*game.Character] `json:"characters"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Npcs.Validate("npcs"))
	el.Add(c.Characters.Validate("characters"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
