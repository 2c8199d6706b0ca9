package app

import (
	"errors"

	"github.com/sqweek/dialog"
)

// pickModel shows a native file-open dialog filtered to glTF files.
func pickModel(dir string) (string, error) {
	path, err := dialog.File().
		Title("Open model").
		Filter("glTF models", "glb", "gltf").
		SetStartDir(dir).
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrPickCancelled
	}
	return path, err
}

// ShowError shows a modal error box.
func ShowError(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}
