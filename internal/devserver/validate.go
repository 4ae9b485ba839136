package devserver

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/marcus/notehub/internal/note"
)

var registerOnce sync.Once

// registerValidators adds the custom binding rules used by request types.
// gin shares one validator engine across routers, so this runs once.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("note_tag", validateNoteTag)
	})
}

// validateNoteTag accepts exactly the tags note.ParseTag knows.
func validateNoteTag(fl validator.FieldLevel) bool {
	_, err := note.ParseTag(fl.Field().String())
	return err == nil
}
