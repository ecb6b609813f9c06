package profileview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/profile/internal/model"
)

func TestRender(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)
	out := Render(model.User{ID: "u-1", Name: "Ana Maria", Email: "ana@example.com", Created: &created})

	assert.Contains(t, out, "/user/u-1")
	assert.Contains(t, out, "Ana Maria")
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "2024-05-01 12:30")
	assert.NotContains(t, out, "Atualizado")
}
