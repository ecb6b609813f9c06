// Package profileview renders /user/{id}: where the edit form lands after a
// successful update.
package profileview

import (
	"time"

	"github.com/idilsaglam/profile/internal/model"
	"github.com/idilsaglam/profile/internal/ui"
)

const timeLayout = "2006-01-02 15:04"

func Render(u model.User) string {
	t := ui.Current()
	lines := []string{
		t.Title.Render("Perfil") + "  " + t.Muted.Render("/user/"+u.ID),
		"",
		ui.Field("Nome", 10, u.Name),
		ui.Field("Email", 10, t.Accent.Render(u.Email)),
	}
	if u.Created != nil {
		lines = append(lines, ui.Field("Criado", 10, formatTime(*u.Created)))
	}
	if u.Updated != nil {
		lines = append(lines, ui.Field("Atualizado", 10, formatTime(*u.Updated)))
	}
	return ui.Panel(lines...)
}

func formatTime(ts time.Time) string {
	return ts.Local().Format(timeLayout)
}
