// Package dialog предоставляет GUI диалоги.
package dialog

import (
	"fmt"

	"github.com/ncruces/zenity"

	"diktor/internal/i18n"
	"diktor/internal/models"
)

// ConfirmDownload спрашивает пользователя, скачать ли модель.
// Возвращает true при согласии.
func ConfirmDownload(info models.ModelInfo) bool {
	size := fmt.Sprintf("%d MB", info.Size/(1024*1024))
	question := fmt.Sprintf(i18n.T("dialog_download_question"), info.Name, size)

	err := zenity.Question(question,
		zenity.Title(i18n.T("dialog_download_title")),
		zenity.OKLabel("OK"),
	)
	return err == nil
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
