package banner

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/core/styles"
)

// Variant is the visual treatment of an item.
type Variant int

const (
	VariantInfo Variant = iota
	VariantSuccess
	VariantError
)

// VariantFor maps a notification type to its variant. Anything that is not
// success or error, including unknown strings, renders as info.
func VariantFor(t notify.Type) Variant {
	switch t {
	case notify.TypeSuccess:
		return VariantSuccess
	case notify.TypeError:
		return VariantError
	default:
		return VariantInfo
	}
}

func (v Variant) String() string {
	switch v {
	case VariantSuccess:
		return "success"
	case VariantError:
		return "error"
	default:
		return "info"
	}
}

// Palette returns the toast colors of the active theme for v.
func (v Variant) Palette() styles.ToastPalette {
	switch v {
	case VariantSuccess:
		return styles.ToastSuccessPalette
	case VariantError:
		return styles.ToastErrorPalette
	default:
		return styles.ToastInfoPalette
	}
}

// Style returns the bordered container style for v.
func (v Variant) Style() lipgloss.Style {
	switch v {
	case VariantSuccess:
		return styles.ToastSuccessStyle
	case VariantError:
		return styles.ToastErrorStyle
	default:
		return styles.ToastInfoStyle
	}
}

// Icon returns the glyph drawn before the message.
func (v Variant) Icon() string {
	switch v {
	case VariantSuccess:
		return styles.IconNotifySuccess
	case VariantError:
		return styles.IconNotifyError
	default:
		return styles.IconNotifyInfo
	}
}

// controlWidth is the width of the " ×" dismiss control.
const controlWidth = 2

// Item is one mounted notification. It owns at most one pending auto-dismiss
// timer, identified by a non-zero token.
type Item struct {
	notification notify.Notification
	index        int
	dismiss      func(index int)

	token     uint64
	dismissed bool
}

func newItem(n notify.Notification, index int, dismiss func(int)) *Item {
	return &Item{
		notification: n,
		index:        index,
		dismiss:      dismiss,
	}
}

// Key is the stable identifier the item is mounted under.
func (it *Item) Key() string { return it.notification.ID }

// Notification returns the record the item displays.
func (it *Item) Notification() notify.Notification { return it.notification }

// Index is the item's position in the list as of the last reconcile.
func (it *Item) Index() int { return it.index }

// Variant returns the item's visual treatment.
func (it *Item) Variant() Variant { return VariantFor(it.notification.Type) }

// Pending reports whether the auto-dismiss timer is still armed.
func (it *Item) Pending() bool { return it.token != 0 }

func (it *Item) arm(token uint64) { it.token = token }

// disarm cancels the pending timer. A timer message that arrives later no
// longer matches the item's token and is dropped.
func (it *Item) disarm() { it.token = 0 }

// Dismiss invokes the dismiss callback with the item's position. Only the
// first call has an effect.
func (it *Item) Dismiss() {
	if it.dismissed {
		return
	}
	it.dismissed = true
	it.disarm()
	it.dismiss(it.index)
}

// View renders the item at the given total width, borders included.
func (it *Item) View(width int) string {
	v := it.Variant()
	container := v.Style()
	palette := v.Palette()

	inner := max(width-container.GetHorizontalFrameSize(), controlWidth+1)
	text := lipgloss.NewStyle().
		Background(palette.Background).
		Foreground(palette.Text)

	body := text.Width(inner - controlWidth).Render(v.Icon() + " " + it.notification.Message)
	control := text.Bold(true).Render(" " + styles.IconDismiss)

	return container.Render(lipgloss.JoinHorizontal(lipgloss.Top, body, control))
}
