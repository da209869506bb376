package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/core/styles"
	"github.com/colonyops/toastbar/pkg/tuitest"
)

func TestVariantFor(t *testing.T) {
	tests := []struct {
		typ     notify.Type
		want    Variant
		palette styles.ToastPalette
		icon    string
	}{
		{typ: notify.TypeSuccess, want: VariantSuccess, palette: styles.ToastSuccessPalette, icon: styles.IconNotifySuccess},
		{typ: notify.TypeError, want: VariantError, palette: styles.ToastErrorPalette, icon: styles.IconNotifyError},
		{typ: notify.TypeInfo, want: VariantInfo, palette: styles.ToastInfoPalette, icon: styles.IconNotifyInfo},
		{typ: "warning", want: VariantInfo, palette: styles.ToastInfoPalette, icon: styles.IconNotifyInfo},
		{typ: "", want: VariantInfo, palette: styles.ToastInfoPalette, icon: styles.IconNotifyInfo},
		{typ: "SUCCESS", want: VariantInfo, palette: styles.ToastInfoPalette, icon: styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			v := VariantFor(tt.typ)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.palette, v.Palette())
			assert.Equal(t, tt.icon, v.Icon())
		})
	}
}

func TestVariant_PalettesDiffer(t *testing.T) {
	assert.NotEqual(t, VariantSuccess.Palette(), VariantError.Palette())
	assert.NotEqual(t, VariantSuccess.Palette(), VariantInfo.Palette())
	assert.NotEqual(t, VariantError.Palette(), VariantInfo.Palette())
}

func TestItem_DismissInvokesCallbackOnce(t *testing.T) {
	var calls []int
	it := newItem(notify.New(notify.TypeInfo, "hello"), 3, func(i int) { calls = append(calls, i) })
	it.arm(1)

	it.Dismiss()
	it.Dismiss()

	assert.Equal(t, []int{3}, calls)
	assert.False(t, it.Pending())
}

func TestItem_DismissUsesCurrentIndex(t *testing.T) {
	var got int
	it := newItem(notify.New(notify.TypeInfo, "hello"), 4, func(i int) { got = i })
	it.index = 1

	it.Dismiss()

	assert.Equal(t, 1, got)
}

func TestItem_View(t *testing.T) {
	it := newItem(notify.New(notify.TypeError, "disk full"), 0, func(int) {})

	view := tuitest.StripANSI(it.View(30))

	assert.Contains(t, view, styles.IconNotifyError+" disk full")
	assert.Contains(t, view, styles.IconDismiss)
	assert.Len(t, tuitest.Lines(view), 3)
}

func TestItem_ViewUnknownTypeDoesNotFail(t *testing.T) {
	it := newItem(notify.Notification{ID: "x", Type: "mystery", Message: "?"}, 0, func(int) {})

	assert.NotPanics(t, func() {
		view := tuitest.StripANSI(it.View(1))
		assert.Contains(t, view, styles.IconNotifyInfo)
	})
}
