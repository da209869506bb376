package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Toast icons.
var (
	IconNotifySuccess = "" // nf-fa-check_circle
	IconNotifyError   = "" // nf-fa-times_circle
	IconNotifyInfo    = "" // nf-fa-info_circle
)

// IconDismiss is the close control drawn in the top-right corner of each toast.
var IconDismiss = "×"
