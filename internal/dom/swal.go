package dom

import (
	"context"
	"time"
)

// Swal is the site's confirmation/result dialog. A zero-value Swal (Found
// false) means no modal appeared, which is the normal "no confirmation
// needed" case, not an error.
type Swal struct {
	Found      bool   `json:"found"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Icon       string `json:"icon"`
	HasConfirm bool   `json:"confirm"`
}

// Empty reports whether the modal carried no readable content. For case
// opens an empty modal signals success: the absence of an error dialog.
func (s Swal) Empty() bool {
	return !s.Found || (s.Title == "" && s.Text == "")
}

// Fixed grace period for the modal mount animation.
const swalGrace = time.Second

var (
	selSwalRoot    = CSS(".swal-modal")
	selSwalConfirm = CSS(".swal-button--confirm")
)

// Some result dialogs wrap their content in a richer layout; the reader
// falls back to it when the direct title/text slots are empty.
const readSwalJS = `(() => {
	const root = document.querySelector('.swal-modal');
	if (!root) return {found: false, title: '', text: '', icon: '', confirm: false};
	const pick = sel => {
		const el = root.querySelector(sel);
		return el ? el.textContent.trim() : '';
	};
	let title = pick('.swal-title');
	let text = pick('.swal-text');
	if (!title && !text) {
		title = pick('.swal-content .swal-content__title');
		text = pick('.swal-content .swal-content__text');
	}
	let icon = '';
	const ic = root.querySelector('.swal-icon');
	if (ic) {
		for (const c of ic.classList) {
			if (c.startsWith('swal-icon--') && !c.includes('animate')) {
				icon = c.slice('swal-icon--'.length);
				break;
			}
		}
	}
	return {
		found: true,
		title: title,
		text: text,
		icon: icon,
		confirm: !!root.querySelector('.swal-button--confirm'),
	};
})()`

// ReadSwal waits briefly for a modal root to mount and decomposes it into
// title/text/icon/confirm.
func (l *Locator) ReadSwal(ctx context.Context) Swal {
	grace := &Locator{Timeout: swalGrace, Log: l.Log}
	if !grace.WaitFor(ctx, Present, selSwalRoot) {
		return Swal{}
	}
	SleepJitter(ctx, 300*time.Millisecond, 100*time.Millisecond)

	var s Swal
	if err := l.Eval(ctx, readSwalJS, &s); err != nil {
		l.Log.Debugf("read modal: %v", err)
		return Swal{}
	}
	return s
}

// ConfirmSwal clicks the modal's confirm button, with the usual scroll and
// JS click fallback.
func (l *Locator) ConfirmSwal(ctx context.Context) error {
	return l.Click(ctx, selSwalConfirm)
}
