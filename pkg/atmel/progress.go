package atmel

import (
	"strings"

	"github.com/kairyu/flop/pkg/memory"
)

const (
	progressMeter = "0%                            100%  "
	progressStart = "["
	progressBar   = ">"
	progressEnd   = "]  "
	progressError = " X  "
	progressWidth = 32
)

// progress draws the block meter used by Flash and ReadFlash.
type progress struct {
	d     *Device
	total int
	drawn int
}

func (d *Device) startProgress(verb string, total int) *progress {
	if !d.opts.Quiet {
		if d.meterEnabled() {
			d.print(progressMeter)
		}
		d.printf("%s 0x%X bytes...\n", verb, total)
		if d.meterEnabled() {
			d.print(progressStart)
		}
	}
	return &progress{d: d, total: total}
}

// update advances the meter to cover every byte up to the end of the
// buffer's current block.
func (p *progress) update(buf *memory.Buffer) {
	if !p.d.meterEnabled() || p.total <= 0 {
		return
	}
	done := buf.BlockRange().End + 1 - buf.DataRange().Start
	want := done * progressWidth / p.total
	if want > progressWidth {
		want = progressWidth
	}
	if want > p.drawn {
		p.d.print(strings.Repeat(progressBar, want-p.drawn))
		p.drawn = want
	}
}

func (p *progress) finish(err error) {
	if p.d.opts.Quiet {
		return
	}
	if err == nil {
		if p.d.meterEnabled() {
			p.d.print(progressEnd)
		}
		p.d.printf("Success\n")
		return
	}
	if p.d.meterEnabled() {
		p.d.print(progressError)
	}
	p.d.printf("ERROR\n")
}
