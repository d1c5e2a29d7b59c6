package storage

import "io"

// ProgressFunc observes upload progress as an integer percentage 0-100. It
// may be invoked zero or more times; callers must treat the upload resolving,
// not any particular percentage, as the completion signal.
type ProgressFunc func(percentage int)

type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	onChange ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onChange ProgressFunc) io.Reader {
	if onChange == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, lastPct: -1, onChange: onChange}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.onChange(pct)
		}
	}
	return n, err
}
