package download

import (
	"io"

	"github.com/glorpus-work/dscache/internal/logger"
)

// Progress is one observation of a running download.
type Progress struct {
	File       string
	Downloaded int64
	Total      int64
	Percent    float64
}

// ProgressFunc receives a Progress after every chunk written to disk.
type ProgressFunc func(Progress)

// LogProgress reports each observation as a log record.
func LogProgress(p Progress) {
	logger.Info("downloading", logger.Fields{
		"file":       p.File,
		"downloaded": p.Downloaded,
		"total":      p.Total,
		"percent":    p.Percent,
	})
}

func newProgress(file string, downloaded, total int64) Progress {
	p := Progress{File: file, Downloaded: downloaded, Total: total}
	if total > 0 {
		p.Percent = float64(downloaded) * 100 / float64(total)
	}
	return p
}

// progressWriter counts bytes passed to w and reports after every write.
type progressWriter struct {
	w          io.Writer
	file       string
	total      int64
	downloaded int64
	report     ProgressFunc
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.downloaded += int64(n)
	if pw.report != nil && n > 0 {
		pw.report(newProgress(pw.file, pw.downloaded, pw.total))
	}
	return n, err
}

// readerOnly hides any io.WriterTo so io.CopyBuffer uses the fixed-size buffer.
type readerOnly struct {
	io.Reader
}
