package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки только считаем
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
