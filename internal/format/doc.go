// Package format re-renders a parsed SystemVerilog file into canonical text.
//
// Назначение: однопроходный форматтер поверх syntax.Tree: отступы блоков,
// пробелы между токенами, выравнивание объявлений портов, перенос комментариев.
// Не делает: разбора, IO, настраиваемого стиля (ширина отступа и колонки фиксированы).
// Зависимости: internal/syntax, internal/lexer.
package format
