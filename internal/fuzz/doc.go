// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (source -> lexer -> syntax tree -> formatter). They guard against panics,
// hangs and lost or reordered tokens on arbitrary input.
//
// Назначение: прогонять байты через лексер, построитель дерева и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
