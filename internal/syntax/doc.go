// Package syntax builds the ordered syntax tree consumed by the formatter.
//
// Назначение: превратить поток токенов в дерево маркеров и Locate-узлов в
// порядке документа, проверив парность скобок и блочных ключевых слов.
// Не делает: семантического анализа и разбора выражений.
// Зависимости: internal/lexer, internal/token, internal/source, internal/diag.
package syntax
