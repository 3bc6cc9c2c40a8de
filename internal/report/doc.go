// Package report renders a RunReport.
//
// SimpleWriter produces the line-oriented console report, MarkdownWriter a
// Markdown document for sharing, and SummaryWriter a table of per-month
// counts. MultiWriter combines several of them.
package report
