// Package pipeline provides a framework for executing check steps in sequence.
//
// A run consists of the month walk followed by the reminder signup probe.
// Each stage is implemented as a Step that receives the current report and
// can modify it. The pipeline gives every step the same cancellation,
// error recording and logging.
package pipeline
