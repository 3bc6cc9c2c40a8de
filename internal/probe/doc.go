// Package probe performs the two network checks that do not involve page
// parsing: the image existence check and the reminder signup post.
//
// Both probes degrade every failure into a negative outcome instead of
// returning an error, so a single unreachable host never stops a run.
package probe
