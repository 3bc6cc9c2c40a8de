// Package model defines the data structures shared by the crawler, the
// probes, the pipeline and the report writers.
//
// This package contains the following main types:
//   - MonthLink: A navigation anchor pointing at one month page
//   - ShoeListing: The fields extracted from one shoe listing
//   - ValidationResult: The presence/reachability checks for one listing
//   - MonthReport: Everything found on one month page
//   - SignupOutcome: The result of the reminder endpoint smoke test
//   - RunReport: The result of one complete verification run
//
// All values are created and discarded within a single run. Nothing here is
// persisted.
package model
