// Package policy holds the pure ownership decisions of the marketplace API.
//
// Every function answers "may this verified principal act on this resource
// instance" from its arguments alone: no I/O, no clock, no store access.
// Callers are expected to have resolved the target resource first, so that a
// missing resource surfaces as not-found before any ownership denial.
package policy

import "github.com/freelancy/marketplace-api/models"

// CanMutateJob reports whether the principal may update or delete the given
// job. Only the owner (the principal whose email equals the job's email) may
// mutate it. A principal without a verified email owns nothing.
func CanMutateJob(principal models.Principal, job models.Job) bool {
	return principal.Email != "" && principal.Email == job.Email
}

// CanDeleteTask reports whether the principal may delete the given accepted
// task. Only the accepting principal may remove its own record.
func CanDeleteTask(principal models.Principal, task models.AcceptedTask) bool {
	return principal.Email != "" && principal.Email == task.AcceptedByEmail
}

// CanListTasks reports whether the principal may run an accepted-task listing
// with the given email filter. An explicit email filter may only name the
// caller itself; listings without an email filter (including jobId-only
// filters) are not ownership-gated.
func CanListTasks(principal models.Principal, emailFilter string) bool {
	return emailFilter == "" || emailFilter == principal.Email
}
