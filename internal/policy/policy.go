// Package policy holds every authorization rule of the API in one place.
// Handlers and services never compare roles themselves; they describe the
// attempted action and ask Decide.
package policy

import (
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
)

// Action is a tagged variant describing what the actor is trying to do.
type Action interface {
	isAction()
}

type CreateTask struct{}

// UpdateTask carries whether the patch moves the task to another user;
// reassignment is admin-only no matter who holds the task.
type UpdateTask struct {
	Reassign bool
}

type ReadTask struct{}
type DeleteTask struct{}
type ListTasks struct{}
type ManageUsers struct{}

func (CreateTask) isAction()  {}
func (ReadTask) isAction()    {}
func (UpdateTask) isAction()  {}
func (DeleteTask) isAction()  {}
func (ListTasks) isAction()   {}
func (ManageUsers) isAction() {}

// Decide reports whether actor may perform action on target. target may be
// nil for actions that have no task (create, list, user management). It is a
// pure function: no side effects, no errors, and anything without an explicit
// allow rule is denied.
//
// Read and update are keyed on the assignee while delete is keyed on the
// creator. The asymmetry is inherited behavior, kept on purpose.
func Decide(actor domain.Actor, action Action, target *domain.Task) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}

	switch a := action.(type) {
	case CreateTask:
		return true
	case ListTasks:
		// The result set is scoped to the actor by the lister, not here.
		return true
	case ReadTask:
		return target != nil && target.AssignedTo == actor.ID
	case UpdateTask:
		if a.Reassign {
			return false
		}
		return target != nil && target.AssignedTo == actor.ID
	case DeleteTask:
		return target != nil && target.CreatedBy == actor.ID
	case ManageUsers:
		return false
	}
	return false
}
