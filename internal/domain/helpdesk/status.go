package helpdesk

import "fmt"

// Status is the helpdesk's numeric ticket status.
type Status int

const (
	StatusOpen              Status = 2
	StatusPending           Status = 3
	StatusResolved          Status = 4
	StatusClosed            Status = 5
	StatusWaitingOnCustomer Status = 6
)

var statusLabels = map[Status]string{
	StatusOpen:              "Open",
	StatusPending:           "Pending",
	StatusResolved:          "Resolved",
	StatusClosed:            "Closed",
	StatusWaitingOnCustomer: "Waiting on Customer",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

// Priority is the helpdesk's numeric ticket priority.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

func (p Priority) String() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return fmt.Sprintf("Priority %d", int(p))
}

func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}
