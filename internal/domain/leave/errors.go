package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveRequestExists           = errors.New("Leave request already exists for this date")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrNotRequestOwner              = errors.New("Leave request belongs to another employee")
)
