package enum

type MoveStatus string

const (
	MoveSuccess       MoveStatus = "success"
	MoveNotFound      MoveStatus = "not_found"
	MoveAuthFailed    MoveStatus = "auth_failed"
	MoveFolderError   MoveStatus = "folder_error"
	MoveProtocolError MoveStatus = "protocol_error"
)

func (t MoveStatus) String() string {
	return string(t)
}
