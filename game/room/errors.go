package room

import "errors"

var (
	ErrRoomNotFound       = errors.New("room does not exist")
	ErrRoomFull           = errors.New("room full")
	ErrRoomClosed         = errors.New("room closed")
	ErrNotAParticipant    = errors.New("not a participant")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAlreadySeated      = errors.New("already seated in this room")
	ErrAlreadyInRoom      = errors.New("already in a room")
	ErrCodeSpaceExhausted = errors.New("could not generate a unique room code")
)
