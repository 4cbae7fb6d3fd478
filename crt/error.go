package crt

// TableFull - Custom error to inform that an inner table has reached its configured
// maximum size and can't grow further
type TableFull struct {
	msg string
}

// Error - Used to notify that an inner table can't grow further
func (E TableFull) Error() string {
	if E.msg == "" {
		return "table has grown too large"
	}
	return E.msg
}
