package msg

const (
	EventSuccess   = "Event timestamp issued successfully"
	SendSuccess    = "Send timestamp issued successfully"
	ReceiveSuccess = "Timestamp merged successfully"
	NowSuccess     = "Current timestamp retrieved successfully"

	FailedToParse    = "Failed to parse request body"
	TimestampMissing = "Timestamp is missing"
	BadTimestamp     = "Timestamp is malformed"
	CounterExhausted = "Counter exhausted for the current instant"
	DriftExceeded    = "Timestamp too far from local physical time"
)
