package enum

type EmailDirection string

const (
	EmailInbound  EmailDirection = "inbound"
	EmailOutbound EmailDirection = "outbound"
)

func (t EmailDirection) String() string {
	return string(t)
}

type MailboxStatus string

const (
	MailboxConnected MailboxStatus = "connected"
	MailboxError     MailboxStatus = "error"
	MailboxDisabled  MailboxStatus = "disabled"
)

func (t MailboxStatus) String() string {
	return string(t)
}
