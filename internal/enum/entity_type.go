package enum

type EntityType string

const (
	MAILBOX        EntityType = "MAILBOX"
	THREAD         EntityType = "THREAD"
	MESSAGE        EntityType = "MESSAGE"
	CLASSIFICATION EntityType = "CLASSIFICATION"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
